package service

import (
	"log"
	"math"

	"go-factory-console/internal/model"
	"go-factory-console/internal/query"
	"go-factory-console/internal/repository"
	"go-factory-console/internal/ws"

	"github.com/shopspring/decimal"
)

// Resource names used in refresh events.
const (
	ResourceEmployees     = "employees"
	ResourceMachines      = "machines"
	ResourceMachineModels = "machine-models"
	ResourceDepartments   = "departments"
	ResourceSectors       = "sectors"
	ResourceAllocations   = "allocations"
)

type EmployeesView struct {
	Items  []model.Employee `json:"items"`
	Total  int              `json:"total"`
	Active int              `json:"active"`
	Page   PageInfo         `json:"page"`
	Query  query.Query      `json:"query"`
	Alert  *Alert           `json:"alert,omitempty"`
}

// MachineView adds the display percentage to a machine.
type MachineView struct {
	model.Machine
	OEEPercent float64 `json:"oeePercent"`
}

type MachinesView struct {
	Items      []MachineView `json:"items"`
	Total      int           `json:"total"`
	Operating  int           `json:"operating"`
	AverageOEE int           `json:"averageOee"`
	Page       PageInfo      `json:"page"`
	Query      query.Query   `json:"query"`
	Alert      *Alert        `json:"alert,omitempty"`
}

type DepartmentsView struct {
	Items       []model.Department `json:"items"`
	Total       int                `json:"total"`
	Active      int                `json:"active"`
	TotalBudget model.Amount       `json:"totalBudget"`
	Page        PageInfo           `json:"page"`
	Query       query.Query        `json:"query"`
	Alert       *Alert             `json:"alert,omitempty"`
}

type SectorsView struct {
	Items             []model.Sector `json:"items"`
	Total             int            `json:"total"`
	TotalEmployees    int            `json:"totalEmployees"`
	AverageEfficiency int            `json:"averageEfficiency"`
	Page              PageInfo       `json:"page"`
	Query             query.Query    `json:"query"`
	Alert             *Alert         `json:"alert,omitempty"`
}

type AllocationsView struct {
	Items []model.Allocation `json:"items"`
	Page  PageInfo           `json:"page"`
	Alert *Alert             `json:"alert,omitempty"`
}

type MachineModelsView struct {
	Items []model.MachineModel `json:"items"`
	Page  PageInfo             `json:"page"`
	Alert *Alert               `json:"alert,omitempty"`
}

// CatalogService backs the employee, machine, department and sector
// screens plus the allocation and machine model lists.
type CatalogService interface {
	Employees(token string, p model.ListParams, q query.Query) EmployeesView
	Employee(token string, id model.ID) (model.Employee, error)
	CreateEmployee(token string, e model.Employee) (model.Employee, error)
	UpdateEmployee(token string, id model.ID, apply func(*model.Employee) error) (model.Employee, error)
	DeleteEmployee(token string, id model.ID) error

	Machines(token string, p model.ListParams, q query.Query) MachinesView
	Machine(token string, id model.ID) (MachineView, error)
	CreateMachine(token string, m model.Machine) (MachineView, error)
	UpdateMachine(token string, id model.ID, apply func(*model.Machine) error) (MachineView, error)
	DeleteMachine(token string, id model.ID) error

	MachineModels(token string, p model.ListParams) MachineModelsView
	CreateMachineModel(token string, m model.MachineModel) (model.MachineModel, error)

	Departments(token string, p model.ListParams, q query.Query) DepartmentsView
	Department(token string, id model.ID) (model.Department, error)
	CreateDepartment(token string, d model.Department) (model.Department, error)
	UpdateDepartment(token string, id model.ID, apply func(*model.Department) error) (model.Department, error)
	DeleteDepartment(token string, id model.ID) error

	Sectors(token string, p model.ListParams, q query.Query) SectorsView
	Sector(token string, id model.ID) (model.Sector, error)
	CreateSector(token string, s model.Sector) (model.Sector, error)
	UpdateSector(token string, id model.ID, apply func(*model.Sector) error) (model.Sector, error)
	DeleteSector(token string, id model.ID) error

	Allocations(token string, p model.ListParams) AllocationsView
	Allocate(token string, a model.Allocation) (model.Allocation, error)
}

type catalogService struct {
	employees   collection[model.Employee]
	machines    collection[model.Machine]
	models      collection[model.MachineModel]
	departments collection[model.Department]
	sectors     collection[model.Sector]
	allocations collection[model.Allocation]
}

func NewCatalogService(source repository.Source, hub *ws.Hub) CatalogService {
	return &catalogService{
		employees: collection[model.Employee]{ResourceEmployees,
			func(s repository.Set) repository.Repository[model.Employee] { return s.Employees }, source, hub},
		machines: collection[model.Machine]{ResourceMachines,
			func(s repository.Set) repository.Repository[model.Machine] { return s.Machines }, source, hub},
		models: collection[model.MachineModel]{ResourceMachineModels,
			func(s repository.Set) repository.Repository[model.MachineModel] { return s.MachineModels }, source, hub},
		departments: collection[model.Department]{ResourceDepartments,
			func(s repository.Set) repository.Repository[model.Department] { return s.Departments }, source, hub},
		sectors: collection[model.Sector]{ResourceSectors,
			func(s repository.Set) repository.Repository[model.Sector] { return s.Sectors }, source, hub},
		allocations: collection[model.Allocation]{ResourceAllocations,
			func(s repository.Set) repository.Repository[model.Allocation] { return s.Allocations }, source, hub},
	}
}

// roundedMean is the whole-number average the stat cards show, 0 for an
// empty collection.
func roundedMean(sum float64, n int) int {
	if n == 0 {
		return 0
	}
	return int(math.Round(sum / float64(n)))
}

// Employees

func (s *catalogService) Employees(token string, p model.ListParams, q query.Query) EmployeesView {
	view := EmployeesView{Items: []model.Employee{}, Query: q}
	page, err := s.employees.list(token, p)
	if err != nil {
		log.Printf("catalog: list employees: %v", err)
		view.Alert = AlertFor(err)
		return view
	}
	view.Items = query.Filter(page.Content, q, query.EmployeeFields)
	view.Total = len(page.Content)
	view.Active = query.Count(page.Content, func(e model.Employee) bool {
		return model.SameStatus(e.Status, model.StatusActive)
	})
	view.Page = pageInfo(page)
	return view
}

func (s *catalogService) Employee(token string, id model.ID) (model.Employee, error) {
	return s.employees.get(token, id)
}

func (s *catalogService) CreateEmployee(token string, e model.Employee) (model.Employee, error) {
	return s.employees.create(token, e)
}

func (s *catalogService) UpdateEmployee(token string, id model.ID, apply func(*model.Employee) error) (model.Employee, error) {
	return s.employees.update(token, id, apply)
}

func (s *catalogService) DeleteEmployee(token string, id model.ID) error {
	return s.employees.remove(token, id)
}

// Machines

func machineView(m model.Machine) MachineView {
	return MachineView{Machine: m, OEEPercent: math.Round(m.OEE.Percent()*10) / 10}
}

func (s *catalogService) Machines(token string, p model.ListParams, q query.Query) MachinesView {
	view := MachinesView{Items: []MachineView{}, Query: q}
	page, err := s.machines.list(token, p)
	if err != nil {
		log.Printf("catalog: list machines: %v", err)
		view.Alert = AlertFor(err)
		return view
	}
	for _, m := range query.Filter(page.Content, q, query.MachineFields) {
		view.Items = append(view.Items, machineView(m))
	}
	var oee float64
	for _, m := range page.Content {
		oee += m.OEE.Percent()
	}
	view.Total = len(page.Content)
	view.Operating = query.Count(page.Content, func(m model.Machine) bool {
		return model.SameStatus(m.Status, model.StatusOperating)
	})
	view.AverageOEE = roundedMean(oee, len(page.Content))
	view.Page = pageInfo(page)
	return view
}

func (s *catalogService) Machine(token string, id model.ID) (MachineView, error) {
	m, err := s.machines.get(token, id)
	if err != nil {
		return MachineView{}, err
	}
	return machineView(m), nil
}

func (s *catalogService) CreateMachine(token string, m model.Machine) (MachineView, error) {
	created, err := s.machines.create(token, m)
	if err != nil {
		return MachineView{}, err
	}
	return machineView(created), nil
}

func (s *catalogService) UpdateMachine(token string, id model.ID, apply func(*model.Machine) error) (MachineView, error) {
	saved, err := s.machines.update(token, id, apply)
	if err != nil {
		return MachineView{}, err
	}
	return machineView(saved), nil
}

func (s *catalogService) DeleteMachine(token string, id model.ID) error {
	return s.machines.remove(token, id)
}

func (s *catalogService) MachineModels(token string, p model.ListParams) MachineModelsView {
	view := MachineModelsView{Items: []model.MachineModel{}}
	page, err := s.models.list(token, p)
	if err != nil {
		log.Printf("catalog: list machine models: %v", err)
		view.Alert = AlertFor(err)
		return view
	}
	view.Items = page.Content
	view.Page = pageInfo(page)
	return view
}

func (s *catalogService) CreateMachineModel(token string, m model.MachineModel) (model.MachineModel, error) {
	return s.models.create(token, m)
}

// Departments

func (s *catalogService) Departments(token string, p model.ListParams, q query.Query) DepartmentsView {
	view := DepartmentsView{Items: []model.Department{}, TotalBudget: model.AmountFrom(decimal.Zero), Query: q}
	page, err := s.departments.list(token, p)
	if err != nil {
		log.Printf("catalog: list departments: %v", err)
		view.Alert = AlertFor(err)
		return view
	}
	view.Items = query.Filter(page.Content, q, query.DepartmentFields)
	view.Total = len(page.Content)
	view.Active = query.Count(page.Content, func(d model.Department) bool {
		return model.SameStatus(d.Status, model.StatusActive)
	})
	for _, d := range page.Content {
		view.TotalBudget = model.AmountFrom(view.TotalBudget.Add(d.Budget.Decimal))
	}
	view.Page = pageInfo(page)
	return view
}

func (s *catalogService) Department(token string, id model.ID) (model.Department, error) {
	return s.departments.get(token, id)
}

func (s *catalogService) CreateDepartment(token string, d model.Department) (model.Department, error) {
	return s.departments.create(token, d)
}

func (s *catalogService) UpdateDepartment(token string, id model.ID, apply func(*model.Department) error) (model.Department, error) {
	return s.departments.update(token, id, apply)
}

func (s *catalogService) DeleteDepartment(token string, id model.ID) error {
	return s.departments.remove(token, id)
}

// Sectors

func (s *catalogService) Sectors(token string, p model.ListParams, q query.Query) SectorsView {
	view := SectorsView{Items: []model.Sector{}, Query: q}
	page, err := s.sectors.list(token, p)
	if err != nil {
		log.Printf("catalog: list sectors: %v", err)
		view.Alert = AlertFor(err)
		return view
	}
	var efficiency float64
	for _, sec := range page.Content {
		efficiency += float64(sec.Efficiency)
		view.TotalEmployees += int(sec.Employees)
	}
	view.Items = query.Filter(page.Content, q, query.SectorFields)
	view.Total = len(page.Content)
	view.AverageEfficiency = roundedMean(efficiency, len(page.Content))
	view.Page = pageInfo(page)
	return view
}

func (s *catalogService) Sector(token string, id model.ID) (model.Sector, error) {
	return s.sectors.get(token, id)
}

func (s *catalogService) CreateSector(token string, sec model.Sector) (model.Sector, error) {
	return s.sectors.create(token, sec)
}

func (s *catalogService) UpdateSector(token string, id model.ID, apply func(*model.Sector) error) (model.Sector, error) {
	return s.sectors.update(token, id, apply)
}

func (s *catalogService) DeleteSector(token string, id model.ID) error {
	return s.sectors.remove(token, id)
}

// Allocations

func (s *catalogService) Allocations(token string, p model.ListParams) AllocationsView {
	view := AllocationsView{Items: []model.Allocation{}}
	page, err := s.allocations.list(token, p)
	if err != nil {
		log.Printf("catalog: list allocations: %v", err)
		view.Alert = AlertFor(err)
		return view
	}
	view.Items = page.Content
	view.Page = pageInfo(page)
	return view
}

func (s *catalogService) Allocate(token string, a model.Allocation) (model.Allocation, error) {
	return s.allocations.create(token, a)
}
