package service

import (
	"go-factory-console/internal/inventory"
	"go-factory-console/internal/model"
	"go-factory-console/internal/query"

	"golang.org/x/sync/errgroup"
)

// dashboardPageSize is large enough to summarise a whole plant in one page.
const dashboardPageSize = model.MaxPageSize

type DashboardService interface {
	GetDashboardStats(token string) *DashboardStats
}

// DashboardStats is the home screen: one card per screen, each computed the
// way that screen computes it. Loads that failed leave their card at zero
// and add an alert.
type DashboardStats struct {
	Stock       inventory.Stats `json:"stock"`
	Employees   CountCard       `json:"employees"`
	Machines    MachineCard     `json:"machines"`
	Departments BudgetCard      `json:"departments"`
	Sectors     SectorCard      `json:"sectors"`
	Alerts      []Alert         `json:"alerts"`
}

type CountCard struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

type MachineCard struct {
	Total      int `json:"total"`
	Operating  int `json:"operating"`
	AverageOEE int `json:"averageOee"`
}

type BudgetCard struct {
	Total       int          `json:"total"`
	Active      int          `json:"active"`
	TotalBudget model.Amount `json:"totalBudget"`
}

type SectorCard struct {
	Total             int `json:"total"`
	AverageEfficiency int `json:"averageEfficiency"`
}

type dashboardService struct {
	inventory InventoryService
	catalog   CatalogService
}

func NewDashboardService(inv InventoryService, catalog CatalogService) DashboardService {
	return &dashboardService{inventory: inv, catalog: catalog}
}

// GetDashboardStats loads every screen concurrently.
func (s *dashboardService) GetDashboardStats(token string) *DashboardStats {
	p := model.NewListParams(0, dashboardPageSize)
	var (
		g    errgroup.Group
		inv  InventoryView
		emps EmployeesView
		macs MachinesView
		deps DepartmentsView
		secs SectorsView
		none query.Query
	)
	// Each load reports its failure as the view's alert, so the group only
	// waits and Wait never returns an error.
	g.Go(func() error { inv = s.inventory.Screen(token, p, none); return nil })
	g.Go(func() error { emps = s.catalog.Employees(token, p, none); return nil })
	g.Go(func() error { macs = s.catalog.Machines(token, p, none); return nil })
	g.Go(func() error { deps = s.catalog.Departments(token, p, none); return nil })
	g.Go(func() error { secs = s.catalog.Sectors(token, p, none); return nil })
	_ = g.Wait()

	stats := &DashboardStats{
		Stock:       inv.Stats,
		Employees:   CountCard{Total: emps.Total, Active: emps.Active},
		Machines:    MachineCard{Total: macs.Total, Operating: macs.Operating, AverageOEE: macs.AverageOEE},
		Departments: BudgetCard{Total: deps.Total, Active: deps.Active, TotalBudget: deps.TotalBudget},
		Sectors:     SectorCard{Total: secs.Total, AverageEfficiency: secs.AverageEfficiency},
		Alerts:      []Alert{},
	}
	for _, a := range []*Alert{inv.Alert, emps.Alert, macs.Alert, deps.Alert, secs.Alert} {
		if a != nil {
			stats.Alerts = append(stats.Alerts, *a)
		}
	}
	return stats
}
