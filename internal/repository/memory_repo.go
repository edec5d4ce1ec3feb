package repository

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"go-factory-console/internal/model"

	"gorm.io/gorm"
)

// MemoryStore is the demo dataset kept in process memory. Rows are stored
// by value; every read hands out copies.
type MemoryStore struct {
	mu          sync.RWMutex
	stock       []model.StockItem
	employees   []model.Employee
	machines    []model.Machine
	models      []model.MachineModel
	departments []model.Department
	sectors     []model.Sector
	allocations []model.Allocation
	users       []model.User
}

// NewMemoryStore returns a store seeded with the demo dataset.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{}
	s.Reset()
	return s
}

// Reset drops every change and reloads the demo dataset.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock = seedStock()
	s.employees = seedEmployees()
	s.machines = seedMachines()
	s.models = seedMachineModels()
	s.departments = seedDepartments()
	s.sectors = seedSectors()
	s.allocations = []model.Allocation{}
	s.users = seedUsers()
}

// Set returns the repositories over this store.
func (s *MemoryStore) Set() Set {
	return Set{
		Stock: &memTable[model.StockItem]{
			store:  s,
			rows:   func(s *MemoryStore) *[]model.StockItem { return &s.stock },
			id:     func(i *model.StockItem) *model.ID { return &i.ID },
			unique: func(a, b model.StockItem) bool { return strings.EqualFold(a.SKU, b.SKU) },
			clone: func(i model.StockItem) model.StockItem {
				i.LastUpdated = cloneTime(i.LastUpdated)
				return i
			},
		},
		Employees: &memTable[model.Employee]{
			store: s,
			rows:  func(s *MemoryStore) *[]model.Employee { return &s.employees },
			id:    func(e *model.Employee) *model.ID { return &e.ID },
			match: matchEmployee,
		},
		Machines: &memTable[model.Machine]{
			store: s,
			rows:  func(s *MemoryStore) *[]model.Machine { return &s.machines },
			id:    func(m *model.Machine) *model.ID { return &m.ID },
			match: matchMachine,
			clone: func(m model.Machine) model.Machine {
				m.LastMaintenance = cloneTime(m.LastMaintenance)
				return m
			},
		},
		MachineModels: &memTable[model.MachineModel]{
			store: s,
			rows:  func(s *MemoryStore) *[]model.MachineModel { return &s.models },
			id:    func(m *model.MachineModel) *model.ID { return &m.ID },
		},
		Departments: &memTable[model.Department]{
			store:   s,
			rows:    func(s *MemoryStore) *[]model.Department { return &s.departments },
			id:      func(d *model.Department) *model.ID { return &d.ID },
			match:   matchDepartment,
			cascade: cascadeDepartment,
			clone:   func(d model.Department) model.Department {
				d.CreatedAt = cloneTime(d.CreatedAt)
				return d
			},
		},
		Sectors: &memTable[model.Sector]{
			store:   s,
			rows:    func(s *MemoryStore) *[]model.Sector { return &s.sectors },
			id:      func(sec *model.Sector) *model.ID { return &sec.ID },
			match:   matchSector,
			cascade: cascadeSector,
		},
		Allocations: &memTable[model.Allocation]{
			store:   s,
			rows:    func(s *MemoryStore) *[]model.Allocation { return &s.allocations },
			id:      func(a *model.Allocation) *model.ID { return &a.ID },
			match:   matchAllocation,
			prepare: prepareAllocation,
			clone:   func(a model.Allocation) model.Allocation {
				a.AllocatedAt = cloneTime(a.AllocatedAt)
				return a
			},
		},
		Users: memoryUsers{s},
	}
}

type creator interface {
	BeforeCreate(tx *gorm.DB) error
}

type saver interface {
	BeforeSave(tx *gorm.DB) error
}

// memTable is one entity table of a MemoryStore. Every hook runs with the
// store lock held. clone detaches the pointer fields of a row so callers
// never share memory with the store.
type memTable[T any] struct {
	store   *MemoryStore
	rows    func(s *MemoryStore) *[]T
	id      func(*T) *model.ID
	match   func(s *MemoryStore, row T, p model.ListParams) bool
	unique  func(a, b T) bool
	prepare func(s *MemoryStore, row *T) error
	cascade func(s *MemoryStore, id model.ID)
	clone   func(T) T
}

func (t *memTable[T]) List(p model.ListParams) (model.Page[T], error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	matched := []T{}
	for _, row := range *t.rows(t.store) {
		if t.match == nil || t.match(t.store, row, p) {
			matched = append(matched, row)
		}
	}
	page := model.Paginate(matched, p.Number(), p.Size())
	for i := range page.Content {
		page.Content[i] = t.copy(page.Content[i])
	}
	return page, nil
}

func (t *memTable[T]) Get(id model.ID) (T, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	i := t.indexOf(id)
	if i < 0 {
		var zero T
		return zero, ErrNotFound
	}
	return t.copy((*t.rows(t.store))[i]), nil
}

func (t *memTable[T]) Create(item T) (T, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if h, ok := any(&item).(creator); ok {
		if err := h.BeforeCreate(nil); err != nil {
			return item, err
		}
	}
	if t.indexOf(*t.id(&item)) >= 0 {
		return item, ErrDuplicate
	}
	if err := t.check(&item); err != nil {
		return item, err
	}

	rows := t.rows(t.store)
	*rows = append(*rows, t.copy(item))
	return item, nil
}

func (t *memTable[T]) Update(id model.ID, item T) (T, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	i := t.indexOf(id)
	if i < 0 {
		return item, ErrNotFound
	}
	*t.id(&item) = id
	if err := t.check(&item); err != nil {
		return item, err
	}

	(*t.rows(t.store))[i] = t.copy(item)
	return item, nil
}

func (t *memTable[T]) Delete(id model.ID) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if t.indexOf(id) < 0 {
		return ErrNotFound
	}
	removeWhere(t.rows(t.store), func(row T) bool { return *t.id(&row) == id })
	if t.cascade != nil {
		t.cascade(t.store, id)
	}
	return nil
}

// check runs the save hooks and the uniqueness rule against every other row.
func (t *memTable[T]) check(item *T) error {
	if t.prepare != nil {
		if err := t.prepare(t.store, item); err != nil {
			return err
		}
	}
	if h, ok := any(item).(saver); ok {
		if err := h.BeforeSave(nil); err != nil {
			return err
		}
	}
	if t.unique == nil {
		return nil
	}
	id := *t.id(item)
	for _, row := range *t.rows(t.store) {
		if *t.id(&row) != id && t.unique(row, *item) {
			return ErrDuplicate
		}
	}
	return nil
}

func (t *memTable[T]) copy(row T) T {
	if t.clone == nil {
		return row
	}
	return t.clone(row)
}

func (t *memTable[T]) indexOf(id model.ID) int {
	if id == "" {
		return -1
	}
	for i, row := range *t.rows(t.store) {
		if *t.id(&row) == id {
			return i
		}
	}
	return -1
}

func removeWhere[T any](rows *[]T, drop func(T) bool) {
	kept := (*rows)[:0]
	for _, row := range *rows {
		if !drop(row) {
			kept = append(kept, row)
		}
	}
	*rows = kept
}

// containsFold is an accent and case insensitive substring test.
func containsFold(s, sub string) bool {
	return strings.Contains(model.FoldStatus(s), model.FoldStatus(sub))
}

func (s *MemoryStore) sectorName(id model.ID) string {
	for _, sec := range s.sectors {
		if sec.ID == id {
			return sec.Name
		}
	}
	return ""
}

func (s *MemoryStore) departmentName(id model.ID) string {
	for _, d := range s.departments {
		if d.ID == id {
			return d.Name
		}
	}
	return ""
}

func matchEmployee(s *MemoryStore, e model.Employee, p model.ListParams) bool {
	if v, ok := p.Filter("employee-name"); ok && !containsFold(e.Name, v) {
		return false
	}
	if v, ok := p.Filter("employee-id"); ok && e.ID.String() != v {
		return false
	}
	if v, ok := p.Filter("shift"); ok && !model.SameStatus(e.Shift, v) {
		return false
	}
	if v, ok := p.Filter("sector-name"); ok && !containsFold(s.sectorName(e.SectorID), v) {
		return false
	}
	return true
}

func matchMachine(s *MemoryStore, m model.Machine, p model.ListParams) bool {
	if v, ok := p.Filter("machine-name"); ok && !containsFold(m.Name, v) {
		return false
	}
	if v, ok := p.Filter("sector-name"); ok && !containsFold(s.sectorName(m.SectorID), v) {
		return false
	}
	if v, ok := p.Filter("status-machine"); ok && !model.SameStatus(m.Status, v) {
		return false
	}
	return true
}

func matchDepartment(_ *MemoryStore, d model.Department, p model.ListParams) bool {
	if v, ok := p.Filter("department-name"); ok && !containsFold(d.Name, v) {
		return false
	}
	if v, ok := p.Filter("status-department"); ok && !model.SameStatus(d.Status, v) {
		return false
	}
	if v, ok := p.Filter("department-budget"); ok {
		var budget model.Amount
		if err := budget.UnmarshalJSON([]byte(fmt.Sprintf("%q", v))); err != nil || !budget.Equal(d.Budget.Decimal) {
			return false
		}
	}
	return true
}

func matchSector(s *MemoryStore, sec model.Sector, p model.ListParams) bool {
	if v, ok := p.Filter("sector-name"); ok && !containsFold(sec.Name, v) {
		return false
	}
	if v, ok := p.Filter("department-name"); ok && !containsFold(s.departmentName(sec.DepartmentID), v) {
		return false
	}
	return true
}

func matchAllocation(_ *MemoryStore, a model.Allocation, p model.ListParams) bool {
	if v, ok := p.Filter("name-employee"); ok && !containsFold(a.EmployeeName, v) {
		return false
	}
	if v, ok := p.Filter("name-employee-changed"); ok && !containsFold(a.ReplacedEmployee, v) {
		return false
	}
	return true
}

// prepareAllocation resolves the employee name and records the operator the
// machine had before.
func prepareAllocation(s *MemoryStore, a *model.Allocation) error {
	var name string
	for _, e := range s.employees {
		if e.ID == a.EmployeeID {
			name = e.Name
		}
	}
	if name == "" {
		return fmt.Errorf("employee %s: %w", a.EmployeeID, ErrNotFound)
	}
	found := false
	for _, m := range s.machines {
		if m.ID == a.MachineID {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("machine %s: %w", a.MachineID, ErrNotFound)
	}

	a.EmployeeName = name
	a.ReplacedEmployee = ""
	for i := len(s.allocations) - 1; i >= 0; i-- {
		prev := s.allocations[i]
		if prev.MachineID == a.MachineID && prev.ID != a.ID {
			if prev.EmployeeID != a.EmployeeID {
				a.ReplacedEmployee = prev.EmployeeName
			}
			break
		}
	}
	return nil
}

func cascadeDepartment(s *MemoryStore, id model.ID) {
	var sectorIDs []model.ID
	for _, sec := range s.sectors {
		if sec.DepartmentID == id {
			sectorIDs = append(sectorIDs, sec.ID)
		}
	}
	removeWhere(&s.sectors, func(sec model.Sector) bool { return sec.DepartmentID == id })
	removeWhere(&s.employees, func(e model.Employee) bool { return e.DepartmentID == id })
	removeWhere(&s.machines, func(m model.Machine) bool { return m.DepartmentID == id })
	for _, sid := range sectorIDs {
		cascadeSector(s, sid)
	}
}

func cascadeSector(s *MemoryStore, id model.ID) {
	removeWhere(&s.employees, func(e model.Employee) bool { return e.SectorID == id })
	removeWhere(&s.machines, func(m model.Machine) bool { return m.SectorID == id })
}

type memoryUsers struct {
	store *MemoryStore
}

func (u memoryUsers) FindByEmail(email string) (model.User, error) {
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()

	for _, user := range u.store.users {
		if strings.EqualFold(user.Email, email) {
			return copyUser(user), nil
		}
	}
	return model.User{}, ErrNotFound
}

func (u memoryUsers) Create(user model.User) (model.User, error) {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	for _, existing := range u.store.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return model.User{}, ErrDuplicate
		}
	}
	if err := user.BeforeCreate(nil); err != nil {
		return model.User{}, err
	}
	user = copyUser(user)
	u.store.users = append(u.store.users, user)
	return copyUser(user), nil
}

func (u memoryUsers) UpdatePassword(email, hashedPassword string) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	for i := range u.store.users {
		if strings.EqualFold(u.store.users[i].Email, email) {
			u.store.users[i].PasswordHash = hashedPassword
			return nil
		}
	}
	return ErrNotFound
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func copyUser(u model.User) model.User {
	u.Roles = append([]string(nil), u.Roles...)
	return u
}
