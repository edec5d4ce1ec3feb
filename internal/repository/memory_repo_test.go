package repository

import (
	"errors"
	"testing"
	"time"

	"go-factory-console/internal/model"
)

func TestMemory_ListPaginates(t *testing.T) {
	set := NewMemoryStore().Set()

	page, err := set.Stock.List(model.NewListParams(1, 3))
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page.Content) != 1 || page.TotalElements != 4 || page.TotalPages != 2 || !page.Last {
		t.Errorf("page = %+v", page)
	}
	if page.Content[0].ID != "stk-4" {
		t.Errorf("second page starts at %s, want stk-4", page.Content[0].ID)
	}
}

func TestMemory_Filters(t *testing.T) {
	set := NewMemoryStore().Set()

	tests := []struct {
		name  string
		list  func(p model.ListParams) (int, error)
		key   string
		value string
		want  int
	}{
		{"employee name accent folded", count(set.Employees), "employee-name", "joao", 1},
		{"employee shift", count(set.Employees), "shift", "Manhã", 1},
		{"employee sector", count(set.Employees), "sector-name", "montagem", 1},
		{"machine status", count(set.Machines), "status-machine", "operating", 2},
		{"machine sector", count(set.Machines), "sector-name", "infra", 1},
		{"department name", count(set.Departments), "department-name", "produ", 1},
		{"department status", count(set.Departments), "status-department", "active", 2},
		{"department budget", count(set.Departments), "department-budget", "R$ 80.000,00", 1},
		{"sector by department", count(set.Sectors), "department-name", "Produção", 2},
		{"sector name", count(set.Sectors), "sector-name", "acab", 1},
		{"empty value ignored", count(set.Sectors), "sector-name", "", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.list(model.ListParams{Filters: map[string]string{tt.key: tt.value}})
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("%s=%q matched %d, want %d", tt.key, tt.value, got, tt.want)
			}
		})
	}
}

func count[T any](repo Repository[T]) func(p model.ListParams) (int, error) {
	return func(p model.ListParams) (int, error) {
		page, err := repo.List(p)
		return int(page.TotalElements), err
	}
}

func TestMemory_ReadsAreCopies(t *testing.T) {
	set := NewMemoryStore().Set()

	page, _ := set.Employees.List(model.ListParams{})
	page.Content[0].Name = "changed"

	e, err := set.Employees.Get("emp-1")
	if err != nil {
		t.Fatal(err)
	}
	if e.Name != "Maria Oliveira" {
		t.Errorf("store changed through a list result: %q", e.Name)
	}

	e.Name = "changed again"
	again, _ := set.Employees.Get("emp-1")
	if again.Name != "Maria Oliveira" {
		t.Errorf("store changed through a get result: %q", again.Name)
	}
}

func TestMemory_TimesAreCopies(t *testing.T) {
	set := NewMemoryStore().Set()
	want := time.Date(2024, 7, 15, 10, 0, 0, 0, time.UTC)

	m, err := set.Machines.Get("mac-1")
	if err != nil {
		t.Fatal(err)
	}
	*m.LastMaintenance = time.Time{}

	page, _ := set.Machines.List(model.ListParams{})
	for _, row := range page.Content {
		if row.ID == "mac-1" {
			if !row.LastMaintenance.Equal(want) {
				t.Errorf("store changed through a get result: %v", row.LastMaintenance)
			}
			*row.LastMaintenance = time.Time{}
		}
	}
	again, _ := set.Machines.Get("mac-1")
	if !again.LastMaintenance.Equal(want) {
		t.Errorf("store changed through a list result: %v", again.LastMaintenance)
	}

	item, _ := set.Stock.Get("stk-1")
	updated, err := set.Stock.Update("stk-1", item)
	if err != nil {
		t.Fatal(err)
	}
	stamp := *updated.LastUpdated
	*updated.LastUpdated = time.Time{}
	stored, _ := set.Stock.Get("stk-1")
	if stored.LastUpdated == nil || !stored.LastUpdated.Equal(stamp) {
		t.Errorf("store changed through an update result: %v", stored.LastUpdated)
	}
}

func TestMemory_CreateUpdateDelete(t *testing.T) {
	set := NewMemoryStore().Set()

	created, err := set.Sectors.Create(model.Sector{Name: "Pintura", DepartmentID: "dep-1"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(created.ID) == 0 || created.ID[:4] != "sec-" {
		t.Errorf("generated id = %q", created.ID)
	}

	updated, err := set.Sectors.Update(created.ID, model.Sector{Name: "Pintura Eletrostática", DepartmentID: "dep-1", Efficiency: 90})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.ID != created.ID || updated.Efficiency != 90 {
		t.Errorf("updated = %+v", updated)
	}

	if err := set.Sectors.Delete(created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := set.Sectors.Get(created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
	if err := set.Sectors.Delete(created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
	if _, err := set.Sectors.Update("sec-404", model.Sector{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() unknown error = %v, want ErrNotFound", err)
	}
}

func TestMemory_StockCodeIsUnique(t *testing.T) {
	set := NewMemoryStore().Set()

	_, err := set.Stock.Create(model.StockItem{SKU: "pm8", Name: "Outro parafuso"})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("Create() duplicate SKU error = %v, want ErrDuplicate", err)
	}

	item, err := set.Stock.Get("stk-1")
	if err != nil {
		t.Fatal(err)
	}
	item.Reserved = 200
	saved, err := set.Stock.Update("stk-1", item)
	if err != nil {
		t.Fatalf("Update() keeping its own SKU error = %v", err)
	}
	if saved.Reserved != 200 || saved.LastUpdated == nil {
		t.Errorf("saved = %+v", saved)
	}
}

func TestMemory_CascadeDeleteDepartment(t *testing.T) {
	set := NewMemoryStore().Set()

	if err := set.Departments.Delete("dep-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	sectors, _ := set.Sectors.List(model.ListParams{})
	employees, _ := set.Employees.List(model.ListParams{})
	machines, _ := set.Machines.List(model.ListParams{})

	if sectors.TotalElements != 1 || sectors.Content[0].ID != "sec-3" {
		t.Errorf("sectors left = %+v", sectors.Content)
	}
	if employees.TotalElements != 1 || employees.Content[0].ID != "emp-2" {
		t.Errorf("employees left = %+v", employees.Content)
	}
	if machines.TotalElements != 1 || machines.Content[0].ID != "mac-2" {
		t.Errorf("machines left = %+v", machines.Content)
	}
}

func TestMemory_CascadeDeleteSector(t *testing.T) {
	set := NewMemoryStore().Set()

	if err := set.Sectors.Delete("sec-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := set.Employees.Get("emp-1"); !errors.Is(err, ErrNotFound) {
		t.Error("employee of the deleted sector survived")
	}
	if _, err := set.Machines.Get("mac-1"); !errors.Is(err, ErrNotFound) {
		t.Error("machine of the deleted sector survived")
	}
	if _, err := set.Departments.Get("dep-1"); err != nil {
		t.Errorf("department removed with its sector: %v", err)
	}
}

func TestMemory_Allocations(t *testing.T) {
	set := NewMemoryStore().Set()

	first, err := set.Allocations.Create(model.Allocation{EmployeeID: "emp-1", MachineID: "mac-1"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if first.EmployeeName != "Maria Oliveira" || first.ReplacedEmployee != "" || first.AllocatedAt == nil {
		t.Errorf("first allocation = %+v", first)
	}

	second, err := set.Allocations.Create(model.Allocation{EmployeeID: "emp-3", MachineID: "mac-1"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if second.EmployeeName != "Pedro Santos" || second.ReplacedEmployee != "Maria Oliveira" {
		t.Errorf("second allocation = %+v", second)
	}

	page, _ := set.Allocations.List(model.ListParams{Filters: map[string]string{"name-employee-changed": "maria"}})
	if page.TotalElements != 1 {
		t.Errorf("filter by replaced employee matched %d", page.TotalElements)
	}

	if _, err := set.Allocations.Create(model.Allocation{EmployeeID: "emp-404", MachineID: "mac-1"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown employee error = %v, want ErrNotFound", err)
	}
}

func TestMemory_Users(t *testing.T) {
	set := NewMemoryStore().Set()

	admin, err := set.Users.FindByEmail("ADMIN@fabrica.com")
	if err != nil {
		t.Fatalf("FindByEmail() error = %v", err)
	}
	if !admin.CheckPassword("admin123") || !admin.HasRole(model.RoleAdmin) {
		t.Errorf("admin = %+v", admin)
	}

	if _, err := set.Users.Create(model.User{Email: "admin@fabrica.com"}); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate Create() error = %v", err)
	}

	u := model.User{Email: "novo@fabrica.com", Roles: []string{model.RoleManager}}
	if err := u.SetPassword("segredo"); err != nil {
		t.Fatal(err)
	}
	created, err := set.Users.Create(u)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	created.Roles[0] = model.RoleAdmin

	found, _ := set.Users.FindByEmail("novo@fabrica.com")
	if found.HasRole(model.RoleAdmin) {
		t.Error("roles shared with the caller")
	}

	if err := set.Users.UpdatePassword("novo@fabrica.com", "hash"); err != nil {
		t.Fatalf("UpdatePassword() error = %v", err)
	}
	if err := set.Users.UpdatePassword("ninguem@fabrica.com", "hash"); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdatePassword() unknown error = %v", err)
	}
}

func TestMemory_Reset(t *testing.T) {
	store := NewMemoryStore()
	set := store.Set()

	_ = set.Departments.Delete("dep-2")
	store.Reset()

	page, _ := set.Departments.List(model.ListParams{})
	if page.TotalElements != 2 {
		t.Errorf("departments after reset = %d, want 2", page.TotalElements)
	}
}

func TestStaticSource(t *testing.T) {
	set := NewMemoryStore().Set()
	src := Static(set)
	if src.For("a").Stock != set.Stock || src.For("").Stock != set.Stock {
		t.Error("static source must serve the same set to every caller")
	}
}
