package query

import (
	"go-factory-console/internal/inventory"
	"go-factory-console/internal/model"
)

// StockFields searches name, SKU, location and category. The status filter
// matches the derived stock status, not a stored one.
var StockFields = Fields[model.StockItem]{
	Search: func(s model.StockItem) []string {
		return []string{s.Name, s.SKU, s.Location, s.Category}
	},
	Status: func(s model.StockItem) string {
		return string(inventory.Classify(int(s.Quantity), int(s.MinStock)))
	},
	Category: func(s model.StockItem) string {
		return s.Category
	},
}

var EmployeeFields = Fields[model.Employee]{
	Search: func(e model.Employee) []string {
		return []string{e.Name, e.Role, e.Status, e.Shift}
	},
	Status: func(e model.Employee) string {
		return e.Status
	},
	Category: func(e model.Employee) string {
		return e.Shift
	},
}

var MachineFields = Fields[model.Machine]{
	Search: func(m model.Machine) []string {
		return []string{m.Name, m.Status}
	},
	Status: func(m model.Machine) string {
		return m.Status
	},
}

var DepartmentFields = Fields[model.Department]{
	Search: func(d model.Department) []string {
		return []string{d.Name, d.Location, d.Status, d.Description}
	},
	Status: func(d model.Department) string {
		return d.Status
	},
}

var SectorFields = Fields[model.Sector]{
	Search: func(s model.Sector) []string {
		return []string{s.Name}
	},
	Category: func(s model.Sector) string {
		return s.DepartmentID.String()
	},
}
