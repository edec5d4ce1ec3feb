package repository

import (
	"log"
	"sync"
	"time"

	"go-factory-console/internal/model"
)

func seedDate(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

func seedDepartments() []model.Department {
	return []model.Department{
		{
			ID:          "dep-1",
			Name:        "Produção",
			Description: "Responsável pela fabricação dos produtos.",
			Location:    "Bloco A",
			Status:      "ATIVO",
			Employees:   25,
			Budget:      model.NewAmount(120000),
			CreatedAt:   seedDate("2024-01-10T08:00:00Z"),
		},
		{
			ID:          "dep-2",
			Name:        "TI",
			Description: "Tecnologia da Informação",
			Location:    "Bloco C",
			Status:      "ATIVO",
			Employees:   12,
			Budget:      model.NewAmount(80000),
			CreatedAt:   seedDate("2024-02-03T10:00:00Z"),
		},
	}
}

func seedSectors() []model.Sector {
	return []model.Sector{
		{ID: "sec-1", Name: "Montagem", Employees: 10, Efficiency: 92, Production: 300, DepartmentID: "dep-1"},
		{ID: "sec-2", Name: "Acabamento", Employees: 8, Efficiency: 88, Production: 220, DepartmentID: "dep-1"},
		{ID: "sec-3", Name: "Infraestrutura", Employees: 5, Efficiency: 95, Production: 0, DepartmentID: "dep-2"},
	}
}

func seedEmployees() []model.Employee {
	return []model.Employee{
		{ID: "emp-1", Name: "Maria Oliveira", DepartmentID: "dep-1", SectorID: "sec-1", Role: "Operador", Shift: "MANHA", Status: "ATIVO"},
		{ID: "emp-2", Name: "João Silva", DepartmentID: "dep-2", SectorID: "sec-3", Role: "Analista", Shift: "TARDE", Status: "ATIVO"},
		{ID: "emp-3", Name: "Pedro Santos", DepartmentID: "dep-1", SectorID: "sec-2", Role: "Técnico", Shift: "NOITE", Status: "AFASTADO"},
	}
}

func seedMachines() []model.Machine {
	return []model.Machine{
		{
			ID:              "mac-1",
			Name:            "Prensa Hidráulica",
			DepartmentID:    "dep-1",
			SectorID:        "sec-1",
			ModelID:         "mdl-1",
			Status:          "OPERANDO",
			OEE:             0.85,
			Throughput:      120,
			LastMaintenance: seedDate("2024-07-15T10:00:00Z"),
		},
		{
			ID:              "mac-2",
			Name:            "Servidor Dell R740",
			DepartmentID:    "dep-2",
			SectorID:        "sec-3",
			ModelID:         "mdl-2",
			Status:          "OPERANDO",
			OEE:             0.99,
			Throughput:      0,
			LastMaintenance: seedDate("2024-08-02T12:00:00Z"),
		},
	}
}

func seedMachineModels() []model.MachineModel {
	return []model.MachineModel{
		{ID: "mdl-1", Name: "Prensa PH-200", Manufacturer: "Schuler", Description: "Prensa hidráulica de 200 toneladas"},
		{ID: "mdl-2", Name: "PowerEdge R740", Manufacturer: "Dell", Description: "Servidor de rack 2U"},
	}
}

func seedStock() []model.StockItem {
	return []model.StockItem{
		{
			ID: "stk-1", SKU: "PM8", Name: "Parafuso M8", Quantity: 1500, MinStock: 500, Reserved: 120,
			Unit: "un", Location: "A1-03", Category: "Fixadores", UnitPrice: model.NewAmount(0.12),
			Supplier: "Metalúrgica Sul", EntryDate: "2024-06-01",
		},
		{
			ID: "stk-2", SKU: "CA2", Name: "Chapa de Aço 2mm", Quantity: 75, MinStock: 100, Reserved: 10,
			Unit: "chapa", Location: "B2-01", Category: "Matéria-prima", UnitPrice: model.NewAmount(45.5),
			Supplier: "Aços Brasil", EntryDate: "2024-05-20",
		},
		{
			ID: "stk-3", SKU: "OH68", Name: "Óleo Hidráulico 68", Quantity: 0, MinStock: 20,
			Unit: "litro", Location: "C1-02", Category: "Lubrificantes", UnitPrice: model.NewAmount(32.9),
			Supplier: "Lubrifica", EntryDate: "2024-03-11",
		},
		{
			ID: "stk-4", SKU: "R6204", Name: "Rolamento 6204", Quantity: 8, MinStock: 30,
			Unit: "un", Location: "A2-07", Category: "Peças de reposição", UnitPrice: model.NewAmount(18.75),
			Supplier: "SKF", EntryDate: "2024-07-02",
		},
	}
}

// Demo accounts. Hashing is slow, so it happens once per process.
var demoUsers = sync.OnceValue(func() []model.User {
	users := []model.User{
		{ID: "usr-1", Email: "admin@fabrica.com", Name: "Administrador", Roles: []string{model.RoleAdmin}},
		{ID: "usr-2", Email: "gerente@fabrica.com", Name: "Gerente de Produção", Roles: []string{model.RoleManager}},
	}
	passwords := []string{"admin123", "gerente123"}
	for i := range users {
		if err := users[i].SetPassword(passwords[i]); err != nil {
			log.Printf("seed: hash password for %s: %v", users[i].Email, err)
		}
	}
	return users
})

func seedUsers() []model.User {
	users := make([]model.User, 0, len(demoUsers()))
	for _, u := range demoUsers() {
		users = append(users, copyUser(u))
	}
	return users
}
