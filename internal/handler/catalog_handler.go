package handler

import (
	"go-factory-console/internal/middleware"
	"go-factory-console/internal/model"
	"go-factory-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Filter keys forwarded to the store for each list.
var (
	employeeFilters   = []string{"employee-name", "employee-id", "shift", "sector-name"}
	machineFilters    = []string{"machine-name", "sector-name", "status-machine"}
	departmentFilters = []string{"department-name", "status-department", "department-budget"}
	sectorFilters     = []string{"department-name", "sector-name"}
	allocationFilters = []string{"name-employee", "name-employee-changed"}
)

// CatalogHandler serves the employee, machine, department and sector screens
// together with allocations and machine models.
type CatalogHandler struct {
	service  service.CatalogService
	pageSize int
}

func NewCatalogHandler(s service.CatalogService, pageSize int) *CatalogHandler {
	return &CatalogHandler{service: s, pageSize: pageSize}
}

// ============ EMPLOYEES ============

func (h *CatalogHandler) GetEmployees(c *fiber.Ctx) error {
	return c.JSON(h.service.Employees(middleware.Token(c), listParams(c, h.pageSize, employeeFilters...), searchQuery(c)))
}

func (h *CatalogHandler) GetEmployee(c *fiber.Ctx) error {
	e, err := h.service.Employee(middleware.Token(c), idParam(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(e)
}

func (h *CatalogHandler) CreateEmployee(c *fiber.Ctx) error {
	var e model.Employee
	if err := decodeInto(c, &e); err != nil {
		return respondError(c, err)
	}
	created, err := h.service.CreateEmployee(middleware.Token(c), e)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *CatalogHandler) UpdateEmployee(c *fiber.Ctx) error {
	e, err := h.service.UpdateEmployee(middleware.Token(c), idParam(c), func(e *model.Employee) error {
		return decodeInto(c, e)
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(e)
}

func (h *CatalogHandler) DeleteEmployee(c *fiber.Ctx) error {
	if err := h.service.DeleteEmployee(middleware.Token(c), idParam(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ============ MACHINES ============

func (h *CatalogHandler) GetMachines(c *fiber.Ctx) error {
	return c.JSON(h.service.Machines(middleware.Token(c), listParams(c, h.pageSize, machineFilters...), searchQuery(c)))
}

func (h *CatalogHandler) GetMachine(c *fiber.Ctx) error {
	m, err := h.service.Machine(middleware.Token(c), idParam(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(m)
}

// CreateMachine accepts oee either as a fraction or as a percentage.
func (h *CatalogHandler) CreateMachine(c *fiber.Ctx) error {
	var m model.Machine
	if err := decodeInto(c, &m); err != nil {
		return respondError(c, err)
	}
	created, err := h.service.CreateMachine(middleware.Token(c), m)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *CatalogHandler) UpdateMachine(c *fiber.Ctx) error {
	m, err := h.service.UpdateMachine(middleware.Token(c), idParam(c), func(m *model.Machine) error {
		return decodeInto(c, m)
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(m)
}

func (h *CatalogHandler) DeleteMachine(c *fiber.Ctx) error {
	if err := h.service.DeleteMachine(middleware.Token(c), idParam(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CatalogHandler) GetMachineModels(c *fiber.Ctx) error {
	return c.JSON(h.service.MachineModels(middleware.Token(c), listParams(c, h.pageSize)))
}

func (h *CatalogHandler) CreateMachineModel(c *fiber.Ctx) error {
	var m model.MachineModel
	if err := decodeInto(c, &m); err != nil {
		return respondError(c, err)
	}
	created, err := h.service.CreateMachineModel(middleware.Token(c), m)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// ============ DEPARTMENTS ============

func (h *CatalogHandler) GetDepartments(c *fiber.Ctx) error {
	return c.JSON(h.service.Departments(middleware.Token(c), listParams(c, h.pageSize, departmentFilters...), searchQuery(c)))
}

func (h *CatalogHandler) GetDepartment(c *fiber.Ctx) error {
	d, err := h.service.Department(middleware.Token(c), idParam(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(d)
}

func (h *CatalogHandler) CreateDepartment(c *fiber.Ctx) error {
	var d model.Department
	if err := decodeInto(c, &d); err != nil {
		return respondError(c, err)
	}
	created, err := h.service.CreateDepartment(middleware.Token(c), d)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *CatalogHandler) UpdateDepartment(c *fiber.Ctx) error {
	d, err := h.service.UpdateDepartment(middleware.Token(c), idParam(c), func(d *model.Department) error {
		return decodeInto(c, d)
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(d)
}

// DeleteDepartment also removes the department's sectors, employees and
// machines.
func (h *CatalogHandler) DeleteDepartment(c *fiber.Ctx) error {
	if err := h.service.DeleteDepartment(middleware.Token(c), idParam(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ============ SECTORS ============

func (h *CatalogHandler) GetSectors(c *fiber.Ctx) error {
	return c.JSON(h.service.Sectors(middleware.Token(c), listParams(c, h.pageSize, sectorFilters...), searchQuery(c)))
}

func (h *CatalogHandler) GetSector(c *fiber.Ctx) error {
	s, err := h.service.Sector(middleware.Token(c), idParam(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(s)
}

func (h *CatalogHandler) CreateSector(c *fiber.Ctx) error {
	var s model.Sector
	if err := decodeInto(c, &s); err != nil {
		return respondError(c, err)
	}
	created, err := h.service.CreateSector(middleware.Token(c), s)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *CatalogHandler) UpdateSector(c *fiber.Ctx) error {
	s, err := h.service.UpdateSector(middleware.Token(c), idParam(c), func(s *model.Sector) error {
		return decodeInto(c, s)
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(s)
}

func (h *CatalogHandler) DeleteSector(c *fiber.Ctx) error {
	if err := h.service.DeleteSector(middleware.Token(c), idParam(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ============ ALLOCATIONS ============

func (h *CatalogHandler) GetAllocations(c *fiber.Ctx) error {
	return c.JSON(h.service.Allocations(middleware.Token(c), listParams(c, h.pageSize, allocationFilters...)))
}

// Allocate puts an employee in charge of a machine.
// Body: {"employee": "emp-1", "machine": "mac-1"}
func (h *CatalogHandler) Allocate(c *fiber.Ctx) error {
	var a model.Allocation
	if err := decodeInto(c, &a); err != nil {
		return respondError(c, err)
	}
	created, err := h.service.Allocate(middleware.Token(c), a)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}
