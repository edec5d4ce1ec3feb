package handler

import (
	"go-factory-console/internal/middleware"
	"go-factory-console/internal/model"
	"go-factory-console/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// Handlers groups every handler mounted by Routes.
type Handlers struct {
	Auth      *AuthHandler
	Inventory *InventoryHandler
	Catalog   *CatalogHandler
	Dashboard *DashboardHandler
}

// Routes mounts the API under /api/v1 and the refresh socket under /ws.
func Routes(app *fiber.App, h Handlers, tokens middleware.TokenCheck, hub *ws.Hub) {
	api := app.Group("/api/v1")
	requireAuth := middleware.RequireAuth(tokens)

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", h.Auth.Login)
	auth.Post("/sign-up", h.Auth.SignUp)
	auth.Post("/reset-password", requireAuth, middleware.RequireRole(model.RoleAdmin), h.Auth.ResetPassword)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", requireAuth)

	protected.Get("/profile", h.Auth.Profile)
	protected.Get("/dashboard/stats", h.Dashboard.GetDashboardStats)

	protected.Get("/inventory", h.Inventory.GetInventory)
	protected.Post("/inventory", h.Inventory.CreateItem)
	protected.Get("/inventory/:id", h.Inventory.GetItem)
	protected.Put("/inventory/:id", h.Inventory.UpdateItem)
	protected.Delete("/inventory/:id", h.Inventory.DeleteItem)
	protected.Post("/inventory/:id/reserve", h.Inventory.ReserveItem)

	protected.Get("/employees", h.Catalog.GetEmployees)
	protected.Post("/employees", h.Catalog.CreateEmployee)
	protected.Get("/employees/:id", h.Catalog.GetEmployee)
	protected.Put("/employees/:id", h.Catalog.UpdateEmployee)
	protected.Delete("/employees/:id", h.Catalog.DeleteEmployee)

	protected.Get("/machines", h.Catalog.GetMachines)
	protected.Post("/machines", h.Catalog.CreateMachine)
	protected.Get("/machines/:id", h.Catalog.GetMachine)
	protected.Put("/machines/:id", h.Catalog.UpdateMachine)
	protected.Delete("/machines/:id", h.Catalog.DeleteMachine)

	protected.Get("/machine-models", h.Catalog.GetMachineModels)
	protected.Post("/machine-models", h.Catalog.CreateMachineModel)

	protected.Get("/departments", h.Catalog.GetDepartments)
	protected.Post("/departments", h.Catalog.CreateDepartment)
	protected.Get("/departments/:id", h.Catalog.GetDepartment)
	protected.Put("/departments/:id", h.Catalog.UpdateDepartment)
	protected.Delete("/departments/:id", h.Catalog.DeleteDepartment)

	protected.Get("/sectors", h.Catalog.GetSectors)
	protected.Post("/sectors", h.Catalog.CreateSector)
	protected.Get("/sectors/:id", h.Catalog.GetSector)
	protected.Put("/sectors/:id", h.Catalog.UpdateSector)
	protected.Delete("/sectors/:id", h.Catalog.DeleteSector)

	protected.Get("/allocations", h.Catalog.GetAllocations)
	protected.Post("/allocations", h.Catalog.Allocate)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(hub.Serve))
}
