package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-factory-console/internal/config"
	"go-factory-console/internal/handler"
	"go-factory-console/internal/middleware"
	"go-factory-console/internal/remote"
	"go-factory-console/internal/repository"
	"go-factory-console/internal/service"
	"go-factory-console/internal/ws"
	"go-factory-console/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// 1. Load Env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// 2. Select the store
	source, authService, tokens, err := setupStore(cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	log.Printf("Store driver: %s", cfg.StoreDriver)

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	invService := service.NewInventoryService(source, wsHub)
	catalogService := service.NewCatalogService(source, wsHub)
	dashService := service.NewDashboardService(invService, catalogService)

	handlers := handler.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Inventory: handler.NewInventoryHandler(invService, cfg.PageSize),
		Catalog:   handler.NewCatalogHandler(catalogService, cfg.PageSize),
		Dashboard: handler.NewDashboardHandler(dashService),
	}

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 6. Routes
	handler.Routes(app, handlers, tokens, wsHub)

	// 7. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// setupStore wires the repositories, authentication and token check for the
// configured driver.
func setupStore(cfg config.Config) (repository.Source, service.AuthService, middleware.TokenCheck, error) {
	switch cfg.StoreDriver {
	case config.DriverRemote:
		client := remote.NewClient(cfg.APIBaseURL, cfg.APITimeout)
		log.Printf("Forwarding to %s", client.BaseURL())
		return repository.NewRemoteSource(client), service.NewRemoteAuthService(client), middleware.RemoteTokens, nil

	case config.DriverPostgres:
		dsn := cfg.DatabaseURL
		if dsn == "" {
			dsn = database.DSN()
		}
		db, err := database.ConnectDB(dsn)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := repository.Migrate(db); err != nil {
			return nil, nil, nil, err
		}
		if err := repository.Seed(db); err != nil {
			log.Printf("Warning: Failed to seed demo data: %v", err)
		}
		set := repository.NewGormSet(db)
		return repository.Static(set), service.NewDemoAuthService(set.Users), middleware.DemoTokens, nil

	default:
		set := repository.NewMemoryStore().Set()
		return repository.Static(set), service.NewDemoAuthService(set.Users), middleware.DemoTokens, nil
	}
}
