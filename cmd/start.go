package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dsikea/core/config"
	"dsikea/core/database"
	"dsikea/core/loader"
	"dsikea/core/logger"
	"dsikea/core/middleware/auth"
	"dsikea/core/middleware/rayid"
	"dsikea/core/storage"

	"dsikea/feature/audit"
	"dsikea/feature/catalog"
	"dsikea/feature/customers"
	"dsikea/feature/providers"
	"dsikea/feature/transactions"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "dsikea/docs/swagger"
)

// @title DSIkea API
// @version 1.0
// @description Furniture store backend with an inventory-consistent transaction engine.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the store server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database (Required)
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

		// 4. Initialize Storage (Optional)
		// The archive is best effort, a missing storage backend only costs
		// the transaction snapshots.
		var store storage.Client
		if cfg.Storage.Enabled {
			client, err := storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Warn("Storage unavailable, transaction archive disabled", zap.Error(err))
			} else {
				store = client
			}
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()

		catalogFeature := catalog.NewFeature(db, logg)
		customersFeature := customers.NewFeature(db, logg)
		providersFeature := providers.NewFeature(db, logg)
		transactionsFeature := transactions.NewFeature(db,
			catalogFeature.Service(), customersFeature.Service(), providersFeature.Service(),
			store, cfg.Storage.Bucket, logg)

		mgr.Register(catalogFeature)
		mgr.Register(customersFeature)
		mgr.Register(providersFeature)
		mgr.Register(transactionsFeature)
		mgr.Register(audit.NewFeature(db, logg))

		if store != nil {
			ctx, cancel := context.WithTimeout(context.Background(),
				time.Duration(cfg.Storage.TimeoutSeconds)*time.Second)
			if err := transactionsFeature.Archiver().EnsureBucket(ctx); err != nil {
				logg.Warn("Failed to prepare archive bucket", zap.Error(err))
			}
			cancel()
		}

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 4. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
