package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"delivery-sync/core/config"
	"delivery-sync/core/database"
	"delivery-sync/core/loader"
	"delivery-sync/core/logger"
	"delivery-sync/core/middleware/auth"
	"delivery-sync/core/middleware/rayid"
	"delivery-sync/core/storage"
	"delivery-sync/feature/sync"
	"delivery-sync/feature/sync/models"
	"delivery-sync/feature/sync/partner"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the delivery-sync server",
	Long:  `Starts the HTTP server exposing the sync trigger and status endpoints.`,
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

		// 3. Connect to Database (required; the reconciled tables live here)
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := db.AutoMigrate(models.All()...); err != nil {
			logg.Fatal("Failed to migrate sync tables", zap.Error(err))
		}

		// 4. Partner fetch client
		client, err := partner.NewHTTPClient(cfg.Partner, logg)
		if err != nil {
			logg.Fatal("Failed to create partner client", zap.Error(err))
		}

		// 5. Snapshot archive storage (optional)
		var store storage.Client
		if cfg.Storage.Enabled() {
			if s, err := storage.NewClient(cfg.Storage); err != nil {
				logg.Warn("Optional snapshot archive unavailable", zap.Error(err))
			} else {
				store = s
				logg.Info("Snapshot archive enabled", zap.String("bucket", cfg.Storage.Bucket))
			}
		}

		// 6. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 7. Feature Loader
		mgr := loader.NewManager()
		mgr.Register(sync.NewFeature(db, client, store, cfg.Storage.Bucket, cfg.Sync, cfg.Partner, logg))

		// Middleware Registration
		// RayID must be first to trace everything.
		app.Use(rayid.New())

		// Request logging with Zap + RayID.
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

		// Auth (protect the whole API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// Graceful Shutdown
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
