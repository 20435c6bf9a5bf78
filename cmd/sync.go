package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"delivery-sync/core/config"
	"delivery-sync/core/database"
	"delivery-sync/core/logger"
	"delivery-sync/core/storage"
	"delivery-sync/feature/sync"
	"delivery-sync/feature/sync/models"
	"delivery-sync/feature/sync/partner"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync command
	forceSync    bool
	syncInterval time.Duration
)

// syncCmd runs the pipeline without the HTTP server: once by default, or on
// an interval as the scheduled trigger.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run the fetch/reconcile pipeline",
	Long: `Runs one sync against the partner API and reconciles the result into the
local database.

Examples:
  # One run, honoring the snapshot cache
  delivery-sync sync

  # One run, bypassing the cache
  delivery-sync sync --force

  # Scheduled mode: re-run every ten minutes until interrupted
  delivery-sync sync --every 10m`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&forceSync, "force", false, "Bypass the snapshot cache and always fetch")
	syncCmd.Flags().DurationVar(&syncInterval, "every", 0, "Re-run on this interval until interrupted (0 runs once)")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate sync tables: %w", err)
	}

	client, err := partner.NewHTTPClient(cfg.Partner, l)
	if err != nil {
		return fmt.Errorf("failed to create partner client: %w", err)
	}

	var store storage.Client
	if cfg.Storage.Enabled() {
		if s, err := storage.NewClient(cfg.Storage); err != nil {
			l.Warn("Optional snapshot archive unavailable", zap.Error(err))
		} else {
			store = s
		}
	}

	feature := sync.NewFeature(db, client, store, cfg.Storage.Bucket, cfg.Sync, cfg.Partner, l)
	svc := feature.Service()

	if syncInterval <= 0 {
		return runOnce(ctx, svc, l, forceSync)
	}

	// Scheduled mode. Each tick honors the cache unless --force is set;
	// overlapping runs are not possible here since ticks run serially.
	l.Info("Starting scheduled sync", zap.Duration("interval", syncInterval))

	if err := runOnce(ctx, svc, l, forceSync); err != nil {
		l.Warn("Initial sync failed, continuing on schedule", zap.Error(err))
	}

	ticker := time.NewTicker(syncInterval)
	defer ticker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			if err := runOnce(ctx, svc, l, forceSync); err != nil {
				l.Warn("Scheduled sync failed", zap.Error(err))
			}
		case <-sig:
			l.Info("Stopping scheduled sync")
			return nil
		}
	}
}

func runOnce(ctx context.Context, svc *sync.Service, l *zap.Logger, force bool) error {
	result := svc.Run(ctx, force)
	if !result.Success {
		return fmt.Errorf("sync failed: %s", result.Error)
	}

	s := result.Stats
	l.Info("Sync completed",
		zap.Int("total_processed", s.TotalProcessed),
		zap.Int("orders_created", s.OrdersCreated),
		zap.Int("orders_updated", s.OrdersUpdated),
		zap.Int("drivers_created", s.DriversCreated),
		zap.Int("dispatches_created", s.DispatchesCreated),
		zap.Int("malformed_rows", s.MalformedRows),
		zap.Int("row_errors", len(s.Errors)),
	)

	// Show a sample of row errors so operators don't mistake
	// "0 created, 50 errors" for "nothing to do".
	maxShow := 5
	if len(s.Errors) < maxShow {
		maxShow = len(s.Errors)
	}
	for i := 0; i < maxShow; i++ {
		l.Warn("Row error", zap.String("detail", s.Errors[i]))
	}
	if len(s.Errors) > maxShow {
		l.Warn("Additional row errors not shown", zap.Int("count", len(s.Errors)-maxShow))
	}

	return nil
}
