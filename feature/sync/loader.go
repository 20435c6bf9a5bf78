package sync

import (
	"delivery-sync/core/storage"
	"delivery-sync/feature/sync/cache"
	"delivery-sync/feature/sync/engine"
	"delivery-sync/feature/sync/partner"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature wires the sync feature: fetch client, snapshot cache, engine and
// orchestrator. archive may be nil when no object storage is configured.
func NewFeature(db *gorm.DB, client partner.Client, archive storage.Client, bucket string, cfg Config, partnerCfg partner.Config, logger *zap.Logger) *Feature {
	eng := engine.New(logger, partnerCfg.Location())
	svc := NewService(db, client, cache.NewStore(), archive, bucket, eng, cfg, partnerCfg.ClientID, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Service exposes the orchestrator for non-HTTP triggers (the sync command).
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "sync"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
