package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"delivery-sync/core/storage"
	"delivery-sync/feature/sync/cache"
	"delivery-sync/feature/sync/engine"
	"delivery-sync/feature/sync/partner"
	"delivery-sync/feature/sync/tabular"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Result is the sole contract returned to every trigger: scheduled jobs,
// manual runs, and report pre-fetches. A run with row errors in Stats is
// still a success; only a failed fetch or a failed transaction is not.
type Result struct {
	Success bool          `json:"success"`
	Stats   *engine.Stats `json:"stats,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// Service is the sync orchestrator. It decides cache versus fresh fetch,
// wraps the reconciliation engine in one transaction per run, refreshes the
// snapshot cache after the pass completes, and archives raw snapshots.
//
// Concurrent Run calls are safe against the cache and rely on the storage
// layer's row locking for the upserts. There is no one-sync-at-a-time lock;
// deployments whose scheduler can overlap runs should hold an external
// advisory lease keyed by partner around Run.
type Service struct {
	db         *gorm.DB
	client     partner.Client
	snapshots  *cache.Store
	archive    storage.Client
	bucket     string
	engine     *engine.Engine
	cfg        Config
	partnerKey string
	logger     *zap.Logger
}

// NewService creates the orchestrator. archive may be nil, which disables
// snapshot archiving.
func NewService(db *gorm.DB, client partner.Client, snapshots *cache.Store, archive storage.Client, bucket string, eng *engine.Engine, cfg Config, partnerKey string, logger *zap.Logger) *Service {
	return &Service{
		db:         db,
		client:     client,
		snapshots:  snapshots,
		archive:    archive,
		bucket:     bucket,
		engine:     eng,
		cfg:        cfg,
		partnerKey: partnerKey,
		logger:     logger,
	}
}

// Run executes one sync: at most one outbound fetch, at most one storage
// transaction, at most one cache write. With force false an unexpired cached
// snapshot is reconciled without touching the network; with force true the
// cache is bypassed entirely. The cache is only written after a fresh
// snapshot has been through the reconciliation pass.
func (s *Service) Run(ctx context.Context, force bool) Result {
	if !force {
		if snap, ok := s.snapshots.Get(s.partnerKey); ok {
			s.logger.Info("Reconciling from cached snapshot",
				zap.String("partner", s.partnerKey),
				zap.Duration("age", snap.Age()),
			)
			return s.reconcileResult(ctx, snap.Datasets)
		}
	}

	datasets, err := s.client.FetchDatasets(ctx, []string{s.cfg.Dataset})
	if err != nil {
		s.logger.Error("Partner fetch failed", zap.Error(err))
		return Result{Success: false, Error: err.Error()}
	}

	result := s.reconcileResult(ctx, datasets)
	if result.Success {
		s.snapshots.Put(s.partnerKey, datasets, s.cfg.CacheTTL())
		s.archiveSnapshot(ctx, datasets)
	}
	return result
}

func (s *Service) reconcileResult(ctx context.Context, datasets map[string]*tabular.Dataset) Result {
	stats, err := s.reconcile(ctx, datasets)
	if err != nil {
		s.logger.Error("Reconciliation failed", zap.Error(err))
		return Result{Success: false, Error: err.Error()}
	}
	return Result{Success: true, Stats: &stats}
}

// reconcile runs the engine over the configured dataset inside one atomic
// transaction: either the whole batch's writes commit or none do. Row-level
// errors live inside Stats and do not roll anything back.
func (s *Service) reconcile(ctx context.Context, datasets map[string]*tabular.Dataset) (engine.Stats, error) {
	ds, ok := datasets[s.cfg.Dataset]
	if !ok {
		s.logger.Warn("Dataset missing from snapshot, nothing to reconcile",
			zap.String("dataset", s.cfg.Dataset),
		)
		return engine.Stats{Errors: []string{}}, nil
	}

	var stats engine.Stats
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		st, err := s.engine.Reconcile(tx, ds)
		if err != nil {
			return err
		}
		stats = st
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("reconciliation transaction failed: %w", err)
	}
	return stats, nil
}

// snapshotDocument is the archived form of one raw fetch result.
type snapshotDocument struct {
	Partner   string                     `json:"partner"`
	FetchedAt time.Time                  `json:"fetched_at"`
	Datasets  map[string]snapshotDataset `json:"datasets"`
}

type snapshotDataset struct {
	Columns []string `json:"columns"`
	Data    [][]any  `json:"data"`
}

// archiveSnapshot stores the raw fetched payload in object storage for audit
// and replay. Best effort: failures are logged, never fatal to the sync.
func (s *Service) archiveSnapshot(ctx context.Context, datasets map[string]*tabular.Dataset) {
	if s.archive == nil || s.bucket == "" {
		return
	}

	doc := snapshotDocument{
		Partner:   s.partnerKey,
		FetchedAt: time.Now().UTC(),
		Datasets:  make(map[string]snapshotDataset, len(datasets)),
	}
	for name, ds := range datasets {
		doc.Datasets[name] = snapshotDataset{Columns: ds.Columns, Data: ds.Rows}
	}

	body, err := json.Marshal(doc)
	if err != nil {
		s.logger.Warn("Failed to encode snapshot for archive", zap.Error(err))
		return
	}

	key := fmt.Sprintf("snapshots/%s/%s.json", s.partnerKey, doc.FetchedAt.Format("20060102T150405Z"))
	_, err = s.archive.PutObject(ctx, s.bucket, key, bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		s.logger.Warn("Failed to archive snapshot", zap.String("object", key), zap.Error(err))
		return
	}

	s.logger.Info("Archived raw snapshot", zap.String("object", key), zap.Int("bytes", len(body)))
}

// CacheStatus describes the snapshot cache for the status endpoint.
type CacheStatus struct {
	Cached     bool          `json:"cached"`
	StoredAt   *time.Time    `json:"stored_at,omitempty"`
	AgeSeconds int           `json:"age_seconds,omitempty"`
	Datasets   []DatasetInfo `json:"datasets,omitempty"`
}

// DatasetInfo summarizes one cached dataset.
type DatasetInfo struct {
	Name    string `json:"name"`
	Columns int    `json:"columns"`
	Rows    int    `json:"rows"`
}

// CacheStatus reports whether an unexpired snapshot is held and what it
// contains.
func (s *Service) CacheStatus() CacheStatus {
	snap, ok := s.snapshots.Get(s.partnerKey)
	if !ok {
		return CacheStatus{Cached: false}
	}

	status := CacheStatus{
		Cached:     true,
		StoredAt:   &snap.StoredAt,
		AgeSeconds: int(snap.Age().Seconds()),
	}
	for name, ds := range snap.Datasets {
		status.Datasets = append(status.Datasets, DatasetInfo{
			Name:    name,
			Columns: len(ds.Columns),
			Rows:    len(ds.Rows),
		})
	}
	return status
}

// ErrArchiveDisabled indicates no object storage is configured.
var ErrArchiveDisabled = errors.New("sync: snapshot archive is not configured")

// ListSnapshots returns the object keys of archived snapshots for this
// partner, oldest first (storage listing order).
func (s *Service) ListSnapshots(ctx context.Context) ([]string, error) {
	if s.archive == nil || s.bucket == "" {
		return nil, ErrArchiveDisabled
	}

	prefix := fmt.Sprintf("snapshots/%s/", s.partnerKey)
	keys := []string{}
	for obj := range s.archive.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}
