package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fadedpez/dugout/internal/config"
	"github.com/fadedpez/dugout/internal/logging"
	recordsRepo "github.com/fadedpez/dugout/pkg/repositories/records"
	"github.com/fadedpez/dugout/pkg/services/records"
	"github.com/fadedpez/dugout/pkg/services/statistics"
	"github.com/fadedpez/dugout/pkg/storage"
	"github.com/fadedpez/dugout/pkg/storage/file"
)

// maxSnapshots bounds the undo history
const maxSnapshots = 50

// App holds the storage and services shared by the binaries
type App struct {
	Repository recordsRepo.Repository
	History    *file.Storage
	Records    *records.Service
	Statistics *statistics.Service

	// Search is the Elasticsearch mirror, nil when disabled
	Search *recordsRepo.ElasticsearchRepository
}

// Open builds the repository chain and services described by cfg
func Open(ctx context.Context, cfg *config.Config, log *logging.Logger) (*App, error) {
	base, err := openRepository(cfg, log)
	if err != nil {
		return nil, err
	}

	a := &App{Repository: base}

	if cfg.ESEnabled {
		search, err := recordsRepo.NewElasticsearchRepository(ctx, base, &recordsRepo.ElasticsearchConfig{
			URL:         cfg.ESURL,
			Username:    cfg.ESUsername,
			Password:    cfg.ESPassword,
			IndexPrefix: cfg.ESIndexPrefix,
		})
		if err != nil {
			base.Close()
			return nil, fmt.Errorf("failed to initialize Elasticsearch mirror: %w", err)
		}
		log.Info("Mirroring records to Elasticsearch at %s", cfg.ESURL)
		a.Search = search
		a.Repository = search
	}

	history, err := file.New(&storage.Options{
		Path:         SnapshotFile(cfg),
		MaxAge:       cfg.SnapshotMaxAge,
		MaxSnapshots: maxSnapshots,
		AutoCleanup:  false,
	})
	if err != nil {
		a.Repository.Close()
		return nil, fmt.Errorf("failed to open undo history: %w", err)
	}
	a.History = history

	a.Records = records.NewService(a.Repository, history)
	a.Statistics = statistics.NewService(a.Repository)
	return a, nil
}

// SnapshotFile is where the undo history is persisted. The memory store
// keeps its history in memory too so an undo never restores records from
// a previous process.
func SnapshotFile(cfg *config.Config) string {
	if cfg.StorageType == config.StorageMemory {
		return ""
	}
	return filepath.Join(cfg.SnapshotPath, "snapshots.json")
}

// Close releases the history and the repository chain
func (a *App) Close() error {
	return errors.Join(a.History.Close(), a.Repository.Close())
}

func openRepository(cfg *config.Config, log *logging.Logger) (recordsRepo.Repository, error) {
	switch cfg.StorageType {
	case config.StorageSQLite:
		log.Info("Initializing SQLite repository at %s", cfg.DBPath)
		repo, err := recordsRepo.NewSQLiteRepository(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		return repo, nil
	default:
		log.Warn("Using in-memory repository (records will be lost on restart)")
		return recordsRepo.NewMemoryRepository(), nil
	}
}
