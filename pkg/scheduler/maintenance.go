package scheduler

import (
	"context"
	"time"

	"github.com/fadedpez/dugout/internal/logging"
)

// Task names
const (
	TaskSnapshotCleanup = "snapshot_cleanup"
	TaskSearchReindex   = "search_reindex"
)

// SnapshotCleaner prunes the undo history
type SnapshotCleaner interface {
	CleanupOldSnapshots(ctx context.Context, maxAge time.Duration) (int, error)
}

// Reindexer rebuilds the search mirror from the primary store
type Reindexer interface {
	Reindex(ctx context.Context) error
}

// MaintenanceConfig configures the maintenance tasks
type MaintenanceConfig struct {
	SnapshotMaxAge  time.Duration
	CleanupInterval time.Duration // defaults to hourly
	ReindexInterval time.Duration // defaults to hourly
}

// MaintenanceScheduler runs the periodic housekeeping of the record store
type MaintenanceScheduler struct {
	scheduler *Scheduler
	snapshots SnapshotCleaner
	search    Reindexer
	config    MaintenanceConfig
	log       *logging.Logger
}

// NewMaintenanceScheduler creates the scheduler. search may be nil when
// the Elasticsearch mirror is disabled.
func NewMaintenanceScheduler(snapshots SnapshotCleaner, search Reindexer, config MaintenanceConfig) *MaintenanceScheduler {
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = time.Hour
	}
	if config.ReindexInterval <= 0 {
		config.ReindexInterval = time.Hour
	}

	s := &MaintenanceScheduler{
		scheduler: NewScheduler(),
		snapshots: snapshots,
		search:    search,
		config:    config,
		log:       logging.Default,
	}

	if snapshots != nil && config.SnapshotMaxAge > 0 {
		s.scheduler.AddTask(&Task{
			Name:       TaskSnapshotCleanup,
			Interval:   config.CleanupInterval,
			Fn:         s.cleanupSnapshots,
			RunOnStart: true,
		})
	}
	if search != nil {
		// The mirror is rebuilt at startup since writes made while it was
		// unreachable were not mirrored
		s.scheduler.AddTask(&Task{
			Name:       TaskSearchReindex,
			Interval:   config.ReindexInterval,
			Fn:         s.reindex,
			RunOnStart: true,
		})
	}
	return s
}

// SetLogger replaces the default logger
func (s *MaintenanceScheduler) SetLogger(l *logging.Logger) {
	s.log = l
	s.scheduler.SetLogger(l)
}

// Tasks returns the names of the scheduled tasks
func (s *MaintenanceScheduler) Tasks() []string {
	return s.scheduler.Tasks()
}

// Start initializes and starts the maintenance scheduler
func (s *MaintenanceScheduler) Start(ctx context.Context) {
	s.scheduler.Start(ctx)
	s.log.Info("Maintenance scheduler started")
}

// Stop stops the maintenance scheduler
func (s *MaintenanceScheduler) Stop() {
	s.scheduler.Stop()
	s.log.Info("Maintenance scheduler stopped")
}

func (s *MaintenanceScheduler) cleanupSnapshots(ctx context.Context) error {
	n, err := s.snapshots.CleanupOldSnapshots(ctx, s.config.SnapshotMaxAge)
	if err != nil {
		return err
	}
	if n > 0 {
		s.log.Info("Removed %d undo snapshots older than %s", n, s.config.SnapshotMaxAge)
	}
	return nil
}

func (s *MaintenanceScheduler) reindex(ctx context.Context) error {
	s.log.Debug("Rebuilding search indices")
	return s.search.Reindex(ctx)
}
