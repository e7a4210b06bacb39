package storage

import (
	"context"
	"errors"
	"time"

	"github.com/fadedpez/dugout/pkg/entities"
)

// Common storage errors
var (
	ErrNoSnapshot       = errors.New("no snapshot stored")
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// Snapshot is a copy of the batting log taken before a change, so the
// change can be undone
type Snapshot struct {
	ID        string                    `json:"id"`
	Seq       int64                     `json:"seq"`    // Assigned on save; orders the history
	Reason    string                    `json:"reason"` // The change that followed, e.g. "add"
	Batting   []*entities.BattingRecord `json:"batting"`
	CreatedAt time.Time                 `json:"created_at"`
}

// Storage defines the interface for undo history persistence
type Storage interface {
	// SaveSnapshot pushes a snapshot onto the history
	SaveSnapshot(ctx context.Context, snap *Snapshot) error

	// LatestSnapshot returns the most recently saved snapshot, or
	// ErrNoSnapshot when the history is empty
	LatestSnapshot(ctx context.Context) (*Snapshot, error)

	// DeleteSnapshot removes a snapshot by ID
	DeleteSnapshot(ctx context.Context, id string) error

	// ListSnapshots lists the history, oldest first
	ListSnapshots(ctx context.Context) ([]*Snapshot, error)

	// CleanupOldSnapshots removes snapshots older than maxAge and returns
	// how many were removed
	CleanupOldSnapshots(ctx context.Context, maxAge time.Duration) (int, error)
}

// Options represents storage configuration options
type Options struct {
	Path         string // Empty keeps the history in memory only
	MaxAge       time.Duration
	MaxSnapshots int // Oldest snapshots beyond this are dropped on save; 0 means unlimited
	AutoCleanup  bool
}

// NewOptions creates a new Options with default values
func NewOptions() *Options {
	return &Options{
		Path:         "snapshots.json",
		MaxAge:       7 * 24 * time.Hour,
		MaxSnapshots: 50,
		AutoCleanup:  true,
	}
}
