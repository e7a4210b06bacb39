package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fadedpez/dugout/internal/logging"
	"github.com/fadedpez/dugout/pkg/storage"
)

// Storage implements file-based storage for the undo history
type Storage struct {
	path      string
	mu        sync.RWMutex
	snapshots map[string]*storage.Snapshot
	lastSeq   int64
	options   *storage.Options
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a new file storage instance
func New(options *storage.Options) (*Storage, error) {
	if options == nil {
		options = storage.NewOptions()
	}

	s := &Storage{
		path:      options.Path,
		snapshots: make(map[string]*storage.Snapshot),
		options:   options,
		done:      make(chan struct{}),
	}

	if err := s.load(); err != nil {
		return nil, fmt.Errorf("failed to load snapshots: %w", err)
	}

	if options.AutoCleanup && options.MaxAge > 0 {
		go s.cleanupRoutine()
	}

	return s, nil
}

// SaveSnapshot pushes a snapshot onto the history
func (s *Storage) SaveSnapshot(ctx context.Context, snap *storage.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now()
	}
	s.lastSeq++
	snap.Seq = s.lastSeq

	s.snapshots[snap.ID] = snap
	s.trim()

	return s.save()
}

// LatestSnapshot returns the most recently saved snapshot
func (s *Storage) LatestSnapshot(ctx context.Context) (*storage.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *storage.Snapshot
	for _, snap := range s.snapshots {
		if latest == nil || snap.Seq > latest.Seq {
			latest = snap
		}
	}
	if latest == nil {
		return nil, storage.ErrNoSnapshot
	}
	return latest, nil
}

// DeleteSnapshot removes a snapshot by ID
func (s *Storage) DeleteSnapshot(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.snapshots[id]; !ok {
		return fmt.Errorf("%w: %s", storage.ErrSnapshotNotFound, id)
	}
	delete(s.snapshots, id)
	return s.save()
}

// ListSnapshots lists the history, oldest first
func (s *Storage) ListSnapshots(ctx context.Context) ([]*storage.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.ordered(), nil
}

// CleanupOldSnapshots removes snapshots older than maxAge
func (s *Storage) CleanupOldSnapshots(ctx context.Context, maxAge time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for id, snap := range s.snapshots {
		if now.Sub(snap.CreatedAt) > maxAge {
			delete(s.snapshots, id)
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}

	return removed, s.save()
}

// Close stops the cleanup routine
func (s *Storage) Close() error {
	s.closeOnce.Do(func() { close(s.done) })
	return nil
}

// Helper functions

func (s *Storage) ordered() []*storage.Snapshot {
	out := make([]*storage.Snapshot, 0, len(s.snapshots))
	for _, snap := range s.snapshots {
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// trim drops the oldest snapshots beyond MaxSnapshots. Callers hold mu.
func (s *Storage) trim() {
	limit := s.options.MaxSnapshots
	if limit <= 0 || len(s.snapshots) <= limit {
		return
	}
	ordered := s.ordered()
	for _, snap := range ordered[:len(ordered)-limit] {
		delete(s.snapshots, snap.ID)
	}
}

func (s *Storage) load() error {
	if s.path == "" {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, &s.snapshots); err != nil {
		return err
	}
	for _, snap := range s.snapshots {
		if snap.Seq > s.lastSeq {
			s.lastSeq = snap.Seq
		}
	}
	return nil
}

func (s *Storage) save() error {
	if s.path == "" {
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.Marshal(s.snapshots)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshots: %w", err)
	}

	// Replace the file atomically
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace file: %w", err)
	}

	return nil
}

func (s *Storage) cleanupRoutine() {
	ticker := time.NewTicker(s.options.MaxAge / 4)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if _, err := s.CleanupOldSnapshots(context.Background(), s.options.MaxAge); err != nil {
				logging.Default.Error("Error cleaning up old snapshots: %v", err)
			}
		}
	}
}
