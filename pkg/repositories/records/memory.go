package records

import (
	"context"
	"sync"

	"github.com/fadedpez/dugout/internal/types"
	"github.com/fadedpez/dugout/pkg/entities"
)

// MemoryRepository implements Repository interface with in-memory storage
type MemoryRepository struct {
	mu       sync.RWMutex
	batting  []*entities.BattingRecord
	pitching []*entities.PitchingRecord
	// Map of roster kind to names; a missing key means never saved
	rosters map[entities.RosterKind][]string
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		rosters: make(map[entities.RosterKind][]string),
	}
}

// AppendBatting adds a plate appearance to the end of the log
func (r *MemoryRepository) AppendBatting(ctx context.Context, rec *entities.BattingRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.batting = append(r.batting, rec.Clone())
	return nil
}

// UpdateBatting replaces the plate appearance with the same ID in place
func (r *MemoryRepository) UpdateBatting(ctx context.Context, rec *entities.BattingRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.batting {
		if existing.ID == rec.ID {
			r.batting[i] = rec.Clone()
			return nil
		}
	}
	return recordNotFound(rec.ID)
}

// DeleteBatting removes a plate appearance
func (r *MemoryRepository) DeleteBatting(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.batting {
		if existing.ID == id {
			r.batting = append(r.batting[:i:i], r.batting[i+1:]...)
			return nil
		}
	}
	return recordNotFound(id)
}

// ListBatting returns copies of the batting log in insertion order
func (r *MemoryRepository) ListBatting(ctx context.Context) ([]*entities.BattingRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.BattingRecord, len(r.batting))
	for i, rec := range r.batting {
		out[i] = rec.Clone()
	}
	return out, nil
}

// ReplaceBatting swaps the whole batting log
func (r *MemoryRepository) ReplaceBatting(ctx context.Context, recs []*entities.BattingRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.batting = make([]*entities.BattingRecord, 0, len(recs))
	for _, rec := range recs {
		r.batting = append(r.batting, rec.Clone())
	}
	return nil
}

// AppendPitching adds an outing to the end of the log
func (r *MemoryRepository) AppendPitching(ctx context.Context, rec *entities.PitchingRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pitching = append(r.pitching, rec.Clone())
	return nil
}

// DeletePitching removes an outing
func (r *MemoryRepository) DeletePitching(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.pitching {
		if existing.ID == id {
			r.pitching = append(r.pitching[:i:i], r.pitching[i+1:]...)
			return nil
		}
	}
	return recordNotFound(id)
}

// ListPitching returns copies of the pitching log in insertion order
func (r *MemoryRepository) ListPitching(ctx context.Context) ([]*entities.PitchingRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.PitchingRecord, len(r.pitching))
	for i, rec := range r.pitching {
		out[i] = rec.Clone()
	}
	return out, nil
}

// ReplacePitching swaps the whole pitching log
func (r *MemoryRepository) ReplacePitching(ctx context.Context, recs []*entities.PitchingRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pitching = make([]*entities.PitchingRecord, 0, len(recs))
	for _, rec := range recs {
		r.pitching = append(r.pitching, rec.Clone())
	}
	return nil
}

// GetRoster returns the saved names for kind
func (r *MemoryRepository) GetRoster(ctx context.Context, kind entities.RosterKind) ([]string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names, ok := r.rosters[kind]
	if !ok {
		return nil, false, nil
	}
	return append([]string{}, names...), true, nil
}

// SaveRoster stores the names for kind, replacing any previous list
func (r *MemoryRepository) SaveRoster(ctx context.Context, kind entities.RosterKind, names []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rosters[kind] = append([]string{}, names...)
	return nil
}

// Close is a no-op for memory repository since there are no resources to close
func (r *MemoryRepository) Close() error {
	return nil
}

func recordNotFound(id string) error {
	return types.NewAppError(types.ErrRecordNotFound, "no record with id "+id)
}
