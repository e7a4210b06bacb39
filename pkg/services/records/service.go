package records

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/fadedpez/dugout/internal/logging"
	"github.com/fadedpez/dugout/internal/types"
	"github.com/fadedpez/dugout/pkg/entities"
	recordsRepo "github.com/fadedpez/dugout/pkg/repositories/records"
	"github.com/fadedpez/dugout/pkg/storage"
)

// Snapshot reasons
const (
	ReasonAdd    = "add"
	ReasonEdit   = "edit"
	ReasonDelete = "delete"
	ReasonClear  = "clear"
	ReasonImport = "import"
)

// Service records plate appearances and outings and keeps the rosters.
// Every change to the batting log first pushes a snapshot so it can be
// undone.
type Service struct {
	repository recordsRepo.Repository
	history    storage.Storage
	log        *logging.Logger
	newID      func() string

	// serializes snapshot-then-write sequences
	mu sync.Mutex

	listenersMu sync.RWMutex
	listeners   []func()
}

// NewService creates a new recording service
func NewService(repository recordsRepo.Repository, history storage.Storage) *Service {
	return &Service{
		repository: repository,
		history:    history,
		log:        logging.Default,
		newID:      uuid.NewString,
	}
}

// OnChange registers fn to run after every successful write to a record
// log or roster. Listeners run synchronously and must not call back into
// the service.
func (s *Service) OnChange(fn func()) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	s.listeners = append(s.listeners, fn)
}

func (s *Service) notify() {
	s.listenersMu.RLock()
	defer s.listenersMu.RUnlock()

	for _, fn := range s.listeners {
		fn()
	}
}

// AddPlateAppearance validates rec, fills in the automatic PA and AB and
// appends it to the batting log. The stored record is returned.
func (s *Service) AddPlateAppearance(ctx context.Context, rec *entities.BattingRecord) (*entities.BattingRecord, error) {
	if err := validatePlateAppearance(rec); err != nil {
		return nil, err
	}

	stored := rec.Clone()
	stored.ID = s.newID()
	applyAutoCounts(stored)

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.withSnapshot(ctx, ReasonAdd, func() error {
		return s.repository.AppendBatting(ctx, stored)
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("Recorded plate appearance %s for %s: %s", stored.ID, stored.Player, stored.Result)
	return stored, nil
}

// EditPlateAppearance replaces an existing plate appearance, keeping its
// place in the log. PA and AB are recomputed as for a new entry.
func (s *Service) EditPlateAppearance(ctx context.Context, rec *entities.BattingRecord) (*entities.BattingRecord, error) {
	if rec == nil || rec.ID == "" {
		return nil, types.NewAppError(types.ErrInvalidArgument, "record id is required")
	}
	if err := validatePlateAppearance(rec); err != nil {
		return nil, err
	}

	stored := rec.Clone()
	applyAutoCounts(stored)

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.withSnapshot(ctx, ReasonEdit, func() error {
		return s.repository.UpdateBatting(ctx, stored)
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// DeletePlateAppearance removes one plate appearance
func (s *Service) DeletePlateAppearance(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.withSnapshot(ctx, ReasonDelete, func() error {
		return s.repository.DeleteBatting(ctx, id)
	})
}

// ClearBatting empties the batting log
func (s *Service) ClearBatting(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.withSnapshot(ctx, ReasonClear, func() error {
		return s.repository.ReplaceBatting(ctx, nil)
	})
}

// Undo restores the batting log to the state before the latest change. The
// popped snapshot is returned; its Batting is the restored log.
func (s *Service) Undo(ctx context.Context) (*storage.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.history.LatestSnapshot(ctx)
	if errors.Is(err, storage.ErrNoSnapshot) {
		return nil, types.NewAppError(types.ErrNothingToUndo, "nothing to undo")
	}
	if err != nil {
		return nil, types.WrapError(types.ErrInternalError, "failed to read undo history", err)
	}

	if err := s.repository.ReplaceBatting(ctx, snap.Batting); err != nil {
		return nil, wrapRepositoryError("failed to restore batting records", err)
	}
	s.notify()
	if err := s.history.DeleteSnapshot(ctx, snap.ID); err != nil {
		return nil, types.WrapError(types.ErrInternalError, "failed to pop undo history", err)
	}

	s.log.Info("Undid %s, restored %d plate appearances", snap.Reason, len(snap.Batting))
	return snap, nil
}

// ImportBatting replaces the batting log with recs. Every record gets a
// fresh ID. The previous log can be restored with Undo.
func (s *Service) ImportBatting(ctx context.Context, recs []*entities.BattingRecord) (int, error) {
	stored := make([]*entities.BattingRecord, 0, len(recs))
	for _, rec := range recs {
		if rec == nil {
			continue
		}
		c := rec.Clone()
		c.ID = s.newID()
		stored = append(stored, c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.withSnapshot(ctx, ReasonImport, func() error {
		return s.repository.ReplaceBatting(ctx, stored)
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("Imported %d plate appearances", len(stored))
	return len(stored), nil
}

// AddOuting appends a pitching outing
func (s *Service) AddOuting(ctx context.Context, rec *entities.PitchingRecord) (*entities.PitchingRecord, error) {
	if rec == nil || strings.TrimSpace(rec.Pitcher) == "" {
		return nil, types.NewAppError(types.ErrPitcherRequired, "pitcher is required")
	}

	stored := rec.Clone()
	stored.Pitcher = strings.TrimSpace(stored.Pitcher)
	stored.ID = s.newID()

	if err := s.repository.AppendPitching(ctx, stored); err != nil {
		return nil, wrapRepositoryError("failed to save outing", err)
	}
	s.notify()
	return stored, nil
}

// DeleteOuting removes a pitching outing
func (s *Service) DeleteOuting(ctx context.Context, id string) error {
	if err := s.repository.DeletePitching(ctx, id); err != nil {
		return wrapRepositoryError("failed to delete outing", err)
	}
	s.notify()
	return nil
}

// ImportPitching replaces the pitching log with recs, assigning fresh IDs
func (s *Service) ImportPitching(ctx context.Context, recs []*entities.PitchingRecord) (int, error) {
	stored := make([]*entities.PitchingRecord, 0, len(recs))
	for _, rec := range recs {
		if rec == nil {
			continue
		}
		c := rec.Clone()
		c.ID = s.newID()
		stored = append(stored, c)
	}

	if err := s.repository.ReplacePitching(ctx, stored); err != nil {
		return 0, wrapRepositoryError("failed to import outings", err)
	}
	s.notify()
	s.log.Info("Imported %d outings", len(stored))
	return len(stored), nil
}

// Batting returns the batting log in entry order
func (s *Service) Batting(ctx context.Context) ([]*entities.BattingRecord, error) {
	recs, err := s.repository.ListBatting(ctx)
	if err != nil {
		return nil, wrapRepositoryError("failed to list batting records", err)
	}
	return recs, nil
}

// Pitching returns the pitching log in entry order
func (s *Service) Pitching(ctx context.Context) ([]*entities.PitchingRecord, error) {
	recs, err := s.repository.ListPitching(ctx)
	if err != nil {
		return nil, wrapRepositoryError("failed to list pitching records", err)
	}
	return recs, nil
}

// withSnapshot saves the current batting log, then runs write. A failed
// write discards the snapshot so Undo never restores a change that did
// not happen. Callers hold mu.
func (s *Service) withSnapshot(ctx context.Context, reason string, write func() error) error {
	current, err := s.repository.ListBatting(ctx)
	if err != nil {
		return wrapRepositoryError("failed to read batting records", err)
	}

	snap := &storage.Snapshot{Reason: reason, Batting: current}
	if err := s.history.SaveSnapshot(ctx, snap); err != nil {
		return types.WrapError(types.ErrInternalError, "failed to save undo history", err)
	}

	if err := write(); err != nil {
		if delErr := s.history.DeleteSnapshot(ctx, snap.ID); delErr != nil {
			s.log.Warn("Failed to discard snapshot %s: %v", snap.ID, delErr)
		}
		return wrapRepositoryError("failed to "+reason+" batting record", err)
	}
	s.notify()
	return nil
}

func validatePlateAppearance(rec *entities.BattingRecord) error {
	if rec == nil || strings.TrimSpace(rec.Player) == "" {
		return types.NewAppError(types.ErrPlayerRequired, "player is required")
	}
	if !rec.Result.IsKnown() {
		return types.NewAppError(types.ErrResultRequired, "a known result is required")
	}
	return nil
}

// applyAutoCounts sets the PA and AB of a hand-entered plate appearance:
// always one PA, and one AB unless the batter walked or was hit
func applyAutoCounts(rec *entities.BattingRecord) {
	rec.Player = strings.TrimSpace(rec.Player)
	rec.PA = "1"
	if rec.Result.IsFreePass() {
		rec.AB = "0"
	} else {
		rec.AB = "1"
	}
}

// wrapRepositoryError keeps coded errors from the repository and codes the rest
func wrapRepositoryError(message string, err error) error {
	var appErr *types.AppError
	if types.As(err, &appErr) {
		return appErr
	}
	return types.WrapError(types.ErrDatabaseError, message, err)
}
