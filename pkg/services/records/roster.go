package records

import (
	"context"
	"strings"

	"github.com/fadedpez/dugout/internal/types"
	"github.com/fadedpez/dugout/pkg/entities"
)

// Roster returns the names on a roster in display order. A batters roster
// that was never saved falls back to the default lineup.
func (s *Service) Roster(ctx context.Context, kind entities.RosterKind) ([]string, error) {
	if !kind.IsValid() {
		return nil, invalidKind(kind)
	}

	names, ok, err := s.repository.GetRoster(ctx, kind)
	if err != nil {
		return nil, wrapRepositoryError("failed to load roster", err)
	}
	if !ok {
		if kind == entities.RosterBatters {
			return append([]string(nil), entities.DefaultBatters...), nil
		}
		return []string{}, nil
	}
	return names, nil
}

// AddToRoster appends name to the end of a roster
func (s *Service) AddToRoster(ctx context.Context, kind entities.RosterKind, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, types.NewAppError(types.ErrPlayerRequired, "name is required")
	}

	names, err := s.Roster(ctx, kind)
	if err != nil {
		return nil, err
	}
	for _, existing := range names {
		if existing == name {
			return nil, types.NewAppError(types.ErrPlayerExists, name+" is already on the roster")
		}
	}

	names = append(names, name)
	if err := s.repository.SaveRoster(ctx, kind, names); err != nil {
		return nil, wrapRepositoryError("failed to save roster", err)
	}
	s.notify()
	return names, nil
}

// RemoveFromRoster removes name from a roster. Recorded stats for the name
// are kept.
func (s *Service) RemoveFromRoster(ctx context.Context, kind entities.RosterKind, name string) ([]string, error) {
	names, err := s.Roster(ctx, kind)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	kept := make([]string, 0, len(names))
	for _, existing := range names {
		if existing != name {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(names) {
		return nil, types.NewAppError(types.ErrPlayerNotFound, name+" is not on the roster")
	}

	if err := s.repository.SaveRoster(ctx, kind, kept); err != nil {
		return nil, wrapRepositoryError("failed to save roster", err)
	}
	s.notify()
	return kept, nil
}

// ReplaceRoster overwrites a roster. Blank names are dropped and repeats
// keep their first position.
func (s *Service) ReplaceRoster(ctx context.Context, kind entities.RosterKind, names []string) ([]string, error) {
	if !kind.IsValid() {
		return nil, invalidKind(kind)
	}

	seen := make(map[string]bool, len(names))
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		cleaned = append(cleaned, name)
	}

	if err := s.repository.SaveRoster(ctx, kind, cleaned); err != nil {
		return nil, wrapRepositoryError("failed to save roster", err)
	}
	s.notify()
	s.log.Info("Replaced %s roster with %d names", kind, len(cleaned))
	return cleaned, nil
}

func invalidKind(kind entities.RosterKind) error {
	return types.NewAppError(types.ErrInvalidArgument, "unknown roster: "+string(kind))
}
