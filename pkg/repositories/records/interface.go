package records

import (
	"context"

	"github.com/fadedpez/dugout/pkg/entities"
)

//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_records

// Repository stores the batting and pitching logs and the rosters. Lists
// return records in insertion order.
type Repository interface {
	// Batting log
	AppendBatting(ctx context.Context, rec *entities.BattingRecord) error
	UpdateBatting(ctx context.Context, rec *entities.BattingRecord) error
	DeleteBatting(ctx context.Context, id string) error
	ListBatting(ctx context.Context) ([]*entities.BattingRecord, error)
	ReplaceBatting(ctx context.Context, recs []*entities.BattingRecord) error

	// Pitching log
	AppendPitching(ctx context.Context, rec *entities.PitchingRecord) error
	DeletePitching(ctx context.Context, id string) error
	ListPitching(ctx context.Context) ([]*entities.PitchingRecord, error)
	ReplacePitching(ctx context.Context, recs []*entities.PitchingRecord) error

	// GetRoster returns the saved names for kind. ok is false when the
	// roster has never been saved.
	GetRoster(ctx context.Context, kind entities.RosterKind) (names []string, ok bool, err error)
	SaveRoster(ctx context.Context, kind entities.RosterKind, names []string) error

	// Close closes any resources used by the repository
	Close() error
}
