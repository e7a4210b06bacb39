package statistics

import (
	"context"
	"strings"

	"github.com/fadedpez/dugout/internal/types"
	"github.com/fadedpez/dugout/pkg/entities"
)

// RecordSource is the read side of the records repository
type RecordSource interface {
	ListBatting(ctx context.Context) ([]*entities.BattingRecord, error)
	ListPitching(ctx context.Context) ([]*entities.PitchingRecord, error)
	GetRoster(ctx context.Context, kind entities.RosterKind) ([]string, bool, error)
}

// Service answers box-score queries over the stored record logs. Nothing
// is cached here; every call re-aggregates the filtered log.
type Service struct {
	repository RecordSource
}

// NewService creates a new statistics service
func NewService(repository RecordSource) *Service {
	return &Service{
		repository: repository,
	}
}

// BattingTable is the batting leaderboard for one filter and sort
type BattingTable struct {
	Filter Filter                       `json:"filter"`
	Sort   SortState[BattingSortKey]    `json:"sort"`
	Rows   []*entities.BattingAggregate `json:"rows"`
	Team   TeamBatting                  `json:"team"`
}

// PitchingTable is the pitching leaderboard for one filter and sort
type PitchingTable struct {
	Filter Filter                        `json:"filter"`
	Sort   SortState[PitchingSortKey]    `json:"sort"`
	Rows   []*entities.PitchingAggregate `json:"rows"`
	Team   TeamPitching                  `json:"team"`
}

// PlayerDetail is one player's line and the plate appearances behind it
type PlayerDetail struct {
	Player    string                     `json:"player"`
	Aggregate *entities.BattingAggregate `json:"aggregate"`
	Records   []*entities.BattingRecord  `json:"records"`
}

// Months lists the months that have records, in the order each picker
// shows them
type Months struct {
	Batting  []string `json:"batting"`
	Pitching []string `json:"pitching"`
}

// BattingTable filters the batting log, aggregates it and sorts the
// players. Roster players without matching records get an empty row that
// sorts below every recorded player. Recorded players missing from the
// roster keep their row, so removing a name does not hide its stats.
func (s *Service) BattingTable(ctx context.Context, f Filter, state SortState[BattingSortKey]) (*BattingTable, error) {
	records, err := s.repository.ListBatting(ctx)
	if err != nil {
		return nil, wrapError("failed to load batting records", err)
	}
	roster, err := s.roster(ctx, entities.RosterBatters)
	if err != nil {
		return nil, err
	}

	filtered := FilterBatting(records, f)
	stats := AggregateBatting(filtered)
	players := SortPlayers(lineup(roster, battingNames(filtered), f.Player), stats, state)

	rows := make([]*entities.BattingAggregate, 0, len(players))
	for _, p := range players {
		rows = append(rows, battingRow(p, stats))
	}

	return &BattingTable{
		Filter: f,
		Sort:   state,
		Rows:   rows,
		Team:   BattingTotals(filtered),
	}, nil
}

// PitchingTable filters the outings, aggregates them and sorts the
// pitchers. Only pitchers with a matching outing get a row; the pitcher
// roster feeds input pickers, not this table.
func (s *Service) PitchingTable(ctx context.Context, f Filter, state SortState[PitchingSortKey]) (*PitchingTable, error) {
	records, err := s.repository.ListPitching(ctx)
	if err != nil {
		return nil, wrapError("failed to load pitching records", err)
	}

	filtered := FilterPitching(records, f)
	stats := AggregatePitching(filtered)
	pitchers := SortPitchers(lineup(nil, pitchingNames(filtered), ""), stats, state)

	rows := make([]*entities.PitchingAggregate, 0, len(pitchers))
	for _, p := range pitchers {
		rows = append(rows, stats[p])
	}

	return &PitchingTable{
		Filter: f,
		Sort:   state,
		Rows:   rows,
		Team:   PitchingTotals(filtered),
	}, nil
}

// Chart builds the batting chart in roster order
func (s *Service) Chart(ctx context.Context, f Filter) (*Chart, error) {
	records, err := s.repository.ListBatting(ctx)
	if err != nil {
		return nil, wrapError("failed to load batting records", err)
	}
	roster, err := s.roster(ctx, entities.RosterBatters)
	if err != nil {
		return nil, err
	}

	filtered := FilterBatting(records, f)
	chart := BattingChart(lineup(roster, battingNames(filtered), f.Player), AggregateBatting(filtered))
	return &chart, nil
}

// PlayerDetail returns one player's aggregate and records in entry order.
// The player filter is always the named player.
func (s *Service) PlayerDetail(ctx context.Context, player string, f Filter) (*PlayerDetail, error) {
	player = strings.TrimSpace(player)
	if player == "" {
		return nil, types.NewAppError(types.ErrPlayerRequired, "player is required")
	}

	records, err := s.repository.ListBatting(ctx)
	if err != nil {
		return nil, wrapError("failed to load batting records", err)
	}

	f.Player = player
	filtered := FilterBatting(records, f)
	return &PlayerDetail{
		Player:    player,
		Aggregate: battingRow(player, AggregateBatting(filtered)),
		Records:   filtered,
	}, nil
}

// Months lists the batting months newest first and the pitching months
// oldest first
func (s *Service) Months(ctx context.Context) (*Months, error) {
	batting, err := s.repository.ListBatting(ctx)
	if err != nil {
		return nil, wrapError("failed to load batting records", err)
	}
	pitching, err := s.repository.ListPitching(ctx)
	if err != nil {
		return nil, wrapError("failed to load pitching records", err)
	}
	return &Months{
		Batting:  BattingMonths(batting),
		Pitching: PitchingMonths(pitching),
	}, nil
}

func (s *Service) roster(ctx context.Context, kind entities.RosterKind) ([]string, error) {
	names, ok, err := s.repository.GetRoster(ctx, kind)
	if err != nil {
		return nil, wrapError("failed to load roster", err)
	}
	if !ok && kind == entities.RosterBatters {
		return entities.DefaultBatters, nil
	}
	return names, nil
}

// lineup is the roster followed by recorded names missing from it, in
// first-appearance order. A player filter narrows it to that one name.
func lineup(roster, recorded []string, only string) []string {
	if only != "" {
		return []string{only}
	}
	seen := make(map[string]bool, len(roster)+len(recorded))
	out := make([]string, 0, len(roster)+len(recorded))
	for _, names := range [][]string{roster, recorded} {
		for _, n := range names {
			if n == "" || seen[n] {
				continue
			}
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

func battingNames(records []*entities.BattingRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Player)
	}
	return out
}

func pitchingNames(records []*entities.PitchingRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Pitcher)
	}
	return out
}

func battingRow(player string, stats map[string]*entities.BattingAggregate) *entities.BattingAggregate {
	if agg, ok := stats[player]; ok {
		return agg
	}
	return &entities.BattingAggregate{Player: player, AVG: NoData, OBP: NoData}
}

func wrapError(message string, err error) error {
	var appErr *types.AppError
	if types.As(err, &appErr) {
		return appErr
	}
	return types.WrapError(types.ErrDatabaseError, message, err)
}
