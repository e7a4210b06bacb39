package records

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fadedpez/dugout/pkg/db/migrations"
	"github.com/fadedpez/dugout/pkg/entities"
)

const (
	battingColumns = `id, player, opponent, date, pa, ab, result, hit_type, rbi,
		batted_direction, run, sb, position, error`

	pitchingColumns = `id, pitcher, opponent, date, innings, pitches, batters, hits, hr,
		so, bb, hbp, wp, pb, bk, runs, er`

	insertBattingSQL = `INSERT INTO batting_records (` + battingColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	insertPitchingSQL = `INSERT INTO pitching_records (` + pitchingColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
)

// execer is satisfied by both *sql.DB and *sql.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// SQLiteRepository implements the Repository interface using SQLite
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens the database at dbPath and applies the
// embedded migrations. ":memory:" opens a private in-memory database.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dbPath != ":memory:" {
		dbDir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("error creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if dbPath == ":memory:" {
		// every new connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	migrator := migrations.NewMigrator(db, migrations.Embedded())
	if _, err := migrator.MigrateUp(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// AppendBatting adds a plate appearance to the end of the log
func (r *SQLiteRepository) AppendBatting(ctx context.Context, rec *entities.BattingRecord) error {
	if err := insertBatting(ctx, r.db, rec); err != nil {
		return fmt.Errorf("error inserting batting record: %w", err)
	}
	return nil
}

// UpdateBatting replaces the plate appearance with the same ID, keeping
// its place in the log
func (r *SQLiteRepository) UpdateBatting(ctx context.Context, rec *entities.BattingRecord) error {
	query := `
		UPDATE batting_records SET
			player = ?, opponent = ?, date = ?, pa = ?, ab = ?, result = ?, hit_type = ?,
			rbi = ?, batted_direction = ?, run = ?, sb = ?, position = ?, error = ?
		WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query,
		rec.Player, rec.Opponent, rec.Date, rec.PA, rec.AB, string(rec.Result), string(rec.HitType),
		rec.RBI, rec.BattedDirection, rec.Run, rec.SB, rec.Position, rec.Error, rec.ID)
	if err != nil {
		return fmt.Errorf("error updating batting record: %w", err)
	}
	return requireAffected(res, rec.ID)
}

// DeleteBatting removes a plate appearance
func (r *SQLiteRepository) DeleteBatting(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM batting_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error deleting batting record: %w", err)
	}
	return requireAffected(res, id)
}

// ListBatting returns the batting log in insertion order
func (r *SQLiteRepository) ListBatting(ctx context.Context) ([]*entities.BattingRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+battingColumns+` FROM batting_records ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("error listing batting records: %w", err)
	}
	defer rows.Close()

	out := []*entities.BattingRecord{}
	for rows.Next() {
		var (
			rec     entities.BattingRecord
			result  string
			hitType string
		)
		err := rows.Scan(
			&rec.ID, &rec.Player, &rec.Opponent, &rec.Date, &rec.PA, &rec.AB, &result, &hitType,
			&rec.RBI, &rec.BattedDirection, &rec.Run, &rec.SB, &rec.Position, &rec.Error,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning batting record: %w", err)
		}
		rec.Result = entities.Result(result)
		rec.HitType = entities.HitType(hitType)
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// ReplaceBatting swaps the whole batting log in one transaction
func (r *SQLiteRepository) ReplaceBatting(ctx context.Context, recs []*entities.BattingRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM batting_records`); err != nil {
		return fmt.Errorf("error clearing batting records: %w", err)
	}
	for _, rec := range recs {
		if err := insertBatting(ctx, tx, rec); err != nil {
			return fmt.Errorf("error inserting batting record: %w", err)
		}
	}
	return tx.Commit()
}

// AppendPitching adds an outing to the end of the log
func (r *SQLiteRepository) AppendPitching(ctx context.Context, rec *entities.PitchingRecord) error {
	if err := insertPitching(ctx, r.db, rec); err != nil {
		return fmt.Errorf("error inserting pitching record: %w", err)
	}
	return nil
}

// DeletePitching removes an outing
func (r *SQLiteRepository) DeletePitching(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pitching_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error deleting pitching record: %w", err)
	}
	return requireAffected(res, id)
}

// ListPitching returns the pitching log in insertion order
func (r *SQLiteRepository) ListPitching(ctx context.Context) ([]*entities.PitchingRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+pitchingColumns+` FROM pitching_records ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("error listing pitching records: %w", err)
	}
	defer rows.Close()

	out := []*entities.PitchingRecord{}
	for rows.Next() {
		var rec entities.PitchingRecord
		err := rows.Scan(
			&rec.ID, &rec.Pitcher, &rec.Opponent, &rec.Date, &rec.Innings, &rec.Pitches,
			&rec.Batters, &rec.Hits, &rec.HR, &rec.SO, &rec.BB, &rec.HBP, &rec.WP, &rec.PB,
			&rec.BK, &rec.Runs, &rec.ER,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning pitching record: %w", err)
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// ReplacePitching swaps the whole pitching log in one transaction
func (r *SQLiteRepository) ReplacePitching(ctx context.Context, recs []*entities.PitchingRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pitching_records`); err != nil {
		return fmt.Errorf("error clearing pitching records: %w", err)
	}
	for _, rec := range recs {
		if err := insertPitching(ctx, tx, rec); err != nil {
			return fmt.Errorf("error inserting pitching record: %w", err)
		}
	}
	return tx.Commit()
}

// GetRoster returns the saved names for kind in their saved order
func (r *SQLiteRepository) GetRoster(ctx context.Context, kind entities.RosterKind) ([]string, bool, error) {
	var saved string
	err := r.db.QueryRowContext(ctx, `SELECT kind FROM roster_kinds WHERE kind = ?`, string(kind)).Scan(&saved)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("error reading roster: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT name FROM roster_entries WHERE kind = ? ORDER BY position`, string(kind))
	if err != nil {
		return nil, false, fmt.Errorf("error reading roster entries: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, false, err
		}
		names = append(names, name)
	}
	return names, true, rows.Err()
}

// SaveRoster stores the names for kind, replacing any previous list
func (r *SQLiteRepository) SaveRoster(ctx context.Context, kind entities.RosterKind, names []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO roster_kinds (kind, updated_at) VALUES (?, CURRENT_TIMESTAMP)
		ON CONFLICT(kind) DO UPDATE SET updated_at = CURRENT_TIMESTAMP`, string(kind))
	if err != nil {
		return fmt.Errorf("error saving roster: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM roster_entries WHERE kind = ?`, string(kind)); err != nil {
		return fmt.Errorf("error clearing roster: %w", err)
	}
	for i, name := range names {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO roster_entries (kind, position, name) VALUES (?, ?, ?)`, string(kind), i, name)
		if err != nil {
			return fmt.Errorf("error saving roster entry: %w", err)
		}
	}
	return tx.Commit()
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func insertBatting(ctx context.Context, db execer, rec *entities.BattingRecord) error {
	_, err := db.ExecContext(ctx, insertBattingSQL,
		rec.ID, rec.Player, rec.Opponent, rec.Date, rec.PA, rec.AB, string(rec.Result), string(rec.HitType),
		rec.RBI, rec.BattedDirection, rec.Run, rec.SB, rec.Position, rec.Error)
	return err
}

func insertPitching(ctx context.Context, db execer, rec *entities.PitchingRecord) error {
	_, err := db.ExecContext(ctx, insertPitchingSQL,
		rec.ID, rec.Pitcher, rec.Opponent, rec.Date, rec.Innings, rec.Pitches, rec.Batters,
		rec.Hits, rec.HR, rec.SO, rec.BB, rec.HBP, rec.WP, rec.PB, rec.BK, rec.Runs, rec.ER)
	return err
}

func requireAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return recordNotFound(id)
	}
	return nil
}
