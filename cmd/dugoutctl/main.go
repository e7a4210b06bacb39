package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fadedpez/dugout/internal/app"
	"github.com/fadedpez/dugout/internal/config"
	"github.com/fadedpez/dugout/internal/logging"
	"github.com/fadedpez/dugout/pkg/csvio"
	"github.com/fadedpez/dugout/pkg/db/migrations"
	"github.com/fadedpez/dugout/pkg/report"
	"github.com/fadedpez/dugout/pkg/services/statistics"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(1)
		}
		log.Fatalf("Error: %v", err)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) < 1 {
		printUsage(out)
		return errUsage
	}

	switch args[0] {
	case "migrate":
		return migrate(ctx, args[1:], out)
	case "create":
		return createMigration(args[1:], out)
	case "import":
		return importCSV(ctx, args[1:], out)
	case "export":
		return exportCSV(ctx, args[1:], out)
	case "report":
		return printReport(ctx, args[1:], out)
	case "help":
		printUsage(out)
		return nil
	default:
		fmt.Fprintf(out, "Error: Unknown command '%s'\n\n", args[0])
		printUsage(out)
		return errUsage
	}
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintln(out, "  dugoutctl migrate [-db PATH]                      - Apply pending migrations")
	fmt.Fprintln(out, "  dugoutctl create [-dir DIR] DESCRIPTION           - Create a new migration")
	fmt.Fprintln(out, "  dugoutctl import -kind batting|pitching FILE      - Replace a record log from CSV")
	fmt.Fprintln(out, "  dugoutctl export -kind batting|pitching [-o FILE] - Write a record log as CSV")
	fmt.Fprintln(out, "  dugoutctl report [-kind batting|pitching|chart] [-month YYYY-MM] [-player NAME] [-sort COLUMN] [-asc]")
	fmt.Fprintln(out, "  dugoutctl help                                    - Show this help")
	fmt.Fprintln(out, "\nThe record store is selected by the same environment as the dugout service.")
	fmt.Fprintln(out, "\nExamples:")
	fmt.Fprintln(out, "  dugoutctl import -kind batting batting.csv")
	fmt.Fprintln(out, "  dugoutctl report -kind batting -month 2025-04 -sort avg")
}

func migrate(ctx context.Context, args []string, out io.Writer) error {
	cmd := flag.NewFlagSet("migrate", flag.ContinueOnError)
	dbPath := cmd.String("db", "", "Path to SQLite database (defaults to DB_PATH)")
	if err := cmd.Parse(args); err != nil {
		return errUsage
	}

	path := *dbPath
	if path == "" {
		cfg, err := config.LoadStore()
		if err != nil {
			return err
		}
		path = cfg.DBPath
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating database directory: %w", err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer db.Close()

	applied, err := migrations.NewMigrator(db, migrations.Embedded()).MigrateUp(ctx)
	if err != nil {
		return fmt.Errorf("error applying migrations: %w", err)
	}

	fmt.Fprintf(out, "Applied %d migrations to %s\n", applied, path)
	return nil
}

func createMigration(args []string, out io.Writer) error {
	cmd := flag.NewFlagSet("create", flag.ContinueOnError)
	dir := cmd.String("dir", filepath.Join("pkg", "db", "migrations", "sql"), "Directory to store migrations")
	if err := cmd.Parse(args); err != nil {
		return errUsage
	}
	if cmd.NArg() < 1 {
		fmt.Fprintln(out, "Error: Missing migration description")
		cmd.Usage()
		return errUsage
	}

	path, err := migrations.CreateMigration(*dir, cmd.Arg(0))
	if err != nil {
		return fmt.Errorf("error creating migration: %w", err)
	}
	fmt.Fprintf(out, "Created migration file: %s\n", path)
	return nil
}

func importCSV(ctx context.Context, args []string, out io.Writer) error {
	cmd := flag.NewFlagSet("import", flag.ContinueOnError)
	kind := cmd.String("kind", "batting", "Record log to replace: batting or pitching")
	if err := cmd.Parse(args); err != nil {
		return errUsage
	}
	if cmd.NArg() < 1 {
		fmt.Fprintln(out, "Error: Missing CSV file")
		cmd.Usage()
		return errUsage
	}

	f, err := os.Open(cmd.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	return withApp(ctx, func(a *app.App) error {
		var n int
		switch *kind {
		case "batting":
			recs, err := csvio.ReadBatting(f)
			if err != nil {
				return err
			}
			if n, err = a.Records.ImportBatting(ctx, recs); err != nil {
				return err
			}
		case "pitching":
			recs, err := csvio.ReadPitching(f)
			if err != nil {
				return err
			}
			if n, err = a.Records.ImportPitching(ctx, recs); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown kind %q", *kind)
		}
		fmt.Fprintf(out, "Imported %d %s records\n", n, *kind)
		return nil
	})
}

func exportCSV(ctx context.Context, args []string, out io.Writer) error {
	cmd := flag.NewFlagSet("export", flag.ContinueOnError)
	kind := cmd.String("kind", "batting", "Record log to write: batting or pitching")
	output := cmd.String("o", "", "Output file (defaults to stdout)")
	if err := cmd.Parse(args); err != nil {
		return errUsage
	}

	w := out
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	return withApp(ctx, func(a *app.App) error {
		switch *kind {
		case "batting":
			recs, err := a.Records.Batting(ctx)
			if err != nil {
				return err
			}
			return csvio.WriteBatting(w, recs)
		case "pitching":
			recs, err := a.Records.Pitching(ctx)
			if err != nil {
				return err
			}
			return csvio.WritePitching(w, recs)
		default:
			return fmt.Errorf("unknown kind %q", *kind)
		}
	})
}

func printReport(ctx context.Context, args []string, out io.Writer) error {
	cmd := flag.NewFlagSet("report", flag.ContinueOnError)
	kind := cmd.String("kind", "batting", "Report to print: batting, pitching or chart")
	var f statistics.Filter
	cmd.StringVar(&f.Month, "month", "", "Only this month (YYYY-MM)")
	cmd.StringVar(&f.FromMonth, "from", "", "First month of a range (YYYY-MM)")
	cmd.StringVar(&f.ToMonth, "to", "", "Last month of a range (YYYY-MM)")
	cmd.StringVar(&f.Player, "player", "", "Only this player or pitcher")
	cmd.StringVar(&f.Opponent, "opponent", "", "Only games against this opponent")
	sortKey := cmd.String("sort", "", "Column to sort by")
	asc := cmd.Bool("asc", false, "Sort ascending")
	if err := cmd.Parse(args); err != nil {
		return errUsage
	}

	return withApp(ctx, func(a *app.App) error {
		switch *kind {
		case "batting":
			state := statistics.DefaultBattingSort()
			if *sortKey != "" {
				key, ok := statistics.ParseBattingSortKey(*sortKey)
				if !ok {
					return fmt.Errorf("unknown sort column %q", *sortKey)
				}
				state.Key = key
			}
			state.Asc = *asc
			t, err := a.Statistics.BattingTable(ctx, f, state)
			if err != nil {
				return err
			}
			return report.BattingTable(out, t)
		case "pitching":
			state := statistics.DefaultPitchingSort()
			if *sortKey != "" {
				key, ok := statistics.ParsePitchingSortKey(*sortKey)
				if !ok {
					return fmt.Errorf("unknown sort column %q", *sortKey)
				}
				state.Key = key
			}
			state.Asc = *asc
			t, err := a.Statistics.PitchingTable(ctx, f, state)
			if err != nil {
				return err
			}
			return report.PitchingTable(out, t)
		case "chart":
			c, err := a.Statistics.Chart(ctx, f)
			if err != nil {
				return err
			}
			return report.Chart(out, c)
		default:
			return fmt.Errorf("unknown kind %q", *kind)
		}
	})
}

func withApp(ctx context.Context, fn func(a *app.App) error) error {
	cfg, err := config.LoadStore()
	if err != nil {
		return err
	}

	// Progress goes to stderr so exports can be piped
	logger := logging.Default
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logging.ParseLevel(cfg.LogLevel))
	a, err := app.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	return errors.Join(fn(a), a.Close())
}
