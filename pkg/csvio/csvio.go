// Package csvio reads and writes the record logs and rosters as the CSV
// files the team keeps in Excel.
package csvio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/fadedpez/dugout/pkg/entities"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// BattingHeader is the column order of an exported batting log
var BattingHeader = []string{
	"player", "opponent", "date", "pa", "ab", "result", "hitType", "rbi",
	"battedDirection", "run", "sb", "position", "error",
}

// PitchingHeader is the column order of an exported pitching log
var PitchingHeader = []string{
	"pitcher", "opponent", "date", "innings", "pitches", "batters", "hits",
	"hr", "so", "bb", "hbp", "wp", "pb", "bk", "runs", "er",
}

// WriteBatting writes recs as a UTF-8 CSV with a byte order mark and CRLF
// line endings. Results and hit types are written as their labels.
func WriteBatting(w io.Writer, recs []*entities.BattingRecord) error {
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		if r == nil {
			continue
		}
		rows = append(rows, []string{
			r.Player, r.Opponent, r.Date, r.PA, r.AB,
			enumText(r.Result.Label(), string(r.Result)),
			enumText(r.HitType.Label(), string(r.HitType)),
			r.RBI, r.BattedDirection, r.Run, r.SB, r.Position, r.Error,
		})
	}
	return write(w, BattingHeader, rows)
}

// WritePitching writes recs as a UTF-8 CSV with a byte order mark and CRLF
// line endings
func WritePitching(w io.Writer, recs []*entities.PitchingRecord) error {
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		if r == nil {
			continue
		}
		rows = append(rows, []string{
			r.Pitcher, r.Opponent, r.Date, r.Innings, r.Pitches, r.Batters,
			r.Hits, r.HR, r.SO, r.BB, r.HBP, r.WP, r.PB, r.BK, r.Runs, r.ER,
		})
	}
	return write(w, PitchingHeader, rows)
}

// ReadBatting parses a batting CSV. Columns are matched by header name in
// any order and missing columns read as empty. Results and hit types are
// accepted as labels or codes; anything else becomes unknown and is
// counted without a category. Records have no ID.
func ReadBatting(r io.Reader) ([]*entities.BattingRecord, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	recs := make([]*entities.BattingRecord, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, &entities.BattingRecord{
			Player:          row.get("player"),
			Opponent:        row.get("opponent"),
			Date:            row.get("date"),
			PA:              row.get("pa"),
			AB:              row.get("ab"),
			Result:          entities.ParseResult(row.get("result")),
			HitType:         entities.ParseHitType(row.get("hitType")),
			RBI:             row.get("rbi"),
			BattedDirection: row.get("battedDirection"),
			Run:             row.get("run"),
			SB:              row.get("sb"),
			Position:        row.get("position"),
			Error:           row.get("error"),
		})
	}
	return recs, nil
}

// ReadPitching parses a pitching CSV the same way as ReadBatting
func ReadPitching(r io.Reader) ([]*entities.PitchingRecord, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	recs := make([]*entities.PitchingRecord, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, &entities.PitchingRecord{
			Pitcher:  row.get("pitcher"),
			Opponent: row.get("opponent"),
			Date:     row.get("date"),
			Innings:  row.get("innings"),
			Pitches:  row.get("pitches"),
			Batters:  row.get("batters"),
			Hits:     row.get("hits"),
			HR:       row.get("hr"),
			SO:       row.get("so"),
			BB:       row.get("bb"),
			HBP:      row.get("hbp"),
			WP:       row.get("wp"),
			PB:       row.get("pb"),
			BK:       row.get("bk"),
			Runs:     row.get("runs"),
			ER:       row.get("er"),
		})
	}
	return recs, nil
}

// row is one data line keyed by header name
type row struct {
	index  map[string]int
	fields []string
}

func (r row) get(name string) string {
	i, ok := r.index[name]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return r.fields[i]
}

func write(w io.Writer, header []string, rows [][]string) error {
	if _, err := w.Write(bom); err != nil {
		return fmt.Errorf("failed to write byte order mark: %w", err)
	}

	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	return nil
}

// readRows decodes r and splits it into a header and data rows. Records
// whose fields are all blank are skipped, and a file with no data row after
// the header has no data. Field values are kept as written, so quoted
// whitespace and line breaks survive a round trip.
func readRows(r io.Reader) ([]row, error) {
	text, err := decode(r)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(strings.NewReader(text))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var records [][]string
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV: %w", err)
		}
		if blank(fields) {
			continue
		}
		records = append(records, fields)
	}
	if len(records) < 2 {
		return nil, nil
	}

	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		name = strings.TrimSpace(name)
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	rows := make([]row, 0, len(records)-1)
	for _, fields := range records[1:] {
		rows = append(rows, row{index: index, fields: fields})
	}
	return rows, nil
}

func blank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// decode returns the file as UTF-8 text. Bytes that are not valid UTF-8
// are read as Shift_JIS, which is what Excel saves on Japanese systems.
func decode(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read CSV: %w", err)
	}
	data = bytes.TrimPrefix(data, bom)

	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("failed to decode Shift_JIS: %w", err)
	}
	return string(decoded), nil
}

// enumText prefers the label and keeps unlabelled values as written
func enumText(label, code string) string {
	if label != "" {
		return label
	}
	return code
}
