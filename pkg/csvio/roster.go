package csvio

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Encoding selects the byte encoding of an exported roster
type Encoding int

const (
	// UTF8BOM is UTF-8 with a byte order mark, which Excel detects
	UTF8BOM Encoding = iota
	// ShiftJIS matches what Excel writes on Japanese systems
	ShiftJIS
)

// ParseEncoding maps "sjis"/"shift_jis" to ShiftJIS and anything else to UTF8BOM
func ParseEncoding(raw string) Encoding {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sjis", "shift_jis", "shift-jis":
		return ShiftJIS
	}
	return UTF8BOM
}

// WriteRoster writes one name per line with CRLF line endings
func WriteRoster(w io.Writer, names []string, enc Encoding) error {
	text := strings.Join(names, "\r\n")

	if enc == ShiftJIS {
		tw := transform.NewWriter(w, japanese.ShiftJIS.NewEncoder())
		if _, err := io.WriteString(tw, text); err != nil {
			return fmt.Errorf("failed to encode roster as Shift_JIS: %w", err)
		}
		return tw.Close()
	}

	if _, err := w.Write(bom); err != nil {
		return fmt.Errorf("failed to write byte order mark: %w", err)
	}
	if _, err := io.WriteString(w, text); err != nil {
		return fmt.Errorf("failed to write roster: %w", err)
	}
	return nil
}

// ReadRoster reads one name per line. Blank lines are skipped and each
// name is trimmed. The file may be UTF-8, with or without a byte order
// mark, or Shift_JIS.
func ReadRoster(r io.Reader) ([]string, error) {
	text, err := decode(r)
	if err != nil {
		return nil, err
	}
	names := nonBlankLines(text)
	if names == nil {
		return []string{}, nil
	}
	return names, nil
}

func nonBlankLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
