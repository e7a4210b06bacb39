// Package report renders box scores as aligned monospace text for Discord
// code blocks and the command line.
package report

import (
	"io"
	"strings"

	"golang.org/x/text/width"
)

type align int

const (
	alignLeft align = iota
	alignRight
)

type column struct {
	title string
	align align
}

// table collects rows and pads every cell to its column's display width.
// Wide and fullwidth runes take two cells, so Japanese names line up with
// ASCII digits in a monospace font.
type table struct {
	columns []column
	rows    [][]string
	rules   map[int]bool
}

func newTable(columns ...column) *table {
	return &table{columns: columns, rules: make(map[int]bool)}
}

func left(title string) column  { return column{title: title, align: alignLeft} }
func right(title string) column { return column{title: title, align: alignRight} }

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

// rule draws a separator above the next row added
func (t *table) rule() {
	t.rules[len(t.rows)] = true
}

func (t *table) render(w io.Writer) error {
	widths := make([]int, len(t.columns))
	for i, c := range t.columns {
		widths[i] = displayWidth(c.title)
	}
	for _, row := range t.rows {
		for i := range t.columns {
			if i < len(row) {
				widths[i] = max(widths[i], displayWidth(row[i]))
			}
		}
	}

	total := 0
	for _, wd := range widths {
		total += wd
	}
	separator := strings.Repeat("-", total+2*(len(widths)-1))

	var b strings.Builder
	header := make([]string, len(t.columns))
	for i, c := range t.columns {
		header[i] = c.title
	}
	t.line(&b, header, widths)
	b.WriteString(separator + "\n")
	for i, row := range t.rows {
		if t.rules[i] {
			b.WriteString(separator + "\n")
		}
		t.line(&b, row, widths)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (t *table) line(b *strings.Builder, cells []string, widths []int) {
	parts := make([]string, len(t.columns))
	for i, c := range t.columns {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := strings.Repeat(" ", widths[i]-displayWidth(cell))
		if c.align == alignRight {
			parts[i] = pad + cell
		} else {
			parts[i] = cell + pad
		}
	}
	b.WriteString(strings.TrimRight(strings.Join(parts, "  "), " ") + "\n")
}

// displayWidth counts the monospace cells s occupies
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}
