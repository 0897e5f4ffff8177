package answer

import (
	"strings"

	"github.com/studyquery/backend/internal/models"
)

// Separator is the column delimiter of the tabular answer format. There is
// no escaping: a literal separator inside a cell shifts the columns of that
// row. That is an accepted limitation of the format, not something the
// parser tries to repair.
const Separator = "|"

// ParseTable converts a pipe-delimited text block into a structured grid.
// The second return value is false when the input is not a table, in which
// case the caller must fall back to showing the raw text.
//
// Layout expectations: line 0 is the header, line 1 is a decoration row
// (dashes, usually) that is discarded without inspection, lines 2..N are
// body rows. Lines without a separator are dropped before any of this.
// Body rows shorter than the header are padded with empty cells; longer
// rows are cut to header width, so every row matches the header length.
// Row order follows the source text.
func ParseTable(text string) (*models.Table, bool) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, Separator) {
			lines = append(lines, line)
		}
	}

	if len(lines) < 2 {
		return nil, false
	}

	header := splitCells(lines[0])

	// lines[1] is the decoration row, skipped unconditionally.
	rows := make([][]string, 0, len(lines)-2)
	for _, line := range lines[2:] {
		cells := splitCells(line)
		for len(cells) < len(header) {
			cells = append(cells, "")
		}
		rows = append(rows, cells[:len(header)])
	}

	return &models.Table{Header: header, Rows: rows}, true
}

func splitCells(line string) []string {
	parts := strings.Split(line, Separator)
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}
