package answer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/studyquery/backend/internal/models"
)

func TestParseTable(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   *models.Table
		wantOK bool
	}{
		{
			name:   "empty input",
			input:  "",
			wantOK: false,
		},
		{
			name:   "plain prose without separators",
			input:  "TCP is connection-oriented.\nUDP is not.",
			wantOK: false,
		},
		{
			name:   "single separator line",
			input:  "just one line | with a pipe",
			wantOK: false,
		},
		{
			name:  "minimal well-formed table",
			input: "A|B\n---|---\n1|2",
			want: &models.Table{
				Header: []string{"A", "B"},
				Rows:   [][]string{{"1", "2"}},
			},
			wantOK: true,
		},
		{
			name:  "cells are trimmed",
			input: " Feature | TCP | UDP \n---|---|---\n Ordering | yes |  no ",
			want: &models.Table{
				Header: []string{"Feature", "TCP", "UDP"},
				Rows:   [][]string{{"Ordering", "yes", "no"}},
			},
			wantOK: true,
		},
		{
			name:  "decoration row content is never validated",
			input: "A|B\nthis | is not dashes\n1|2",
			want: &models.Table{
				Header: []string{"A", "B"},
				Rows:   [][]string{{"1", "2"}},
			},
			wantOK: true,
		},
		{
			name:  "non-separator lines are discarded before layout",
			input: "Here is a comparison:\nA|B\n---|---\n1|2\nHope that helps!",
			want: &models.Table{
				Header: []string{"A", "B"},
				Rows:   [][]string{{"1", "2"}},
			},
			wantOK: true,
		},
		{
			name:  "short rows are padded to header width",
			input: "A|B|C\n---|---|---\n1|2",
			want: &models.Table{
				Header: []string{"A", "B", "C"},
				Rows:   [][]string{{"1", "2", ""}},
			},
			wantOK: true,
		},
		{
			name:  "long rows are cut to header width",
			input: "A|B\n---|---\n1|2|3",
			want: &models.Table{
				Header: []string{"A", "B"},
				Rows:   [][]string{{"1", "2"}},
			},
			wantOK: true,
		},
		{
			name:  "header plus decoration only yields empty body",
			input: "A|B\n---|---",
			want: &models.Table{
				Header: []string{"A", "B"},
				Rows:   [][]string{},
			},
			wantOK: true,
		},
		{
			name:  "row order follows source order",
			input: "K|V\n---|---\nz|26\na|1\nm|13",
			want: &models.Table{
				Header: []string{"K", "V"},
				Rows:   [][]string{{"z", "26"}, {"a", "1"}, {"m", "13"}},
			},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTable(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestParseTable_RowWidthInvariant(t *testing.T) {
	// Every produced row must match the header length, whatever the input.
	inputs := []string{
		"A|B|C\n---\n1\n1|2\n1|2|3\n1|2|3|4",
		"h1|h2\nx\na|b|c|d|e",
	}
	for _, input := range inputs {
		table, ok := ParseTable(input)
		if !ok {
			continue
		}
		for i, row := range table.Rows {
			assert.Len(t, row, len(table.Header), "row %d width mismatch", i)
		}
	}
}
