// Package importer turns loosely structured tabular text into validated,
// typed ledger records.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const bom = "\ufeff"

// candidateDelimiters are tried in order; ties go to the earlier one.
var candidateDelimiters = []rune{',', '\t', ';', '|'}

// Row maps a column name to its trimmed raw value. A column missing from
// the row reads as "".
type Row map[string]string

// Table is a fully materialised parse result.
type Table struct {
	Columns   []string
	Rows      []Row
	Delimiter rune
}

// ParseOptions controls Parse and ParseXLSX.
type ParseOptions struct {
	// NoHeader treats the first line as data. Columns then come from
	// Columns, or are named column_1, column_2, ...
	NoHeader bool
	Columns  []string
	// Delimiter forces a field separator. Zero means auto-detect.
	Delimiter rune
}

// Parse reads delimited text pasted from a spreadsheet or loaded from a
// file. The delimiter is detected from the first line, line endings may be
// mixed, values are trimmed and fully blank rows are dropped.
func Parse(input string, opts ParseOptions) (*Table, error) {
	text := normalizeNewlines(strings.TrimPrefix(input, bom))

	delim := opts.Delimiter
	if delim == 0 {
		delim = DetectDelimiter(firstLine(text))
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	var records [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse delimited text: %w", err)
		}
		records = append(records, rec)
	}

	t := buildTable(records, opts)
	t.Delimiter = delim
	return t, nil
}

// DetectDelimiter picks the candidate delimiter occurring most often in
// line outside of quoted sections. Comma is the fallback.
func DetectDelimiter(line string) rune {
	counts := make(map[rune]int, len(candidateDelimiters))
	inQuotes := false
	for _, c := range line {
		if c == '"' {
			inQuotes = !inQuotes
			continue
		}
		if !inQuotes {
			counts[c]++
		}
	}

	best, bestCount := ',', 0
	for _, d := range candidateDelimiters {
		if counts[d] > bestCount {
			best, bestCount = d, counts[d]
		}
	}
	return best
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}

// buildTable maps raw records onto column names. Cells beyond the header
// width are ignored.
func buildTable(records [][]string, opts ParseOptions) *Table {
	t := &Table{}
	if len(records) == 0 {
		t.Columns = append([]string(nil), opts.Columns...)
		return t
	}

	data := records
	if opts.NoHeader {
		t.Columns = positionalColumns(opts.Columns, maxWidth(records))
	} else {
		t.Columns = make([]string, len(records[0]))
		for i, h := range records[0] {
			t.Columns[i] = strings.TrimSpace(h)
		}
		data = records[1:]
	}

	for _, rec := range data {
		row := make(Row, len(t.Columns))
		blank := true
		for i, col := range t.Columns {
			var v string
			if i < len(rec) {
				v = strings.TrimSpace(rec[i])
			}
			if v != "" {
				blank = false
			}
			if _, seen := row[col]; !seen || v != "" {
				row[col] = v
			}
		}
		if !blank {
			t.Rows = append(t.Rows, row)
		}
	}
	return t
}

func positionalColumns(named []string, width int) []string {
	cols := make([]string, 0, width)
	for i := 0; i < width; i++ {
		if i < len(named) && named[i] != "" {
			cols = append(cols, named[i])
			continue
		}
		cols = append(cols, fmt.Sprintf("column_%d", i+1))
	}
	return cols
}

func maxWidth(records [][]string) int {
	w := 0
	for _, rec := range records {
		if len(rec) > w {
			w = len(rec)
		}
	}
	return w
}
