// Package report turns derived ledger views into printable documents and
// spreadsheet rows, and encodes them as PDF or XLSX.
package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/bizledger/internal/entity"
)

// TabularDocument is a titled table of preformatted strings.
type TabularDocument struct {
	Title   string
	Headers []string
	Body    [][]string
}

// ToTabularDocument projects rows onto keys in caller order. Rows keep their
// order and missing keys render as "".
func ToTabularDocument(title string, rows []map[string]string, keys, headers []string) TabularDocument {
	doc := TabularDocument{
		Title:   title,
		Headers: append([]string(nil), headers...),
		Body:    make([][]string, 0, len(rows)),
	}
	for _, row := range rows {
		line := make([]string, len(keys))
		for i, k := range keys {
			line[i] = row[k]
		}
		doc.Body = append(doc.Body, line)
	}
	return doc
}

// Field is one named spreadsheet value.
type Field struct {
	Key   string
	Value any
}

// Record is an ordered set of fields.
type Record []Field

// Get returns the value stored under key.
func (r Record) Get(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Sheet is a flat spreadsheet: a header and raw cell values.
type Sheet struct {
	Columns []string
	Rows    [][]any
}

// ToSpreadsheetRows flattens records into a sheet. Columns are ordered by
// first appearance across all records and missing or nil cells are empty
// strings. Amounts become float64 and dates become YYYY-MM-DD strings so
// spreadsheet software sees plain numbers and text.
func ToSpreadsheetRows(rows []Record) Sheet {
	var sheet Sheet
	index := make(map[string]int)
	for _, rec := range rows {
		for _, f := range rec {
			if _, ok := index[f.Key]; !ok {
				index[f.Key] = len(sheet.Columns)
				sheet.Columns = append(sheet.Columns, f.Key)
			}
		}
	}
	for _, rec := range rows {
		cells := make([]any, len(sheet.Columns))
		for i := range cells {
			cells[i] = ""
		}
		for _, f := range rec {
			cells[index[f.Key]] = flatten(f.Value)
		}
		sheet.Rows = append(sheet.Rows, cells)
	}
	return sheet
}

func flatten(v any) any {
	switch t := v.(type) {
	case nil:
		return ""
	case string, bool, int, int64, float64:
		return t
	case decimal.Decimal:
		return t.Round(2).InexactFloat64()
	case time.Time:
		return t.Format(entity.DateLayout)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
