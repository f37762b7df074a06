package report

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const maxSheetName = 31

// RenderXLSX writes sheet under the letterhead, title and generation date
// in a single worksheet named after title.
func RenderXLSX(title string, sheet Sheet, lh Letterhead, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	name := SheetName(title)
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	if err != nil {
		return nil, err
	}
	headStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"22C55E"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, err
	}

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(name, cell, v)
	}
	style := func(col, row, id int) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellStyle(name, cell, cell, id)
	}

	row := 1
	for _, line := range lh.banner() {
		write(1, row, line)
		row++
	}
	row++
	write(1, row, title)
	style(1, row, bold)
	row++
	write(1, row, "Generated on: "+generatedAt.Format("2 Jan 2006"))
	row += 2

	widths := make([]int, len(sheet.Columns))
	for i, h := range sheet.Columns {
		write(i+1, row, h)
		style(i+1, row, headStyle)
		widths[i] = utf8.RuneCountInString(h)
	}
	row++

	for _, cells := range sheet.Rows {
		for i, v := range cells {
			if v == nil || v == "" {
				continue
			}
			write(i+1, row, v)
			if _, ok := v.(float64); ok {
				style(i+1, row, amountStyle)
			}
			if n := utf8.RuneCountInString(fmt.Sprint(v)); n > widths[i] {
				widths[i] = n
			}
		}
		row++
	}

	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(name, col, col, float64(min(max(w+2, 12), 60)))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// SheetName makes title usable as a worksheet name: reserved characters
// are replaced and the result is cut to 31 characters.
func SheetName(title string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			return '-'
		}
		return r
	}, strings.TrimSpace(title))
	cleaned = strings.Trim(cleaned, "'")
	if cleaned == "" {
		return "Report"
	}
	if r := []rune(cleaned); len(r) > maxSheetName {
		cleaned = strings.TrimSpace(string(r[:maxSheetName]))
	}
	return cleaned
}
