package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	pdfRowHeight    = 7.0
	pdfHeaderHeight = 8.0
)

var (
	brandRGB  = [3]int{34, 197, 94}
	stripeRGB = [3]int{248, 250, 252}
)

// RenderPDF lays out doc as an A4 table under the letterhead, repeating the
// header row on every page.
func RenderPDF(doc TabularDocument, lh Letterhead, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("bizledger", true)
	pdf.SetCreationDate(generatedAt)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(false, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	for i, line := range lh.banner() {
		switch i {
		case 0:
			pdf.SetFont("Helvetica", "B", 20)
			pdf.SetTextColor(brandRGB[0], brandRGB[1], brandRGB[2])
			pdf.CellFormat(0, 10, tr(line), "", 1, "L", false, 0, "")
		default:
			pdf.SetFont("Helvetica", "", 11)
			pdf.SetTextColor(0, 0, 0)
			pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 15)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, tr(doc.Title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Generated on: "+generatedAt.Format("2 Jan 2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	cols := len(doc.Headers)
	if cols == 0 {
		return output(pdf)
	}
	pageW, pageH := pdf.GetPageSize()
	left, _, right, bottom := pdf.GetMargins()
	colW := (pageW - left - right) / float64(cols)

	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(brandRGB[0], brandRGB[1], brandRGB[2])
		pdf.SetTextColor(255, 255, 255)
		for _, h := range doc.Headers {
			pdf.CellFormat(colW, pdfHeaderHeight, tr(fit(pdf, h, colW)), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
	}
	header()

	for r, row := range doc.Body {
		if pdf.GetY()+pdfRowHeight > pageH-bottom-10 {
			pdf.AddPage()
			header()
		}
		fill := r%2 == 1
		if fill {
			pdf.SetFillColor(stripeRGB[0], stripeRGB[1], stripeRGB[2])
		}
		for c := 0; c < cols; c++ {
			var v string
			if c < len(row) {
				v = row[c]
			}
			pdf.CellFormat(colW, pdfRowHeight, tr(fit(pdf, v, colW)), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}
	return output(pdf)
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf write: %w", err)
	}
	return buf.Bytes(), nil
}

// fit truncates s so it fits a cell of width w with padding.
func fit(pdf *fpdf.Fpdf, s string, w float64) string {
	limit := w - 2*pdf.GetCellMargin()
	if pdf.GetStringWidth(s) <= limit {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > limit {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
