package export

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/AnshRaj112/laporan-backend/internal/models"
	"github.com/go-pdf/fpdf"
)

// Page geometry in millimetres on A4 portrait.
const (
	pdfTitle      = "Laporan Kinerja Harian"
	pdfCenterX    = 105.0
	pdfLeftX      = 14.0
	pdfHeaderY    = 40.0
	pdfLineHeight = 8.0
	pdfBottomY    = 270.0
	pdfTopY       = 20.0

	maxNameRunes    = 30
	maxOutcomeRunes = 20
)

var (
	pdfHeaders   = [7]string{"No", "Tanggal", "Kegiatan", "Mulai", "Selesai", "Volume", "Hasil"}
	pdfColWidths = [7]float64{10, 25, 55, 20, 20, 20, 35}
)

var monthsID = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// PDFRow is one table line as placed in the document. Page is 1-based.
type PDFRow struct {
	Page  int
	Y     float64
	Cells [7]string
}

// PDFRows lays the entries out without rendering them.
func PDFRows(entries []models.Entry) []PDFRow {
	rows := make([]PDFRow, 0, len(entries))
	page, y := 1, pdfHeaderY+pdfLineHeight
	for i, e := range entries {
		if y > pdfBottomY {
			page++
			y = pdfTopY
		}
		rows = append(rows, PDFRow{Page: page, Y: y, Cells: pdfCells(i, e)})
		y += pdfLineHeight
	}
	return rows
}

func pdfCells(i int, e models.Entry) [7]string {
	volume := placeholder
	if e.Quantity != nil {
		volume = strconv.FormatFloat(*e.Quantity, 'f', -1, 64)
		if e.Unit != nil && *e.Unit != "" {
			volume += " " + *e.Unit
		}
	}
	outcome := placeholder
	if e.Outcome != nil && *e.Outcome != "" {
		outcome = truncate(*e.Outcome, maxOutcomeRunes)
	}
	return [7]string{
		strconv.Itoa(i + 1),
		e.Date.Format("02/01/06"),
		truncate(e.ActivityName, maxNameRunes),
		orPlaceholder(e.StartTime),
		orPlaceholder(e.EndTime),
		volume,
		outcome,
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// PrintedAt formats t as "02 Januari 2006 15:04" in t's own location.
func PrintedAt(t time.Time) string {
	return fmt.Sprintf("%02d %s %d %02d:%02d", t.Day(), monthsID[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

// ToPDF renders the entries as a paginated A4 table. The title block is
// written on the first page only.
func ToPDF(entries []models.Entry, printedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 16)
	centered(pdf, pdfTitle, 20)
	pdf.SetFont("Helvetica", "", 10)
	centered(pdf, "Dicetak pada: "+PrintedAt(printedAt), 28)

	pdf.SetFont("Helvetica", "B", 9)
	x := pdfLeftX
	for i, h := range pdfHeaders {
		pdf.Text(x, pdfHeaderY, h)
		x += pdfColWidths[i]
	}

	pdf.SetFont("Helvetica", "", 8)
	page := 1
	for _, row := range PDFRows(entries) {
		if row.Page != page {
			pdf.AddPage()
			page = row.Page
		}
		x = pdfLeftX
		for i, cell := range row.Cells {
			pdf.Text(x, row.Y, tr(cell))
			x += pdfColWidths[i]
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func centered(pdf *fpdf.Fpdf, s string, y float64) {
	pdf.Text(pdfCenterX-pdf.GetStringWidth(s)/2, y, s)
}
