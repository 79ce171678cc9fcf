package export

import (
	"strconv"
	"strings"

	"github.com/AnshRaj112/laporan-backend/internal/models"
)

const csvHeader = "No,Tanggal,Nama Kegiatan,Jam Mulai,Jam Selesai,Volume,Satuan,Hasil,File"

// placeholder stands in for an absent optional value in both exports.
const placeholder = "-"

// ToCSV renders entries in the given order. The header is written bare,
// every data cell is quoted, rows are separated by "\n" and there is no
// trailing newline.
func ToCSV(entries []models.Entry) []byte {
	var b strings.Builder
	b.WriteString(csvHeader)
	for i, e := range entries {
		b.WriteByte('\n')
		for j, cell := range csvRecord(i, e) {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
			b.WriteByte('"')
		}
	}
	return []byte(b.String())
}

func csvRecord(i int, e models.Entry) []string {
	return []string{
		strconv.Itoa(i + 1),
		e.Date.Format("02/01/2006"),
		e.ActivityName,
		orPlaceholder(e.StartTime),
		orPlaceholder(e.EndTime),
		formatQuantity(e.Quantity),
		orPlaceholder(e.Unit),
		orPlaceholder(e.Outcome),
		orPlaceholder(e.AttachmentName),
	}
}

func orPlaceholder(s *string) string {
	if s == nil || *s == "" {
		return placeholder
	}
	return *s
}

func formatQuantity(q *float64) string {
	if q == nil {
		return placeholder
	}
	return strconv.FormatFloat(*q, 'f', -1, 64)
}
