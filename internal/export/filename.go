// Package export turns an already filtered entry list into downloadable
// CSV and PDF documents.
package export

import (
	"fmt"
	"time"
)

const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

// Filename is the download name for an export produced at now.
func Filename(format string, now time.Time) string {
	return fmt.Sprintf("laporan-harian-%s.%s", now.Format("20060102"), format)
}

// ContentType returns the media type for a supported format, or "" when
// the format is unknown.
func ContentType(format string) string {
	switch format {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	}
	return ""
}
