package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/AnshRaj112/laporan-backend/internal/export"
	"github.com/AnshRaj112/laporan-backend/internal/logging"
	"github.com/AnshRaj112/laporan-backend/internal/middleware"
)

// ExportEntries streams every entry matching the list filter as a CSV or
// PDF download. The document is built in memory first so a failure never
// leaves a partial file on the wire.
func (h *Handler) ExportEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = export.FormatCSV
	}
	contentType := export.ContentType(format)
	if contentType == "" {
		writeError(w, http.StatusBadRequest, "Format export tidak didukung")
		return
	}

	filter, err := parseFilter(q, false)
	if err != nil {
		h.writeServiceError(ctx, w, err, "Gagal mengambil data")
		return
	}
	entries, err := h.Entries.ListAll(ctx, middleware.OwnerFromContext(ctx), filter)
	if err != nil {
		h.writeServiceError(ctx, w, err, "Gagal mengambil data")
		return
	}

	now := h.now().In(h.Location)
	var body []byte
	switch format {
	case export.FormatCSV:
		body = export.ToCSV(entries)
	case export.FormatPDF:
		body, err = export.ToPDF(entries, now)
		if err != nil {
			logging.FromContext(ctx, h.Log).Error(ctx, "pdf export failed", "rows", len(entries), "error", err)
			writeError(w, http.StatusInternalServerError, "Gagal membuat file export")
			return
		}
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename(format, now)))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
