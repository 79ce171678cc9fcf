package handlers

import (
	"net/http"
	"strconv"

	"github.com/AnshRaj112/laporan-backend/internal/middleware"
	"github.com/AnshRaj112/laporan-backend/internal/services"
)

type DashboardResponse struct {
	Success bool                   `json:"success"`
	Summary *services.MonthSummary `json:"summary"`
	Quote   services.Quote         `json:"quote"`
}

type QuoteResponse struct {
	Success bool           `json:"success"`
	Quote   services.Quote `json:"quote"`
}

// Dashboard returns the calendar summary for ?month=YYYY-MM, defaulting to
// the current month.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := h.now()

	month := services.MonthOf(h.Calendar.Today(now))
	if v := r.URL.Query().Get("month"); v != "" {
		m, err := services.ParseYearMonth(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Format bulan tidak valid")
			return
		}
		month = m
	}

	summary, err := h.Calendar.Month(ctx, middleware.OwnerFromContext(ctx), month, now)
	if err != nil {
		h.writeServiceError(ctx, w, err, "Gagal mengambil data")
		return
	}
	writeJSON(w, http.StatusOK, DashboardResponse{
		Success: true,
		Summary: summary,
		Quote:   services.QuoteAt(h.pickQuote()),
	})
}

// Quote returns quote ?i= when given, a random one otherwise.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	i, err := strconv.Atoi(r.URL.Query().Get("i"))
	if err != nil {
		i = h.pickQuote()
	}
	writeJSON(w, http.StatusOK, QuoteResponse{Success: true, Quote: services.QuoteAt(i)})
}
