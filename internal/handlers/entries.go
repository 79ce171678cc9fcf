package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/AnshRaj112/laporan-backend/internal/middleware"
	"github.com/AnshRaj112/laporan-backend/internal/models"
)

type EntryResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Entry   *models.Entry `json:"entry,omitempty"`
}

type EntryListResponse struct {
	Success    bool           `json:"success"`
	Entries    []models.Entry `json:"entries"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// parseFilter reads startDate, endDate and search, plus page and pageSize
// when paged is set. Unparseable page numbers fall back to the defaults.
func parseFilter(q url.Values, paged bool) (models.EntryFilter, error) {
	var f models.EntryFilter
	for _, p := range []struct {
		key string
		dst **time.Time
	}{{"startDate", &f.StartDate}, {"endDate", &f.EndDate}} {
		v := strings.TrimSpace(q.Get(p.key))
		if v == "" {
			continue
		}
		d, err := models.ParseDate(v)
		if err != nil {
			return f, &models.ValidationError{Field: p.key, Message: "Format tanggal tidak valid"}
		}
		*p.dst = &d
	}
	f.Search = q.Get("search")
	if paged {
		f.Page, _ = strconv.Atoi(q.Get("page"))
		f.PageSize, _ = strconv.Atoi(q.Get("pageSize"))
	}
	return f, nil
}

func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter, err := parseFilter(r.URL.Query(), true)
	if err != nil {
		h.writeServiceError(ctx, w, err, "Gagal mengambil data")
		return
	}
	page, err := h.Entries.List(ctx, middleware.OwnerFromContext(ctx), filter)
	if err != nil {
		h.writeServiceError(ctx, w, err, "Gagal mengambil data")
		return
	}
	rows := page.Rows
	if rows == nil {
		rows = []models.Entry{}
	}
	writeJSON(w, http.StatusOK, EntryListResponse{
		Success:    true,
		Entries:    rows,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	})
}

func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := entryID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Laporan tidak ditemukan")
		return
	}
	e, err := h.Entries.Get(ctx, middleware.OwnerFromContext(ctx), id)
	if err != nil {
		h.writeServiceError(ctx, w, err, "Gagal mengambil data")
		return
	}
	writeJSON(w, http.StatusOK, EntryResponse{Success: true, Entry: e})
}

func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var in models.EntryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Data tidak valid")
		return
	}
	e, err := h.Entries.Create(ctx, middleware.OwnerFromContext(ctx), in)
	if err != nil {
		h.writeServiceError(ctx, w, err, "Gagal menyimpan laporan")
		return
	}
	writeJSON(w, http.StatusCreated, EntryResponse{Success: true, Message: "Laporan berhasil disimpan", Entry: e})
}

func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := entryID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Laporan tidak ditemukan")
		return
	}
	var in models.EntryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Data tidak valid")
		return
	}
	if err := h.Entries.Update(ctx, middleware.OwnerFromContext(ctx), id, in); err != nil {
		h.writeServiceError(ctx, w, err, "Gagal mengupdate laporan")
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Laporan berhasil diupdate"})
}

func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := entryID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Laporan tidak ditemukan")
		return
	}
	if err := h.Entries.Delete(ctx, middleware.OwnerFromContext(ctx), id); err != nil {
		h.writeServiceError(ctx, w, err, "Gagal menghapus laporan")
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Laporan berhasil dihapus"})
}
