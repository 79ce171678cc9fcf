// Package handlers implements the JSON HTTP API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/AnshRaj112/laporan-backend/internal/logging"
	"github.com/AnshRaj112/laporan-backend/internal/models"
	"github.com/AnshRaj112/laporan-backend/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type EntryService interface {
	Create(ctx context.Context, ownerID uuid.UUID, in models.EntryInput) (*models.Entry, error)
	Update(ctx context.Context, ownerID uuid.UUID, id int64, in models.EntryInput) error
	Delete(ctx context.Context, ownerID uuid.UUID, id int64) error
	Get(ctx context.Context, ownerID uuid.UUID, id int64) (*models.Entry, error)
	List(ctx context.Context, ownerID uuid.UUID, filter models.EntryFilter) (*models.EntryPage, error)
	ListAll(ctx context.Context, ownerID uuid.UUID, filter models.EntryFilter) ([]models.Entry, error)
}

type CalendarService interface {
	Today(now time.Time) time.Time
	Month(ctx context.Context, ownerID uuid.UUID, month services.YearMonth, now time.Time) (*services.MonthSummary, error)
}

type AttachmentService interface {
	Attach(ctx context.Context, ownerID uuid.UUID, entryID int64, up services.Upload) (*models.Entry, error)
	Detach(ctx context.Context, ownerID uuid.UUID, entryID int64) error
	MaxBytes() int64
}

type ProfileService interface {
	Update(ctx context.Context, userID uuid.UUID, name string, avatar *services.Upload) (*models.User, error)
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *models.User, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// Handler serves every API route. Services are injected by main.
type Handler struct {
	Entries     EntryService
	Calendar    CalendarService
	Attachments AttachmentService
	Profiles    ProfileService
	Auth        AuthService
	Location    *time.Location
	Log         logging.Logger

	now       func() time.Time
	pickQuote func() int
}

func New(h Handler) *Handler {
	if h.Location == nil {
		h.Location = time.UTC
	}
	if h.Log == nil {
		h.Log = logging.Discard()
	}
	h.now = time.Now
	h.pickQuote = func() int { return rand.Intn(services.QuoteCount()) }
	return &h
}

// Response is the envelope every JSON reply shares.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Success: false, Message: message})
}

// writeServiceError maps service errors to status codes. failMsg is the
// operation message used for anything that ends up a 500; the cause is
// only ever logged.
func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, err error, failMsg string) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, models.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, models.ErrNotFound):
		writeError(w, http.StatusNotFound, "Laporan tidak ditemukan")
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Username atau password salah")
	case errors.Is(err, services.ErrUploadsDisabled):
		writeError(w, http.StatusServiceUnavailable, "Upload file belum dikonfigurasi")
	default:
		if !errors.Is(err, models.ErrStorage) && !errors.Is(err, services.ErrBlobStore) {
			logging.FromContext(ctx, h.Log).Error(ctx, "unexpected service error", "error", err)
		}
		writeError(w, http.StatusInternalServerError, failMsg)
	}
}

// entryID reads the {id} route parameter. A malformed id cannot name an
// entry of the caller, so it reads as not found.
func entryID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Health is the liveness probe.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}
