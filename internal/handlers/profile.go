package handlers

import (
	"errors"
	"net/http"

	"github.com/AnshRaj112/laporan-backend/internal/middleware"
	"github.com/AnshRaj112/laporan-backend/internal/services"
)

// UpdateProfile takes a multipart form with "name" and an optional "image".
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	maxBytes := h.Attachments.MaxBytes()

	var avatar *services.Upload
	up, err := readUpload(w, r, "image", maxBytes)
	switch {
	case err == nil:
		avatar = up
	case errors.Is(err, errNoFile) && r.MultipartForm != nil:
		// name only
	case errors.Is(err, errNoFile):
		writeError(w, http.StatusBadRequest, "Data tidak valid")
		return
	default:
		uploadProblem(w, err, maxBytes)
		return
	}

	u, err := h.Profiles.Update(ctx, middleware.OwnerFromContext(ctx), r.FormValue("name"), avatar)
	if err != nil {
		h.writeServiceError(ctx, w, err, "Gagal memperbarui profil")
		return
	}
	writeJSON(w, http.StatusOK, UserResponse{Success: true, Message: "Profil berhasil diperbarui", User: u})
}
