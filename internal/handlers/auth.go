package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/AnshRaj112/laporan-backend/internal/middleware"
	"github.com/AnshRaj112/laporan-backend/internal/models"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token,omitempty"`
	User    *models.User `json:"user,omitempty"`
}

type UserResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    *models.User `json:"user,omitempty"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Data tidak valid")
		return
	}

	token, user, err := h.Auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		h.writeServiceError(ctx, w, err, "Gagal masuk")
		return
	}
	writeJSON(w, http.StatusOK, LoginResponse{Success: true, Message: "Berhasil masuk", Token: token, User: user})
}

// Logout ends the session named by the bearer token. Missing or unknown
// tokens still succeed.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if token := middleware.BearerToken(r); token != "" {
		if err := h.Auth.Logout(ctx, token); err != nil {
			h.writeServiceError(ctx, w, err, "Gagal keluar")
			return
		}
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Berhasil keluar"})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	u, err := h.Auth.Me(ctx, middleware.OwnerFromContext(ctx))
	if err != nil {
		h.writeServiceError(ctx, w, err, "Gagal mengambil data")
		return
	}
	writeJSON(w, http.StatusOK, UserResponse{Success: true, User: u})
}
