// Package middleware holds the HTTP middleware chain of the API server.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/AnshRaj112/laporan-backend/internal/logging"
	"github.com/AnshRaj112/laporan-backend/internal/models"
	"github.com/google/uuid"
)

// Authenticator resolves a session token to a user id.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (uuid.UUID, error)
}

type ownerKey struct{}

// ContextWithOwner returns a context carrying the signed-in user id.
func ContextWithOwner(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ownerKey{}, id)
}

// OwnerFromContext returns the signed-in user id, or uuid.Nil.
func OwnerFromContext(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(ownerKey{}).(uuid.UUID)
	return id
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// RequireSession rejects requests without a valid session and stores the
// user id in the request context.
func RequireSession(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			id, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, models.ErrUnauthorized) {
					writeError(w, http.StatusUnauthorized, "Unauthorized")
					return
				}
				writeError(w, http.StatusInternalServerError, "Gagal memeriksa sesi")
				return
			}
			ctx := ContextWithOwner(r.Context(), id)
			ctx = logging.ContextWithLogger(ctx, logging.FromContext(ctx, logging.Discard()).With("user_id", id))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorBody{Success: false, Message: message})
}
