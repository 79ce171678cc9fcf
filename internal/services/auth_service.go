package services

import (
	"context"
	"errors"

	"github.com/AnshRaj112/laporan-backend/internal/logging"
	"github.com/AnshRaj112/laporan-backend/internal/models"
	"github.com/AnshRaj112/laporan-backend/pkg/utils"
	"github.com/google/uuid"
)

// ErrInvalidCredentials is returned for an unknown user or wrong password alike.
var ErrInvalidCredentials = errors.New("invalid credentials")

// SessionManager issues and checks session tokens.
type SessionManager interface {
	Create(ctx context.Context, userID uuid.UUID) (string, error)
	Validate(ctx context.Context, token string) (uuid.UUID, bool, error)
	Refresh(ctx context.Context, token string) error
	Invalidate(ctx context.Context, token string) error
}

type AuthService struct {
	users    UserStore
	sessions SessionManager
	log      logging.Logger
}

func NewAuthService(users UserStore, sessions SessionManager, log logging.Logger) *AuthService {
	return &AuthService{users: users, sessions: sessions, log: log}
}

// Login verifies the credentials and opens a session.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	if len(username) < utils.MinUsernameLength {
		return "", nil, &models.ValidationError{Field: "username", Message: "Username minimal 3 karakter"}
	}
	if err := utils.ValidatePassword(password); err != nil {
		return "", nil, err
	}

	log := logging.FromContext(ctx, s.log)
	u, err := s.users.GetByUsername(ctx, utils.NormalizeUsername(username))
	if err != nil {
		log.Error(ctx, "user lookup failed", "error", err)
		return "", nil, models.ErrStorage
	}
	if u == nil {
		return "", nil, ErrInvalidCredentials
	}

	ok, err := utils.VerifyPassword(password, u.PasswordHash)
	if err != nil {
		log.Warn(ctx, "stored password hash unreadable", "user_id", u.ID, "error", err)
		return "", nil, ErrInvalidCredentials
	}
	if !ok {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, u.ID)
	if err != nil {
		log.Error(ctx, "session create failed", "user_id", u.ID, "error", err)
		return "", nil, models.ErrStorage
	}
	log.Info(ctx, "user signed in", "user_id", u.ID)
	return token, u, nil
}

// Authenticate resolves a session token to its user id and slides the
// session expiry forward. Any failure reads as ErrUnauthorized except a
// session store outage; a failed refresh is only logged.
func (s *AuthService) Authenticate(ctx context.Context, token string) (uuid.UUID, error) {
	id, ok, err := s.sessions.Validate(ctx, token)
	if err != nil {
		logging.FromContext(ctx, s.log).Error(ctx, "session lookup failed", "error", err)
		return uuid.Nil, models.ErrStorage
	}
	if !ok || id == uuid.Nil {
		return uuid.Nil, models.ErrUnauthorized
	}
	if err := s.sessions.Refresh(ctx, token); err != nil {
		logging.FromContext(ctx, s.log).Warn(ctx, "session refresh failed", "user_id", id, "error", err)
	}
	return id, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Invalidate(ctx, token); err != nil {
		logging.FromContext(ctx, s.log).Error(ctx, "session invalidate failed", "error", err)
		return models.ErrStorage
	}
	return nil
}

// Me returns the profile of the signed-in user.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	if userID == uuid.Nil {
		return nil, models.ErrUnauthorized
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		logging.FromContext(ctx, s.log).Error(ctx, "user lookup failed", "user_id", userID, "error", err)
		return nil, models.ErrStorage
	}
	if u == nil {
		return nil, models.ErrUnauthorized
	}
	return u, nil
}

// Register creates an account; used by the provisioning command.
func (s *AuthService) Register(ctx context.Context, username, password, name string) (*models.User, error) {
	if err := utils.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := utils.ValidatePassword(password); err != nil {
		return nil, err
	}
	if name == "" {
		name = username
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u, err := s.users.Create(ctx, utils.NormalizeUsername(username), hash, name)
	if err != nil {
		if errors.Is(err, models.ErrUserExists) {
			return nil, err
		}
		logging.FromContext(ctx, s.log).Error(ctx, "user create failed", "error", err)
		return nil, models.ErrStorage
	}
	return u, nil
}
