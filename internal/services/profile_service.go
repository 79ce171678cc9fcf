package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AnshRaj112/laporan-backend/internal/logging"
	"github.com/AnshRaj112/laporan-backend/internal/models"
	"github.com/google/uuid"
)

var allowedAvatarTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UserStore is the persistence for accounts.
type UserStore interface {
	Create(ctx context.Context, username, passwordHash, name string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name string, imageURL *string) error
}

// ProfileService updates the display name and avatar of the signed-in user.
type ProfileService struct {
	users    UserStore
	blobs    BlobStore
	maxBytes int64
	now      func() time.Time
	log      logging.Logger
}

func NewProfileService(users UserStore, blobs BlobStore, maxBytes int64, log logging.Logger) *ProfileService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFileBytes
	}
	return &ProfileService{users: users, blobs: blobs, maxBytes: maxBytes, now: time.Now, log: log}
}

// Update sets the name and, when avatar is non-nil, replaces the avatar
// stored at profiles/{id}-{millis}-{name}.
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, name string, avatar *Upload) (*models.User, error) {
	if userID == uuid.Nil {
		return nil, models.ErrUnauthorized
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &models.ValidationError{Field: "name", Message: "Nama wajib diisi"}
	}

	log := logging.FromContext(ctx, s.log)
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		log.Error(ctx, "load profile failed", "user_id", userID, "error", err)
		return nil, models.ErrStorage
	}
	if u == nil {
		return nil, models.ErrUnauthorized
	}

	imageURL := u.ImageURL
	if avatar != nil {
		if s.blobs == nil {
			return nil, ErrUploadsDisabled
		}
		fileName, contentType, err := checkUpload(*avatar, s.maxBytes, allowedAvatarTypes)
		if err != nil {
			return nil, err
		}
		key := fmt.Sprintf("profiles/%s-%d-%s", userID, s.now().UnixMilli(), fileName)
		url, err := s.blobs.Put(ctx, key, contentType, avatar.Data)
		if err != nil {
			log.Error(ctx, "avatar upload failed", "user_id", userID, "error", err)
			return nil, ErrBlobStore
		}
		imageURL = &url
	}

	if err := s.users.UpdateProfile(ctx, userID, name, imageURL); err != nil {
		log.Error(ctx, "profile update failed", "user_id", userID, "error", err)
		return nil, models.ErrStorage
	}

	if avatar != nil && u.ImageURL != nil {
		if err := s.blobs.Delete(ctx, *u.ImageURL); err != nil {
			log.Warn(ctx, "old avatar not removed", "url", *u.ImageURL, "error", err)
		}
	}

	u.Name, u.ImageURL = name, imageURL
	return u, nil
}
