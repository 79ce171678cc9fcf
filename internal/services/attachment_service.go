package services

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/AnshRaj112/laporan-backend/internal/logging"
	"github.com/AnshRaj112/laporan-backend/internal/models"
	"github.com/google/uuid"
)

var (
	ErrBlobStore       = errors.New("blob store failure")
	ErrUploadsDisabled = errors.New("file uploads are not configured")
)

const DefaultMaxFileBytes int64 = 10 << 20

var allowedAttachmentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"text/plain": true,
}

// Upload is a file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// AttachmentService stores at most one file per entry.
type AttachmentService struct {
	store    EntryStore
	blobs    BlobStore
	maxBytes int64
	now      func() time.Time
	log      logging.Logger
}

func NewAttachmentService(store EntryStore, blobs BlobStore, maxBytes int64, log logging.Logger) *AttachmentService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFileBytes
	}
	return &AttachmentService{store: store, blobs: blobs, maxBytes: maxBytes, now: time.Now, log: log}
}

func (s *AttachmentService) MaxBytes() int64 {
	return s.maxBytes
}

// Attach uploads the file to laporan/{owner}/{millis}-{name} and links it to
// the entry, replacing any previous attachment.
func (s *AttachmentService) Attach(ctx context.Context, ownerID uuid.UUID, entryID int64, up Upload) (*models.Entry, error) {
	if ownerID == uuid.Nil {
		return nil, models.ErrUnauthorized
	}
	if s.blobs == nil {
		return nil, ErrUploadsDisabled
	}
	name, contentType, err := checkUpload(up, s.maxBytes, allowedAttachmentTypes)
	if err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx, s.log)
	e, err := s.store.GetByID(ctx, ownerID, entryID)
	if err != nil {
		log.Error(ctx, "load entry for upload failed", "entry_id", entryID, "error", err)
		return nil, models.ErrStorage
	}
	if e == nil {
		return nil, models.ErrNotFound
	}

	key := fmt.Sprintf("laporan/%s/%d-%s", ownerID, s.now().UnixMilli(), name)
	url, err := s.blobs.Put(ctx, key, contentType, up.Data)
	if err != nil {
		log.Error(ctx, "attachment upload failed", "entry_id", entryID, "key", key, "error", err)
		return nil, ErrBlobStore
	}

	if err := s.store.SetAttachment(ctx, ownerID, entryID, url, name); err != nil {
		if derr := s.blobs.Delete(ctx, url); derr != nil {
			log.Warn(ctx, "orphaned attachment blob", "url", url, "error", derr)
		}
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		log.Error(ctx, "attachment link failed", "entry_id", entryID, "error", err)
		return nil, models.ErrStorage
	}

	if e.HasAttachment() {
		if err := s.blobs.Delete(ctx, *e.AttachmentURL); err != nil {
			log.Warn(ctx, "previous attachment blob not removed", "url", *e.AttachmentURL, "error", err)
		}
	}

	e.AttachmentURL, e.AttachmentName = &url, &name
	return e, nil
}

// Detach deletes the entry's file and clears both attachment columns.
// An entry without attachment is left as is.
func (s *AttachmentService) Detach(ctx context.Context, ownerID uuid.UUID, entryID int64) error {
	if ownerID == uuid.Nil {
		return models.ErrUnauthorized
	}
	log := logging.FromContext(ctx, s.log)
	e, err := s.store.GetByID(ctx, ownerID, entryID)
	if err != nil {
		log.Error(ctx, "load entry for detach failed", "entry_id", entryID, "error", err)
		return models.ErrStorage
	}
	if e == nil {
		return models.ErrNotFound
	}
	if !e.HasAttachment() {
		return nil
	}
	if s.blobs == nil {
		return ErrUploadsDisabled
	}

	if err := s.blobs.Delete(ctx, *e.AttachmentURL); err != nil {
		log.Error(ctx, "attachment delete failed", "entry_id", entryID, "url", *e.AttachmentURL, "error", err)
		return ErrBlobStore
	}
	if err := s.store.ClearAttachment(ctx, ownerID, entryID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return err
		}
		log.Error(ctx, "attachment clear failed", "entry_id", entryID, "error", err)
		return models.ErrStorage
	}
	return nil
}

// checkUpload applies the size and type rules and returns the cleaned file
// name and the effective content type.
func checkUpload(up Upload, maxBytes int64, allowed map[string]bool) (string, string, error) {
	name := cleanFilename(up.Filename)
	if name == "" || len(up.Data) == 0 {
		return "", "", &models.ValidationError{Field: "file", Message: "File tidak ditemukan"}
	}
	if int64(len(up.Data)) > maxBytes {
		return "", "", &models.ValidationError{Field: "file", Message: fmt.Sprintf("Ukuran file maksimal %dMB", maxBytes>>20)}
	}
	contentType := mediaType(up.ContentType, name)
	if !allowed[contentType] {
		return "", "", &models.ValidationError{Field: "file", Message: "Tipe file tidak didukung"}
	}
	return name, contentType, nil
}

func cleanFilename(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
	if name == "." || name == "/" {
		return ""
	}
	return name
}

// mediaType strips parameters from the declared type and falls back to the
// file extension when the client sent nothing useful.
func mediaType(declared, name string) string {
	mt, _, err := mime.ParseMediaType(declared)
	if err != nil || mt == "" || mt == "application/octet-stream" {
		mt, _, _ = mime.ParseMediaType(mime.TypeByExtension(path.Ext(name)))
	}
	return strings.ToLower(mt)
}
