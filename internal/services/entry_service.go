package services

import (
	"context"
	"errors"
	"time"

	"github.com/AnshRaj112/laporan-backend/internal/logging"
	"github.com/AnshRaj112/laporan-backend/internal/models"
	"github.com/google/uuid"
)

// EntryStore is the persistence the entry services need.
type EntryStore interface {
	Create(ctx context.Context, ownerID uuid.UUID, f *models.EntryFields) (*models.Entry, error)
	Update(ctx context.Context, ownerID uuid.UUID, id int64, f *models.EntryFields) error
	Delete(ctx context.Context, ownerID uuid.UUID, id int64) error
	GetByID(ctx context.Context, ownerID uuid.UUID, id int64) (*models.Entry, error)
	List(ctx context.Context, ownerID uuid.UUID, filter models.EntryFilter) (*models.EntryPage, error)
	ListAll(ctx context.Context, ownerID uuid.UUID, filter models.EntryFilter) ([]models.Entry, error)
	ActiveDates(ctx context.Context, ownerID uuid.UUID, until time.Time) ([]time.Time, error)
	SetAttachment(ctx context.Context, ownerID uuid.UUID, id int64, url, name string) error
	ClearAttachment(ctx context.Context, ownerID uuid.UUID, id int64) error
}

// EntryService guards every entry operation: identity first, then input,
// then the store. Store failures are logged and reported as ErrStorage.
type EntryService struct {
	store EntryStore
	blobs BlobStore // optional; attachment blobs are removed on delete
	log   logging.Logger
}

func NewEntryService(store EntryStore, blobs BlobStore, log logging.Logger) *EntryService {
	return &EntryService{store: store, blobs: blobs, log: log}
}

func (s *EntryService) Create(ctx context.Context, ownerID uuid.UUID, in models.EntryInput) (*models.Entry, error) {
	if ownerID == uuid.Nil {
		return nil, models.ErrUnauthorized
	}
	fields, err := in.Validate()
	if err != nil {
		return nil, err
	}
	e, err := s.store.Create(ctx, ownerID, fields)
	if err != nil {
		return nil, s.storageFailure(ctx, "create entry", err, "owner_id", ownerID)
	}
	return e, nil
}

func (s *EntryService) Update(ctx context.Context, ownerID uuid.UUID, id int64, in models.EntryInput) error {
	if ownerID == uuid.Nil {
		return models.ErrUnauthorized
	}
	fields, err := in.Validate()
	if err != nil {
		return err
	}
	if err := s.store.Update(ctx, ownerID, id, fields); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return err
		}
		return s.storageFailure(ctx, "update entry", err, "owner_id", ownerID, "entry_id", id)
	}
	return nil
}

// Delete removes the entry and, before that, its attachment blob. A blob
// that cannot be removed is logged and does not block the delete.
func (s *EntryService) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	if ownerID == uuid.Nil {
		return models.ErrUnauthorized
	}
	if s.blobs != nil {
		e, err := s.store.GetByID(ctx, ownerID, id)
		if err != nil {
			return s.storageFailure(ctx, "load entry for delete", err, "owner_id", ownerID, "entry_id", id)
		}
		if e != nil && e.HasAttachment() {
			if err := s.blobs.Delete(ctx, *e.AttachmentURL); err != nil {
				logging.FromContext(ctx, s.log).Warn(ctx, "attachment blob not removed",
					"entry_id", id, "url", *e.AttachmentURL, "error", err)
			}
		}
	}
	if err := s.store.Delete(ctx, ownerID, id); err != nil {
		return s.storageFailure(ctx, "delete entry", err, "owner_id", ownerID, "entry_id", id)
	}
	return nil
}

// Get returns models.ErrNotFound for ids the owner does not hold.
func (s *EntryService) Get(ctx context.Context, ownerID uuid.UUID, id int64) (*models.Entry, error) {
	if ownerID == uuid.Nil {
		return nil, models.ErrUnauthorized
	}
	e, err := s.store.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, s.storageFailure(ctx, "get entry", err, "owner_id", ownerID, "entry_id", id)
	}
	if e == nil {
		return nil, models.ErrNotFound
	}
	return e, nil
}

func (s *EntryService) List(ctx context.Context, ownerID uuid.UUID, filter models.EntryFilter) (*models.EntryPage, error) {
	if ownerID == uuid.Nil {
		return nil, models.ErrUnauthorized
	}
	page, err := s.store.List(ctx, ownerID, filter)
	if err != nil {
		return nil, s.storageFailure(ctx, "list entries", err, "owner_id", ownerID)
	}
	return page, nil
}

// ListAll is the unpaginated listing the exports are built from.
func (s *EntryService) ListAll(ctx context.Context, ownerID uuid.UUID, filter models.EntryFilter) ([]models.Entry, error) {
	if ownerID == uuid.Nil {
		return nil, models.ErrUnauthorized
	}
	rows, err := s.store.ListAll(ctx, ownerID, filter)
	if err != nil {
		return nil, s.storageFailure(ctx, "list all entries", err, "owner_id", ownerID)
	}
	return rows, nil
}

func (s *EntryService) storageFailure(ctx context.Context, op string, err error, args ...any) error {
	logging.FromContext(ctx, s.log).Error(ctx, op+" failed", append(args, "error", err)...)
	return models.ErrStorage
}
