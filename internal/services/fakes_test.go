package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/AnshRaj112/laporan-backend/internal/models"
	"github.com/google/uuid"
)

// memEntryStore is an in-memory EntryStore with the same owner scoping and
// ordering rules as the Postgres repository.
type memEntryStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.Entry
	clock  time.Time
	err    error // returned by every call when set
	calls  int
}

func newMemEntryStore() *memEntryStore {
	return &memEntryStore{rows: map[int64]models.Entry{}, clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memEntryStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memEntryStore) Create(ctx context.Context, owner uuid.UUID, f *models.EntryFields) (*models.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	m.nextID++
	now := m.tick()
	e := models.Entry{
		ID: m.nextID, OwnerID: owner, Date: f.Date, ActivityName: f.ActivityName,
		StartTime: f.StartTime, EndTime: f.EndTime, DurationMinutes: f.DurationMinutes,
		Quantity: f.Quantity, Unit: f.Unit, Outcome: f.Outcome, Mood: f.Mood,
		CreatedAt: now, UpdatedAt: now,
	}
	m.rows[e.ID] = e
	return &e, nil
}

func (m *memEntryStore) Update(ctx context.Context, owner uuid.UUID, id int64, f *models.EntryFields) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	e, ok := m.rows[id]
	if !ok || e.OwnerID != owner {
		return models.ErrNotFound
	}
	e.Date, e.ActivityName = f.Date, f.ActivityName
	e.StartTime, e.EndTime, e.DurationMinutes = f.StartTime, f.EndTime, f.DurationMinutes
	e.Quantity, e.Unit, e.Outcome, e.Mood = f.Quantity, f.Unit, f.Outcome, f.Mood
	e.UpdatedAt = m.tick()
	m.rows[id] = e
	return nil
}

func (m *memEntryStore) Delete(ctx context.Context, owner uuid.UUID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	if e, ok := m.rows[id]; ok && e.OwnerID == owner {
		delete(m.rows, id)
	}
	return nil
}

func (m *memEntryStore) GetByID(ctx context.Context, owner uuid.UUID, id int64) (*models.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.rows[id]
	if !ok || e.OwnerID != owner {
		return nil, nil
	}
	return &e, nil
}

func (m *memEntryStore) matching(owner uuid.UUID, f models.EntryFilter) []models.Entry {
	var out []models.Entry
	search := strings.ToLower(strings.TrimSpace(f.Search))
	for _, e := range m.rows {
		if e.OwnerID != owner {
			continue
		}
		if f.StartDate != nil && e.Date.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && e.Date.After(*f.EndDate) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(e.ActivityName), search) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (m *memEntryStore) List(ctx context.Context, owner uuid.UUID, filter models.EntryFilter) (*models.EntryPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	f := filter.Normalized()
	all := m.matching(owner, f)
	start := f.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + f.PageSize
	if end > len(all) {
		end = len(all)
	}
	return &models.EntryPage{
		Rows: append([]models.Entry{}, all[start:end]...), Total: len(all),
		Page: f.Page, PageSize: f.PageSize, TotalPages: models.TotalPages(len(all), f.PageSize),
	}, nil
}

func (m *memEntryStore) ListAll(ctx context.Context, owner uuid.UUID, filter models.EntryFilter) ([]models.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.matching(owner, filter), nil
}

func (m *memEntryStore) ActiveDates(ctx context.Context, owner uuid.UUID, until time.Time) ([]time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	seen := map[time.Time]bool{}
	var out []time.Time
	for _, e := range m.rows {
		if e.OwnerID == owner && !e.Date.After(until) && !seen[e.Date] {
			seen[e.Date] = true
			out = append(out, e.Date)
		}
	}
	return out, nil
}

func (m *memEntryStore) SetAttachment(ctx context.Context, owner uuid.UUID, id int64, url, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	e, ok := m.rows[id]
	if !ok || e.OwnerID != owner {
		return models.ErrNotFound
	}
	e.AttachmentURL, e.AttachmentName = &url, &name
	m.rows[id] = e
	return nil
}

func (m *memEntryStore) ClearAttachment(ctx context.Context, owner uuid.UUID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	e, ok := m.rows[id]
	if !ok || e.OwnerID != owner {
		return models.ErrNotFound
	}
	e.AttachmentURL, e.AttachmentName = nil, nil
	m.rows[id] = e
	return nil
}

type fakeBlobs struct {
	objects   map[string][]byte
	deleted   []string
	putErr    error
	deleteErr error
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{objects: map[string][]byte{}}
}

func (f *fakeBlobs) Put(ctx context.Context, path, contentType string, data []byte) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	url := "https://blobs.test/" + path
	f.objects[url] = data
	return url, nil
}

func (f *fakeBlobs) Delete(ctx context.Context, url string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.objects[url]; !ok {
		return errors.New("no such blob")
	}
	delete(f.objects, url)
	f.deleted = append(f.deleted, url)
	return nil
}

type fakeUsers struct {
	byID map[uuid.UUID]*models.User
	err  error
}

func newFakeUsers(users ...*models.User) *fakeUsers {
	f := &fakeUsers{byID: map[uuid.UUID]*models.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Create(ctx context.Context, username, hash, name string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.Username == username {
			return nil, models.ErrUserExists
		}
	}
	u := &models.User{ID: uuid.New(), Username: username, PasswordHash: hash, Name: name}
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (f *fakeUsers) UpdateProfile(ctx context.Context, id uuid.UUID, name string, imageURL *string) error {
	if f.err != nil {
		return f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return models.ErrNotFound
	}
	u.Name, u.ImageURL = name, imageURL
	return nil
}
