package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AnshRaj112/laporan-backend/internal/models"
	"github.com/google/uuid"
)

const entryColumns = `id, user_id, tanggal, nama_kegiatan,
	to_char(jam_mulai, 'HH24:MI'), to_char(jam_selesai, 'HH24:MI'), durasi_menit,
	volume::float8, satuan, hasil, mood, file_url, file_name, created_at, updated_at`

const entryOrder = ` ORDER BY tanggal DESC, created_at DESC`

// EntryRepository reads and writes laporan_harian rows for one owner at a time.
type EntryRepository struct {
	db DBTX
}

func NewEntryRepository(db DBTX) *EntryRepository {
	return &EntryRepository{db: db}
}

// Create inserts a validated entry and returns the stored row.
func (r *EntryRepository) Create(ctx context.Context, ownerID uuid.UUID, f *models.EntryFields) (*models.Entry, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO laporan_harian
			(user_id, tanggal, nama_kegiatan, jam_mulai, jam_selesai, durasi_menit, volume, satuan, hasil, mood)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+entryColumns,
		ownerID, f.Date.Format(models.DateLayout), f.ActivityName,
		f.StartTime, f.EndTime, f.DurationMinutes,
		f.Quantity, f.Unit, f.Outcome, f.Mood,
	)
	e, err := scanEntry(row)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

// Update rewrites an owned entry. A missing or foreign id yields
// models.ErrNotFound.
func (r *EntryRepository) Update(ctx context.Context, ownerID uuid.UUID, id int64, f *models.EntryFields) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE laporan_harian SET
			tanggal = $1, nama_kegiatan = $2, jam_mulai = $3, jam_selesai = $4,
			durasi_menit = $5, volume = $6, satuan = $7, hasil = $8, mood = $9,
			updated_at = NOW()
		WHERE id = $10 AND user_id = $11`,
		f.Date.Format(models.DateLayout), f.ActivityName, f.StartTime, f.EndTime,
		f.DurationMinutes, f.Quantity, f.Unit, f.Outcome, f.Mood,
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

// Delete removes an owned entry. Deleting nothing is not an error.
func (r *EntryRepository) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM laporan_harian WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetByID returns nil, nil when the entry does not exist for this owner.
func (r *EntryRepository) GetByID(ctx context.Context, ownerID uuid.UUID, id int64) (*models.Entry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM laporan_harian WHERE id = $1 AND user_id = $2`, id, ownerID)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

// List returns one page of the filtered entries and the total match count.
func (r *EntryRepository) List(ctx context.Context, ownerID uuid.UUID, filter models.EntryFilter) (*models.EntryPage, error) {
	f := filter.Normalized()
	w := entryWhere(ownerID, f)

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM laporan_harian `+w.String(), w.args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	query := `SELECT ` + entryColumns + ` FROM laporan_harian ` + w.String() + entryOrder
	limit := w.nextPlaceholder(f.PageSize)
	offset := w.nextPlaceholder(f.Offset())
	query += ` LIMIT ` + limit + ` OFFSET ` + offset

	rows, err := r.queryEntries(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}

	return &models.EntryPage{
		Rows:       rows,
		Total:      total,
		Page:       f.Page,
		PageSize:   f.PageSize,
		TotalPages: models.TotalPages(total, f.PageSize),
	}, nil
}

// ListAll applies the same filter and ordering as List without paging.
func (r *EntryRepository) ListAll(ctx context.Context, ownerID uuid.UUID, filter models.EntryFilter) ([]models.Entry, error) {
	w := entryWhere(ownerID, filter)
	return r.queryEntries(ctx,
		`SELECT `+entryColumns+` FROM laporan_harian `+w.String()+entryOrder, w.args...)
}

// ActiveDates lists the distinct days up to and including until on which the
// owner recorded anything, newest first.
func (r *EntryRepository) ActiveDates(ctx context.Context, ownerID uuid.UUID, until time.Time) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT tanggal FROM laporan_harian
		WHERE user_id = $1 AND tanggal <= $2
		ORDER BY tanggal DESC`,
		ownerID, until.Format(models.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		out = append(out, models.CalendarDay(d))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

// SetAttachment stores the url/name pair on an owned entry.
func (r *EntryRepository) SetAttachment(ctx context.Context, ownerID uuid.UUID, id int64, url, name string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE laporan_harian SET file_url = $1, file_name = $2, updated_at = NOW()
		WHERE id = $3 AND user_id = $4`,
		url, name, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

// ClearAttachment nulls both attachment columns.
func (r *EntryRepository) ClearAttachment(ctx context.Context, ownerID uuid.UUID, id int64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE laporan_harian SET file_url = NULL, file_name = NULL, updated_at = NOW()
		WHERE id = $1 AND user_id = $2`,
		id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *EntryRepository) queryEntries(ctx context.Context, query string, args ...any) ([]models.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]models.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 0:
		return models.ErrNotFound
	case 1:
		return nil
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func scanEntry(s rowScanner) (*models.Entry, error) {
	var (
		e                   models.Entry
		start, end          sql.NullString
		duration            sql.NullInt64
		quantity            sql.NullFloat64
		unit, outcome, mood sql.NullString
		fileURL, fileName   sql.NullString
	)
	if err := s.Scan(
		&e.ID, &e.OwnerID, &e.Date, &e.ActivityName,
		&start, &end, &duration,
		&quantity, &unit, &outcome, &mood, &fileURL, &fileName,
		&e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	e.Date = models.CalendarDay(e.Date)
	e.StartTime = nullString(start)
	e.EndTime = nullString(end)
	if duration.Valid {
		d := int(duration.Int64)
		e.DurationMinutes = &d
	}
	if quantity.Valid {
		q := quantity.Float64
		e.Quantity = &q
	}
	e.Unit = nullString(unit)
	e.Outcome = nullString(outcome)
	e.Mood = nullString(mood)
	if fileURL.Valid && fileName.Valid {
		e.AttachmentURL = &fileURL.String
		e.AttachmentName = &fileName.String
	}
	return &e, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
