package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire and storage format of an entry date.
const DateLayout = "2006-01-02"

// Entry is one daily activity record (a row of laporan_harian).
type Entry struct {
	ID              int64     `json:"id"`
	OwnerID         uuid.UUID `json:"user_id"`
	Date            time.Time `json:"date"`
	ActivityName    string    `json:"activity_name"`
	StartTime       *string   `json:"start_time"`
	EndTime         *string   `json:"end_time"`
	DurationMinutes *int      `json:"duration_minutes"`
	Quantity        *float64  `json:"quantity"`
	Unit            *string   `json:"unit"`
	Outcome         *string   `json:"outcome"`
	Mood            *string   `json:"mood"`
	AttachmentURL   *string   `json:"file_url"`
	AttachmentName  *string   `json:"file_name"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// MarshalJSON writes Date as a plain calendar date.
func (e Entry) MarshalJSON() ([]byte, error) {
	type alias Entry
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
	}{alias: alias(e), Date: e.Date.Format(DateLayout)})
}

// HasAttachment reports whether both attachment columns are set.
func (e Entry) HasAttachment() bool {
	return e.AttachmentURL != nil && e.AttachmentName != nil
}

// EntryInput is the caller-supplied part of an entry, as received from a client.
type EntryInput struct {
	Date         string   `json:"date"`
	ActivityName string   `json:"activity_name"`
	StartTime    string   `json:"start_time"`
	EndTime      string   `json:"end_time"`
	Quantity     *float64 `json:"quantity"`
	Unit         string   `json:"unit"`
	Outcome      string   `json:"outcome"`
	Mood         string   `json:"mood"`
}

// EntryFields is a validated EntryInput with the derived duration filled in.
type EntryFields struct {
	Date            time.Time
	ActivityName    string
	StartTime       *string
	EndTime         *string
	DurationMinutes *int
	Quantity        *float64
	Unit            *string
	Outcome         *string
	Mood            *string
}

const (
	minActivityNameLength = 3
	maxActivityNameLength = 500
	maxUnitLength         = 50
	maxMoodLength         = 50
)

// Validate checks the input and returns normalized fields. The first failing
// rule is returned as a *ValidationError.
func (in EntryInput) Validate() (*EntryFields, error) {
	rawDate := strings.TrimSpace(in.Date)
	if rawDate == "" {
		return nil, &ValidationError{Field: "date", Message: "Tanggal wajib diisi"}
	}
	date, err := ParseDate(rawDate)
	if err != nil {
		return nil, &ValidationError{Field: "date", Message: "Format tanggal tidak valid"}
	}

	name := strings.TrimSpace(in.ActivityName)
	if len([]rune(name)) < minActivityNameLength {
		return nil, &ValidationError{Field: "activity_name", Message: "Nama kegiatan minimal 3 karakter"}
	}
	if len([]rune(name)) > maxActivityNameLength {
		return nil, &ValidationError{Field: "activity_name", Message: "Nama kegiatan maksimal 500 karakter"}
	}

	start, err := optionalClock(in.StartTime)
	if err != nil {
		return nil, &ValidationError{Field: "start_time", Message: "Format jam tidak valid"}
	}
	end, err := optionalClock(in.EndTime)
	if err != nil {
		return nil, &ValidationError{Field: "end_time", Message: "Format jam tidak valid"}
	}

	if in.Quantity != nil && *in.Quantity < 0 {
		return nil, &ValidationError{Field: "quantity", Message: "Volume tidak boleh negatif"}
	}

	unit := optionalString(in.Unit)
	if unit != nil && len([]rune(*unit)) > maxUnitLength {
		return nil, &ValidationError{Field: "unit", Message: "Satuan maksimal 50 karakter"}
	}
	mood := optionalString(in.Mood)
	if mood != nil && len([]rune(*mood)) > maxMoodLength {
		return nil, &ValidationError{Field: "mood", Message: "Mood maksimal 50 karakter"}
	}

	return &EntryFields{
		Date:            date,
		ActivityName:    name,
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: DurationMinutes(start, end),
		Quantity:        in.Quantity,
		Unit:            unit,
		Outcome:         optionalString(in.Outcome),
		Mood:            mood,
	}, nil
}

func optionalClock(s string) (*string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	c, err := NormalizeClock(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
