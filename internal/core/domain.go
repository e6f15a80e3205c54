package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultCategory is substituted when a record is added with a blank category.
const DefaultCategory = "General"

const dayLayout = "2006-01-02"

type (
	// Day is a timezone-naive calendar date, serialized as "YYYY-MM-DD".
	Day struct {
		time.Time
	}

	// ExpenseRecord is one logged monetary transaction.
	ExpenseRecord struct {
		ID       string `json:"id"`
		Date     Day    `json:"date"`
		Amount   Money  `json:"amount"`
		Category string `json:"category"`
		Note     string `json:"note"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyID       = errors.New("empty record id")
	ErrDuplicateID   = errors.New("duplicate record id")
	ErrEmptyCategory = errors.New("empty category")
)

// NewDay creates a Day from year, month, day at UTC midnight.
func NewDay(year, month, day int) Day {
	return Day{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDay parses a "YYYY-MM-DD" string into a Day.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, strings.TrimSpace(s))
	if err != nil {
		return Day{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Day{Time: t}, nil
}

// Today returns the current calendar date.
func Today() Day {
	now := time.Now()
	return NewDay(now.Year(), int(now.Month()), now.Day())
}

func (d Day) String() string {
	return d.Format(dayLayout)
}

// Equal reports whether two Days name the same calendar date.
func (d Day) Equal(other Day) bool {
	return d.String() == other.String()
}

func (d Day) Validate() error {
	if d.IsZero() {
		return fmt.Errorf("%w: zero date", ErrInvalidDate)
	}
	return nil
}

func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Day) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (r ExpenseRecord) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return ErrEmptyID
	}
	if err := r.Date.Validate(); err != nil {
		return err
	}
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// ValidateRecords checks every record in the sequence and that ids are
// distinct.
func ValidateRecords(records []ExpenseRecord) error {
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if _, ok := seen[r.ID]; ok {
			return fmt.Errorf("record %d: %w: %q", i, ErrDuplicateID, r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	return nil
}
