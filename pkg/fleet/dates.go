package fleet

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// dateFormats are the layouts accepted when parsing sheet cells. The
// roster sheets are hand-edited, so several regional formats show up.
var dateFormats = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
}

// Date is a calendar date with day precision, normalized to UTC midnight.
type Date struct {
	t time.Time
}

// NewDate builds a Date from year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a sheet cell into a Date. Empty cells and the
// placeholder values "-" and "None" parse to the zero Date without error.
func ParseDate(raw string) (Date, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "-" || trimmed == "None" {
		return Date{}, nil
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return Date{t: t.UTC()}, nil
		}
	}
	return Date{}, fmt.Errorf("unparseable date: %q", raw)
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Before reports whether d falls strictly before other.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// After reports whether d falls strictly after other.
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// Equal reports whether the two dates are the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// String renders the date as YYYY-MM-DD, or "-" when unset.
func (d Date) String() string {
	if d.IsZero() {
		return "-"
	}
	return d.t.Format("2006-01-02")
}

// MarshalJSON encodes the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a date from any of the accepted layouts.
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DateRange is an inclusive span of calendar days. End must not precede
// Start; Snapshot construction rejects records that violate this.
type DateRange struct {
	// Start is the first day of the range.
	Start Date `json:"start"`

	// End is the last day of the range, inclusive.
	End Date `json:"end"`
}

// Valid reports whether both endpoints are set and ordered.
func (r DateRange) Valid() bool {
	return !r.Start.IsZero() && !r.End.IsZero() && !r.End.Before(r.Start)
}

// Days returns the inclusive length of the range in days. Invalid ranges
// report zero days.
func (r DateRange) Days() int {
	if !r.Valid() {
		return 0
	}
	return int(r.End.t.Sub(r.Start.t).Hours()/24) + 1
}

// Overlaps reports whether the two ranges share at least one day:
// s1 <= e2 AND s2 <= e1. The predicate is symmetric, and every valid
// range overlaps itself. Invalid ranges never overlap anything.
func (r DateRange) Overlaps(other DateRange) bool {
	if !r.Valid() || !other.Valid() {
		return false
	}
	return !r.Start.After(other.End) && !other.Start.After(r.End)
}

// Contains reports whether the day falls inside the range.
func (r DateRange) Contains(d Date) bool {
	if !r.Valid() || d.IsZero() {
		return false
	}
	return !d.Before(r.Start) && !d.After(r.End)
}

// String renders the range as "start..end".
func (r DateRange) String() string {
	return r.Start.String() + ".." + r.End.String()
}
