package mip65

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02"

// daySeconds is the length of a whole day; dates must be multiples of it.
const daySeconds = 86400

// ErrInvalidDate reports a bookkeeping date that is zero, not aligned to a
// UTC midnight, or not strictly in the past.
var ErrInvalidDate = errors.New("invalid date")

// Date is a day-aligned UTC timestamp, in seconds since the Unix epoch.
// The zero value means "no date" (only the asset-init entry carries none).
type Date uint64

// NewDate returns the Date for the given year, month and day at UTC midnight.
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix())
}

// Today returns the current date at UTC midnight.
func Today() Date {
	return NewDate(time.Now().UTC().Date())
}

// ParseDate parses an ISO-8601 date string into a Date. It is lenient and
// accepts single-digit month and day, like "2025-7-1".
func ParseDate(str string) (Date, error) {
	on, err := time.Parse("2006-1-2", str)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q want format %q: %w", str, DateFormat, err)
	}
	return Date(on.Unix()), nil
}

// MustParseDate is like ParseDate but panics on error.
func MustParseDate(str string) Date {
	d, err := ParseDate(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// Time returns the canonical time for the date (midnight UTC).
func (d Date) Time() time.Time { return time.Unix(int64(d), 0).UTC() }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d == 0 }

// String formats the date as ISO-8601, or "" for the zero value.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(DateFormat)
}

// Validate checks the bookkeeping-date discipline against the given wall
// clock: the date must be non-zero, aligned to a whole UTC day, and strictly
// in the past. It does not enforce monotonic ordering between successive
// entries; corrections may legitimately recur with an earlier date.
func (d Date) Validate(now time.Time) error {
	if d.IsZero() {
		return fmt.Errorf("%w: date is zero", ErrInvalidDate)
	}
	if d%daySeconds != 0 {
		return fmt.Errorf("%w: %d is not aligned to a UTC midnight", ErrInvalidDate, uint64(d))
	}
	if !d.Time().Before(now) {
		return fmt.Errorf("%w: %s is not in the past", ErrInvalidDate, d)
	}
	return nil
}

// UnmarshalJSON implements the json specific way to unmarshall a date from a json string.
func (d *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	if str == "" {
		*d = 0
		return nil
	}
	on, err := ParseDate(str)
	if err != nil {
		return fmt.Errorf("invalid date %q in data file, want format %q: %w", str, DateFormat, err)
	}
	*d = on
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Date.
func (d Date) MarshalJSON() ([]byte, error) {
	str := d.String()
	return json.Marshal(&str)
}

var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
