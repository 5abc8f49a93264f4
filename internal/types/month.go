// Package types implements special types for the grant ledger.
package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ErrInvalidMonthTag is returned when a string does not represent a valid month tag.
var ErrInvalidMonthTag = errors.New("the month tag must be a 4-digit MMYY string, e.g. 0125 for January 2025")

var monthTagPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])[0-9]{2}$`)

// MonthTag is a month in a specific year, encoded as MMYY.
//
// It is the month segment of workplan serial IDs and is persisted verbatim
// inside them, so the string format is load-bearing.
type MonthTag time.Time

// NewMonthTag returns a new MonthTag.
func NewMonthTag(year int, month time.Month) MonthTag {
	return MonthTag(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// ParseMonthTag parses an "MMYY" string and returns the MonthTag it represents.
func ParseMonthTag(s string) (MonthTag, error) {
	if !monthTagPattern.MatchString(s) {
		return MonthTag{}, fmt.Errorf("%w, got %q", ErrInvalidMonthTag, s)
	}

	t, err := time.Parse("0106", s)
	if err != nil {
		return MonthTag{}, fmt.Errorf("%w, got %q", ErrInvalidMonthTag, s)
	}

	return NewMonthTag(t.Year(), t.Month()), nil
}

// MonthTagOf returns the MonthTag for the month a time occurs in, in UTC.
func MonthTagOf(t time.Time) MonthTag {
	return NewMonthTag(t.UTC().Year(), t.UTC().Month())
}

// String returns the tag formatted as MMYY.
func (m MonthTag) String() string {
	return time.Time(m).Format("0106")
}

// IsZero reports whether the tag is the zero value.
func (m MonthTag) IsZero() bool {
	return time.Time(m).IsZero()
}

// MarshalJSON implements the json.Marshaler interface.
func (m MonthTag) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", m.String())), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// The tag is expected to be an "MMYY" string.
func (m *MonthTag) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	tag, err := ParseMonthTag(value)
	if err != nil {
		return err
	}

	*m = tag
	return nil
}

// UnmarshalParam binds an "MMYY" query or URI parameter.
func (m *MonthTag) UnmarshalParam(param string) error {
	if param == "" {
		*m = MonthTag{}
		return nil
	}

	tag, err := ParseMonthTag(param)
	if err != nil {
		return err
	}

	*m = tag
	return nil
}

// Scan reads the value from the database.
func (m *MonthTag) Scan(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case nil:
		*m = MonthTag{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into MonthTag", value)
	}

	if s == "" {
		*m = MonthTag{}
		return nil
	}

	tag, err := ParseMonthTag(s)
	if err != nil {
		return err
	}

	*m = tag
	return nil
}

// Value returns the value for the SQL driver to write to the database.
func (m MonthTag) Value() (driver.Value, error) {
	if m.IsZero() {
		return "", nil
	}

	return m.String(), nil
}
