package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeString represents a wall-clock time of day in "HH:MM" format.
// It is the canonical representation for appointment start/end times both
// in the API and in the database (stored as a Postgres TIME column).
type TimeString string

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format, expected HH:MM")

	// ErrTimeOutOfRange возвращается, когда вычисленное время выходит за пределы суток
	ErrTimeOutOfRange = errors.New("time is out of the 00:00-23:59 range")
)

// NewTimeString создает TimeString из time.Time (отбрасывая дату и секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString парсит строку "HH:MM" (также принимает "HH:MM:SS")
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(normalize(s))
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// FromMinutes converts minutes-since-midnight into a TimeString.
func FromMinutes(m int) (TimeString, error) {
	if m < 0 || m >= 24*60 {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, m)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

// Validate проверяет формат HH:MM
func (t TimeString) Validate() error {
	_, err := t.Minutes()
	return err
}

// IsZero returns true for the empty value.
func (t TimeString) IsZero() bool {
	return t == ""
}

// Minutes returns the value as minutes since midnight.
func (t TimeString) Minutes() (int, error) {
	parts := strings.Split(string(t), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	mins, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	if hours < 0 || hours > 23 || mins < 0 || mins > 59 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	return hours*60 + mins, nil
}

// AddMinutes возвращает время через delta минут (в пределах тех же суток)
func (t TimeString) AddMinutes(delta int) (TimeString, error) {
	m, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return FromMinutes(m + delta)
}

// IsBefore reports whether t is strictly earlier than other.
// Invalid values compare as 00:00.
func (t TimeString) IsBefore(other TimeString) bool {
	a, _ := t.Minutes()
	b, _ := other.Minutes()
	return a < b
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	a, _ := t.Minutes()
	b, _ := other.Minutes()
	return a > b
}

func (t TimeString) String() string {
	return string(t)
}

// Scan implements sql.Scanner. Postgres TIME columns come back either as
// "HH:MM:SS" strings or as time.Time values depending on the driver path.
func (t *TimeString) Scan(value interface{}) error {
	if value == nil {
		*t = ""
		return nil
	}

	switch v := value.(type) {
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		*t = TimeString(normalize(string(v)))
		return nil
	case string:
		*t = TimeString(normalize(v))
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, value)
	}
}

// Value implements driver.Valuer.
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// normalize strips seconds ("HH:MM:SS" -> "HH:MM") and pads the hour.
func normalize(s string) string {
	s = strings.TrimSpace(s)
	if parts := strings.Split(s, ":"); len(parts) == 3 {
		s = parts[0] + ":" + parts[1]
	}
	if len(s) == 4 && s[1] == ':' {
		s = "0" + s
	}
	return s
}
