// Package timeofday holds a wall-clock time without a date, stored in
// Postgres as TIME and exchanged on the wire as "HH:MM" or "HH:MM:SS".
package timeofday

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Time is the number of seconds since midnight.
type Time int

const day = 24 * 60 * 60

func New(hour, minute, second int) Time {
	return Time(hour*3600 + minute*60 + second)
}

// From drops the date and zone of t.
func From(t time.Time) Time {
	return New(t.Hour(), t.Minute(), t.Second())
}

// Parse accepts "HH:MM" or "HH:MM:SS".
func Parse(s string) (Time, error) {
	s = strings.TrimSpace(s)
	if len(s) == 5 {
		s += ":00"
	}
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return 0, fmt.Errorf("timeofday: invalid value %q", s)
	}
	return From(t), nil
}

func MustParse(s string) Time {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Time) Hour() int   { return int(t) / 3600 }
func (t Time) Minute() int { return int(t) % 3600 / 60 }
func (t Time) Second() int { return int(t) % 60 }

func (t Time) Before(u Time) bool { return t < u }
func (t Time) After(u Time) bool  { return t > u }

// On places t on the calendar date of d, in d's location.
func (t Time) On(d time.Time) time.Time {
	y, m, dd := d.Date()
	return time.Date(y, m, dd, t.Hour(), t.Minute(), t.Second(), 0, d.Location())
}

func (t Time) String() string {
	if t.Second() == 0 {
		return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
	}
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

func (t *Time) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		*t = From(x)
		return nil
	case []byte:
		return t.parse(string(x))
	case string:
		return t.parse(x)
	case nil:
		*t = 0
		return nil
	default:
		return fmt.Errorf("timeofday: unsupported Scan type %T", v)
	}
}

func (t *Time) parse(s string) error {
	// Postgres may append fractional seconds.
	if i := strings.IndexByte(s, '.'); i > 0 {
		s = s[:i]
	}
	p, err := Parse(s)
	if err != nil {
		return err
	}
	*t = p
	return nil
}

func (t Time) Value() (driver.Value, error) {
	if t < 0 || t >= day {
		return nil, fmt.Errorf("timeofday: %d out of range", int(t))
	}
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second()), nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Time) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return t.parse(s)
}
