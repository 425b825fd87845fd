package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ClockTime is a wall-clock time of day without a date, stored in a
// Postgres `time` column.
type ClockTime struct {
	Hour   int
	Minute int
	Second int
}

var clockLayouts = []string{"15:04:05", "15:04", "15:04:05.999999"}

// ParseClockTime accepts "HH:MM" or "HH:MM:SS".
func ParseClockTime(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return ClockTime{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
		}
	}
	return ClockTime{}, fmt.Errorf("invalid time of day %q", s)
}

// String renders HH:MM, with seconds only when they are set.
func (t ClockTime) String() string {
	if t.Second != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	}
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t ClockTime) seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// Before reports whether t is earlier in the day than o.
func (t ClockTime) Before(o ClockTime) bool {
	return t.seconds() < o.seconds()
}

func (t ClockTime) Value() (driver.Value, error) {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second), nil
}

func (t *ClockTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*t = ClockTime{Hour: v.Hour(), Minute: v.Minute(), Second: v.Second()}
		return nil
	case string:
		parsed, err := ParseClockTime(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		return t.Scan(string(v))
	case nil:
		*t = ClockTime{}
		return nil
	}
	return fmt.Errorf("cannot scan %T into ClockTime", src)
}

func (t ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *ClockTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
