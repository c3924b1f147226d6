package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"
	// Layout produced by JavaScript's Date.prototype.toDateString.
	legacyDateLayout = "Mon Jan 02 2006"
)

// Date is a calendar day without a time or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}
}

func ParseDate(raw string) (Date, error) {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range []string{dateLayout, legacyDateLayout} {
		parsed, err := time.Parse(layout, trimmed)
		if err == nil {
			return DateOf(parsed), nil
		}
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Date{}
		return nil
	}

	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
