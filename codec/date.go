package codec

import (
	"fmt"
	"strings"
	"time"

	"github.com/wippyai/nwrfc/codec/internal/abi"
)

const (
	dateLayout    = "20060102"
	isoDateLayout = "2006-01-02"
	timeLayout    = "150405"
	isoTimeLayout = "15:04:05"

	initialDate = "00000000"
	initialTime = "000000"
)

// Date is a calendar date without a time of day or location
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's location
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// IsZero reports whether d is the ABAP initial date 00000000
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Valid reports whether d names a real calendar day within ABAP's year range
func (d Date) Valid() bool {
	if d.Year < 1 || d.Year > 9999 || d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return false
	}
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	return t.Day() == d.Day && t.Month() == d.Month
}

// Time returns midnight of d in loc. The initial date has no instant and
// returns the zero time.Time.
func (d Date) Time(loc *time.Location) time.Time {
	if d.IsZero() {
		return time.Time{}
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Format renders d with a time package layout. The initial date renders
// every numeric element as zeros, so Format("20060102") gives "00000000".
func (d Date) Format(layout string) string {
	if d.IsZero() {
		return strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return '0'
			}
			return r
		}, time.Date(1111, 11, 11, 0, 0, 0, 0, time.UTC).Format(layout))
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format(layout)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// TimeOfDay is a wall clock time without a date
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// TimeOfDayOf returns the wall clock time of t in t's location
func TimeOfDayOf(t time.Time) TimeOfDay {
	h, m, s := t.Clock()
	return TimeOfDay{Hour: h, Minute: m, Second: s}
}

// Valid reports whether the clock fields are in range
func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour < 24 && t.Minute >= 0 && t.Minute < 60 && t.Second >= 0 && t.Second < 60
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// dateDigits normalizes a DATE host value to its 8 digit form.
func dateDigits(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return parseDateText(v)
	case time.Time:
		if v.IsZero() {
			return initialDate, true
		}
		return formatDate(DateOf(v))
	case *time.Time:
		if v == nil {
			return initialDate, true
		}
		return dateDigits(*v)
	case Date:
		if v.IsZero() {
			return initialDate, true
		}
		return formatDate(v)
	case nil:
		return initialDate, true
	}
	return "", false
}

func parseDateText(s string) (string, bool) {
	s = strings.TrimSpace(s)
	switch {
	case s == "" || s == initialDate:
		return initialDate, true
	case len(s) == len(dateLayout) && abi.IsDigits(s):
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return "", false
		}
		return t.Format(dateLayout), true
	case len(s) == len(isoDateLayout):
		t, err := time.Parse(isoDateLayout, s)
		if err != nil {
			return "", false
		}
		return t.Format(dateLayout), true
	}
	return "", false
}

func formatDate(d Date) (string, bool) {
	if !d.Valid() {
		return "", false
	}
	return fmt.Sprintf("%04d%02d%02d", d.Year, int(d.Month), d.Day), true
}

// timeDigits normalizes a TIME host value to its 6 digit form.
func timeDigits(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return parseTimeText(v)
	case time.Time:
		return v.Format(timeLayout), true
	case *time.Time:
		if v == nil {
			return initialTime, true
		}
		return v.Format(timeLayout), true
	case TimeOfDay:
		if !v.Valid() {
			return "", false
		}
		return fmt.Sprintf("%02d%02d%02d", v.Hour, v.Minute, v.Second), true
	case nil:
		return initialTime, true
	}
	return "", false
}

func parseTimeText(s string) (string, bool) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return initialTime, true
	case len(s) == len(timeLayout) && abi.IsDigits(s):
		t, err := time.Parse(timeLayout, s)
		if err != nil {
			return "", false
		}
		return t.Format(timeLayout), true
	case len(s) == len(isoTimeLayout):
		t, err := time.Parse(isoTimeLayout, s)
		if err != nil {
			return "", false
		}
		return t.Format(timeLayout), true
	}
	return "", false
}

// dateValue turns stored digits back into a Date
func dateValue(digits string) (Date, bool) {
	if digits == initialDate || strings.TrimSpace(digits) == "" {
		return Date{}, true
	}
	t, err := time.Parse(dateLayout, digits)
	if err != nil {
		return Date{}, false
	}
	return DateOf(t), true
}

func timeValue(digits string) (time.Time, bool) {
	if strings.TrimSpace(digits) == "" {
		digits = initialTime
	}
	t, err := time.Parse(timeLayout, digits)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
