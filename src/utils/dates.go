package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{
	ShortDashDateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	ShortSlashDateLayout,
}

// TruncateDay returns midnight UTC of t's calendar date.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO date (optionally with a time part) into a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return TruncateDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// ExcelSerialToDate converts a spreadsheet date serial to a calendar date.
// The fractional (time of day) part is dropped. Serials past 9999-12-31 are
// rejected.
func ExcelSerialToDate(serial float64) (time.Time, error) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) || serial < 0 || math.Floor(serial) > ExcelMaxSerial {
		return time.Time{}, fmt.Errorf("invalid date serial %v", serial)
	}
	base := time.Date(ExcelEpochYear, ExcelEpochMonth, ExcelEpochDay, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, int(math.Floor(serial))), nil
}

// ParseFlexibleDate accepts an ISO date string or a numeric spreadsheet serial.
func ParseFlexibleDate(s string) (time.Time, error) {
	if t, err := ParseDate(s); err == nil {
		return t, nil
	}
	serial, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return ExcelSerialToDate(serial)
}
