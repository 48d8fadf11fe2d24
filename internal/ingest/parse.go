package ingest

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts covers the formats observed across the source systems. The
// exports come from several tools and no two agree on a date format.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"1/2/2006 15:04",
	"1/2/2006 3:04 PM",
	"1/2/2006",
	"01/02/2006",
	"2-Jan-06",
	"2-Jan-2006",
	"Jan 2, 2006",
}

// excelEpoch is day zero of Excel's 1900 date system.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// parseTime parses a spreadsheet cell into a timestamp. Numeric cells are
// treated as Excel serial dates. A cell nothing matches parses to the zero
// time; the caller excludes such records rather than failing the batch.
func parseTime(cell string) time.Time {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return time.Time{}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t
		}
	}

	// Excel serial date: days (possibly fractional) since the 1900 epoch.
	if serial, err := strconv.ParseFloat(cell, 64); err == nil && serial > 59 && serial < 80000 {
		return excelEpoch.Add(time.Duration(serial * float64(24*time.Hour)))
	}

	return time.Time{}
}

// parseMonthYear parses a ledger month column ("Jan-24", "January 2024",
// "01/2024") into its month and year. ok is false when nothing matches.
func parseMonthYear(cell string) (time.Month, int, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, 0, false
	}
	for _, layout := range []string{"Jan-06", "Jan-2006", "January 2006", "Jan 2006", "01/2006", "2006-01"} {
		if t, err := time.Parse(layout, cell); err == nil {
			return t.Month(), t.Year(), true
		}
	}
	if t := parseTime(cell); !t.IsZero() {
		return t.Month(), t.Year(), true
	}
	return 0, 0, false
}

// parseFloat parses a numeric cell, tolerating thousands separators, leading
// currency markers and accounting-style parentheses for negatives.
func parseFloat(cell string) (float64, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, false
	}
	neg := false
	if strings.HasPrefix(cell, "(") && strings.HasSuffix(cell, ")") {
		neg = true
		cell = cell[1 : len(cell)-1]
	}
	cell = strings.TrimPrefix(cell, "$")
	cell = strings.ReplaceAll(cell, ",", "")
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		v = -v
	}
	return v, true
}

// parseInt parses an integer cell through parseFloat so "12.0" and "1,200"
// both work.
func parseInt(cell string) (int, bool) {
	v, ok := parseFloat(cell)
	if !ok {
		return 0, false
	}
	return int(v), true
}

// optFloat returns a pointer for optional numeric columns, nil when absent.
func optFloat(cell string) *float64 {
	if v, ok := parseFloat(cell); ok {
		return &v
	}
	return nil
}
