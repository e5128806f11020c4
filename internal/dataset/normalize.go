package dataset

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"enrolwatch/internal/model"
)

// Day-first layouts come before year-first ones so ambiguous values such as
// 05/06/2023 resolve to 5 June, matching the upstream data convention.
var dateLayouts = []string{
	"02/01/2006",
	"02-01-2006",
	"2/1/2006",
	"02/01/2006 15:04:05",
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unsupported date format: " + strconv.Quote(value))
}

// MonthKey truncates a date to its calendar month bucket, formatted YYYY-MM.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// NormalizeMonths drops records without a valid date and fills the month
// bucket where it is not already set. Idempotent: a second pass over its own
// output returns the same records. Dropped rows are a data-quality loss, not
// an error; the count is logged by the caller via the returned value.
func NormalizeMonths(records []model.Record) (out []model.Record, dropped int) {
	out = make([]model.Record, 0, len(records))
	for _, r := range records {
		if r.Date.IsZero() {
			dropped++
			continue
		}
		if r.Month == "" {
			r.Month = MonthKey(r.Date)
		}
		out = append(out, r)
	}
	return out, dropped
}

func logDropped(logger *slog.Logger, dropped int) {
	if logger != nil && dropped > 0 {
		logger.Warn("dropped rows with unparseable dates", "count", dropped)
	}
}

// coerceCount parses a measure cell, zeroing anything non-numeric or negative.
// Fractional values are truncated toward zero.
func coerceCount(value string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if n, err := strconv.Atoi(value); err == nil {
		if n < 0 {
			return 0
		}
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		if f < 0 {
			return 0
		}
		return int(f)
	}
	return 0
}
