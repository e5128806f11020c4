package dataset

import (
	"reflect"
	"regexp"
	"testing"
	"time"

	"enrolwatch/internal/model"
)

func TestParseDateDayFirst(t *testing.T) {
	got, err := ParseDate("05/06/2023")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Day() != 5 || got.Month() != time.June || got.Year() != 2023 {
		t.Fatalf("expected 5 June 2023, got %v", got)
	}
}

func TestParseDateISO(t *testing.T) {
	got, err := ParseDate("2023-06-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if MonthKey(got) != "2023-06" {
		t.Fatalf("expected month 2023-06, got %s", MonthKey(got))
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"", "not-a-date", "2023/13/45"} {
		if _, err := ParseDate(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestNormalizeMonthsDropsAndBuckets(t *testing.T) {
	records := []model.Record{
		{Date: time.Date(2023, 8, 14, 0, 0, 0, 0, time.UTC)},
		{}, // no parseable date
		{Date: time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC), Month: "2023-09"},
	}
	out, dropped := NormalizeMonths(records)
	if dropped != 1 {
		t.Fatalf("expected 1 dropped row, got %d", dropped)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 surviving rows, got %d", len(out))
	}
	monthRe := regexp.MustCompile(`^\d{4}-\d{2}$`)
	for _, r := range out {
		if !monthRe.MatchString(r.Month) {
			t.Fatalf("month %q does not match YYYY-MM", r.Month)
		}
		if r.Month != MonthKey(r.Date) {
			t.Fatalf("month %q does not equal truncated date %q", r.Month, MonthKey(r.Date))
		}
	}
}

func TestNormalizeMonthsIdempotent(t *testing.T) {
	records := []model.Record{
		{Date: time.Date(2023, 8, 14, 0, 0, 0, 0, time.UTC)},
		{Date: time.Date(2023, 8, 20, 0, 0, 0, 0, time.UTC)},
	}
	once, _ := NormalizeMonths(records)
	twice, dropped := NormalizeMonths(once)
	if dropped != 0 {
		t.Fatalf("second pass dropped %d rows", dropped)
	}
	if len(once) != len(twice) {
		t.Fatalf("second pass changed row count: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if !reflect.DeepEqual(once[i], twice[i]) {
			t.Fatalf("row %d changed on second pass", i)
		}
	}
}

func TestCoerceCount(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"42", 42},
		{" 42 ", 42},
		{"42.9", 42},
		{"-7", 0},
		{"", 0},
		{"n/a", 0},
	}
	for _, tc := range cases {
		if got := coerceCount(tc.in); got != tc.want {
			t.Errorf("coerceCount(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
