// Package dataset loads the enrollment/biometric-update dataset from CSV or a
// SQL table, normalizes dates into month buckets, and caches the snapshot for
// the process lifetime.
package dataset

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"enrolwatch/internal/model"
)

// ErrValidation marks dataset-level failures: required columns entirely
// absent, or an empty dataset after load.
var ErrValidation = errors.New("dataset validation failed")

type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("dataset validation failed: %s", e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

var requiredColumns = []string{
	"date",
	"state",
	"district",
	"pincode",
	"age_0_5",
	"age_5_17",
	"age_18_greater",
	"demo_age_5_17",
	"demo_age_17_",
	"bio_age_5_17",
	"bio_age_17_",
}

// Dataset is an immutable snapshot of the loaded table. ExtraColumns preserves
// the source header order of auxiliary numeric columns, which downstream
// column detection relies on.
type Dataset struct {
	Records      []model.Record
	ExtraColumns []string
}

func (d *Dataset) Empty() bool {
	return d == nil || len(d.Records) == 0
}

// Months returns the distinct month buckets present, ascending.
func (d *Dataset) Months() []string {
	if d == nil {
		return nil
	}
	seen := make(map[string]struct{})
	for _, r := range d.Records {
		if r.Month != "" {
			seen[r.Month] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for m := range seen {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// LatestMonth returns the lexicographically greatest month bucket, which is
// the chronologically latest given YYYY-MM formatting.
func (d *Dataset) LatestMonth() string {
	months := d.Months()
	if len(months) == 0 {
		return ""
	}
	return months[len(months)-1]
}

func (d *Dataset) HasMonth(month string) bool {
	if d == nil {
		return false
	}
	for _, r := range d.Records {
		if r.Month == month {
			return true
		}
	}
	return false
}

func validateColumns(header []string) error {
	present := make(map[string]struct{}, len(header))
	for _, c := range header {
		present[strings.ToLower(strings.TrimSpace(c))] = struct{}{}
	}
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := present[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Reason: fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", "))}
	}
	return nil
}

func validateNonEmpty(records []model.Record) error {
	if len(records) == 0 {
		return &ValidationError{Reason: "dataset is empty after loading"}
	}
	return nil
}
