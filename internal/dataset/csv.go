package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"enrolwatch/internal/model"
)

// LoadCSV reads the dataset from a CSV file. The header is matched
// case-insensitively; required columns must all be present; any other column
// is carried as an auxiliary numeric column. Rows with unparseable dates are
// dropped, non-numeric measure cells coerce to zero.
func LoadCSV(path string, logger *slog.Logger) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return readCSV(f, logger)
}

func readCSV(r io.Reader, logger *slog.Logger) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, &ValidationError{Reason: "dataset is empty after loading"}
	}
	if err := validateColumns(header); err != nil {
		return nil, err
	}

	index := make(map[string]int, len(header))
	required := make(map[string]struct{}, len(requiredColumns))
	for _, c := range requiredColumns {
		required[c] = struct{}{}
	}
	var extraCols []string
	for i, c := range header {
		name := strings.ToLower(strings.TrimSpace(c))
		if _, dup := index[name]; dup {
			continue
		}
		index[name] = i
		if _, ok := required[name]; !ok && name != "month" {
			extraCols = append(extraCols, name)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var records []model.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset row: %w", err)
		}
		rec := model.Record{
			State:    strings.TrimSpace(cell(row, "state")),
			District: strings.TrimSpace(cell(row, "district")),
			Pincode:  strings.TrimSpace(cell(row, "pincode")),

			Age0To5:      coerceCount(cell(row, "age_0_5")),
			Age5To17:     coerceCount(cell(row, "age_5_17")),
			Age18Plus:    coerceCount(cell(row, "age_18_greater")),
			DemoAge5To17: coerceCount(cell(row, "demo_age_5_17")),
			DemoAge17:    coerceCount(cell(row, "demo_age_17_")),
			BioAge5To17:  coerceCount(cell(row, "bio_age_5_17")),
			BioAge17:     coerceCount(cell(row, "bio_age_17_")),
		}
		if d, err := ParseDate(cell(row, "date")); err == nil {
			rec.Date = d
		}
		if len(extraCols) > 0 {
			rec.Extra = make(map[string]int, len(extraCols))
			for _, name := range extraCols {
				rec.Extra[name] = coerceCount(cell(row, name))
			}
		}
		records = append(records, rec)
	}

	records, dropped := NormalizeMonths(records)
	logDropped(logger, dropped)
	if err := validateNonEmpty(records); err != nil {
		return nil, err
	}
	return &Dataset{Records: records, ExtraColumns: extraCols}, nil
}
