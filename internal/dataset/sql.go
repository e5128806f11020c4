package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"enrolwatch/internal/config"
	"enrolwatch/internal/model"
)

// LoadSQL reads the dataset from a sqlite or postgres table. The column set is
// taken from the result metadata so auxiliary columns are discovered exactly
// like CSV headers.
func LoadSQL(ctx context.Context, cfg config.DatasetConfig, logger *slog.Logger) (*Dataset, error) {
	var driver string
	switch strings.ToLower(cfg.Driver) {
	case "sqlite":
		driver = "sqlite"
	case "postgres", "postgresql":
		driver = "pgx"
	default:
		return nil, errors.New("unsupported dataset driver")
	}
	db, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open dataset store: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(cfg.Table))
	if err != nil {
		return nil, fmt.Errorf("query dataset table: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read dataset columns: %w", err)
	}
	if err := validateColumns(cols); err != nil {
		return nil, err
	}

	required := make(map[string]struct{}, len(requiredColumns))
	for _, c := range requiredColumns {
		required[c] = struct{}{}
	}
	names := make([]string, len(cols))
	var extraCols []string
	for i, c := range cols {
		names[i] = strings.ToLower(strings.TrimSpace(c))
		if _, ok := required[names[i]]; !ok && names[i] != "month" {
			extraCols = append(extraCols, names[i])
		}
	}

	var records []model.Record
	for rows.Next() {
		values := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan dataset row: %w", err)
		}
		byName := make(map[string]string, len(cols))
		for i, name := range names {
			if values[i].Valid {
				byName[name] = values[i].String
			}
		}
		rec := model.Record{
			State:    strings.TrimSpace(byName["state"]),
			District: strings.TrimSpace(byName["district"]),
			Pincode:  strings.TrimSpace(byName["pincode"]),

			Age0To5:      coerceCount(byName["age_0_5"]),
			Age5To17:     coerceCount(byName["age_5_17"]),
			Age18Plus:    coerceCount(byName["age_18_greater"]),
			DemoAge5To17: coerceCount(byName["demo_age_5_17"]),
			DemoAge17:    coerceCount(byName["demo_age_17_"]),
			BioAge5To17:  coerceCount(byName["bio_age_5_17"]),
			BioAge17:     coerceCount(byName["bio_age_17_"]),
		}
		if d, err := ParseDate(byName["date"]); err == nil {
			rec.Date = d
		}
		if len(extraCols) > 0 {
			rec.Extra = make(map[string]int, len(extraCols))
			for _, name := range extraCols {
				rec.Extra[name] = coerceCount(byName[name])
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dataset rows: %w", err)
	}

	records, dropped := NormalizeMonths(records)
	logDropped(logger, dropped)
	if err := validateNonEmpty(records); err != nil {
		return nil, err
	}
	return &Dataset{Records: records, ExtraColumns: extraCols}, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
