package ml

import (
	"sort"

	"enrolwatch/internal/dataset"
	"enrolwatch/internal/engine"
)

// Exact feature column names the model was trained with. The doubled and
// trailing underscores come from the upstream column naming and must match
// the artifact's coefficient keys byte for byte.
var FeatureColumns = []string{
	"age_0_5",
	"age_5_17",
	"age_18_greater",
	"demo_age_5_17",
	"demo_age_17_",
	"bio_age_5_17",
	"bio_age_17_",
	"child_demo_ratio",
	"adult_demo_ratio",
	"child_bio_ratio",
	"demo_age_17___roll3",
	"demo_age_5_17_roll3",
	"bio_age_5_17_roll3",
	"bio_age_17___roll3",
}

// FeatureRow is one district-month of the model's feature frame. State and
// district ride alongside the numeric values for models that accept
// categorical input.
type FeatureRow struct {
	State    string
	District string
	Month    string
	Values   map[string]float64
}

// BuildFeatures rebuilds the training-time feature frame from the raw
// dataset: district-month sums, demo/bio ratio features, and trailing
// three-month rolling means per (state, district) series. The rolling window
// for month M covers months M-3..M-1 only — shifted one period so the feature
// never sees the month it describes. A series' first period has no trailing
// window and takes 0, matching how the trainer fills absent roll columns.
func BuildFeatures(ds *dataset.Dataset) []FeatureRow {
	aggs := engine.AggregateDistrictMonths(ds.Records)

	// chronological order within each (state, district) series; YYYY-MM sorts
	// lexicographically
	sort.SliceStable(aggs, func(i, j int) bool {
		if aggs[i].State != aggs[j].State {
			return aggs[i].State < aggs[j].State
		}
		if aggs[i].District != aggs[j].District {
			return aggs[i].District < aggs[j].District
		}
		return aggs[i].Month < aggs[j].Month
	})

	rows := make([]FeatureRow, 0, len(aggs))
	type seriesKey struct{ state, district string }
	history := make(map[seriesKey][][4]float64)

	for _, agg := range aggs {
		key := seriesKey{state: agg.State, district: agg.District}
		prev := history[key]

		totalDemo := float64(agg.DemoAge5To17 + agg.DemoAge17 + 1)
		totalBio := float64(agg.BioAge5To17 + agg.BioAge17 + 1)

		values := map[string]float64{
			"age_0_5":          float64(agg.Age0To5),
			"age_5_17":         float64(agg.Age5To17),
			"age_18_greater":   float64(agg.Age18Plus),
			"demo_age_5_17":    float64(agg.DemoAge5To17),
			"demo_age_17_":     float64(agg.DemoAge17),
			"bio_age_5_17":     float64(agg.BioAge5To17),
			"bio_age_17_":      float64(agg.BioAge17),
			"child_demo_ratio": float64(agg.DemoAge5To17) / totalDemo,
			"adult_demo_ratio": float64(agg.DemoAge17) / totalDemo,
			"child_bio_ratio":  float64(agg.BioAge5To17) / totalBio,
		}
		values["demo_age_17___roll3"] = trailingMean(prev, 0)
		values["demo_age_5_17_roll3"] = trailingMean(prev, 1)
		values["bio_age_5_17_roll3"] = trailingMean(prev, 2)
		values["bio_age_17___roll3"] = trailingMean(prev, 3)

		rows = append(rows, FeatureRow{
			State:    agg.State,
			District: agg.District,
			Month:    agg.Month,
			Values:   values,
		})

		history[key] = append(prev, [4]float64{
			float64(agg.DemoAge17),
			float64(agg.DemoAge5To17),
			float64(agg.BioAge5To17),
			float64(agg.BioAge17),
		})
	}
	return rows
}

// trailingMean averages up to the last three recorded periods of a series.
// An empty history yields 0.
func trailingMean(history [][4]float64, col int) float64 {
	n := len(history)
	if n == 0 {
		return 0
	}
	start := n - 3
	if start < 0 {
		start = 0
	}
	var sum float64
	for _, vals := range history[start:] {
		sum += vals[col]
	}
	return sum / float64(n-start)
}
