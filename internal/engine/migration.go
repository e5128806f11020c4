package engine

import (
	"sort"

	"enrolwatch/internal/dataset"
	"enrolwatch/internal/model"
)

// Fixed cut points on the [3.0, 6.0] presentation scale for the rule-based
// migration scorer; the ML path reads its own from the threshold bundle.
const (
	migrationWatch = 4.0
	migrationSurge = 5.0
)

// MigrationAlerts ranks district-months by rule-based inflow score. The raw
// migration-pressure proxy is the summed adult demographic update count,
// rescaled onto [3.0, 6.0] against the dataset-wide P5-P95 window of the same
// proxy. The window spans all months so a district's score is comparable
// across queries.
func MigrationAlerts(ds *dataset.Dataset, month string, limit int) (string, []model.MigrationAlert) {
	if ds.Empty() {
		return "", nil
	}
	target, ok := resolveMonth(ds.Months(), month)
	if !ok {
		return "", nil
	}

	all := aggregateBy(ds.Records, "", false, "", "")
	raws := make([]float64, 0, len(all))
	for _, agg := range all {
		raws = append(raws, float64(agg.DemoAge17))
	}
	sort.Float64s(raws)
	rawMin := Quantile(raws, 0.05)
	rawMax := Quantile(raws, 0.95)

	type scored struct {
		agg   Aggregate
		score float64
	}
	var rows []scored
	for _, agg := range all {
		if agg.Month != target {
			continue
		}
		rows = append(rows, scored{agg: agg, score: RawToInflowScore(float64(agg.DemoAge17), rawMin, rawMax)})
	}
	if len(rows) == 0 {
		return target, nil
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].score > rows[j].score })
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	alerts := make([]model.MigrationAlert, 0, len(rows))
	for _, row := range rows {
		score := Round2(row.score)
		level := InflowTier(score, migrationWatch, migrationSurge)
		alerts = append(alerts, model.MigrationAlert{
			State:             row.agg.State,
			District:          row.agg.District,
			Month:             row.agg.Month,
			InflowScore:       score,
			Level:             level,
			PredictedPressure: PredictedPressure(level),
			Recommendations:   MigrationRecommendations(level),
		})
	}
	return target, alerts
}
