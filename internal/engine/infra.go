package engine

import (
	"sort"

	"enrolwatch/internal/dataset"
	"enrolwatch/internal/model"
)

// InfrastructureAlerts ranks pincode-months by stress score: a pincode's total
// enrolment-plus-update load relative to the mean pincode load of the same
// month.
func InfrastructureAlerts(ds *dataset.Dataset, month string, limit int) (string, []model.InfrastructureAlert) {
	if ds.Empty() {
		return "", nil
	}
	target, ok := resolveMonth(ds.Months(), month)
	if !ok {
		return "", nil
	}
	groups := aggregateBy(ds.Records, target, true, "", "")
	if len(groups) == 0 {
		return target, nil
	}

	var totalLoad int
	for _, agg := range groups {
		totalLoad += agg.TotalLoad()
	}
	meanLoad := float64(totalLoad) / float64(len(groups))

	type scored struct {
		agg   Aggregate
		load  int
		score float64
	}
	rows := make([]scored, 0, len(groups))
	for _, agg := range groups {
		load := agg.TotalLoad()
		rows = append(rows, scored{agg: agg, load: load, score: StressScore(load, meanLoad)})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].score > rows[j].score })
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	alerts := make([]model.InfrastructureAlert, 0, len(rows))
	for _, row := range rows {
		score := Round2(row.score)
		tier := TierStress(row.score)
		alerts = append(alerts, model.InfrastructureAlert{
			State:           row.agg.State,
			District:        row.agg.District,
			Pincode:         row.agg.Pincode,
			Month:           row.agg.Month,
			TotalLoad:       row.load,
			StressScore:     score,
			Tier:            tier,
			Recommendations: StressRecommendations(tier),
		})
	}
	return target, alerts
}
