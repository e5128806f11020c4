package engine

import (
	"sort"

	"enrolwatch/internal/dataset"
	"enrolwatch/internal/model"
)

// LostGenerationAlerts ranks district-months by FAFI ratio: the gap between
// young-child enrolments and the biometric updates expected once those
// children age into the mandatory re-capture bracket.
func LostGenerationAlerts(ds *dataset.Dataset, month string, limit int) (string, []model.LostGenerationAlert) {
	if ds.Empty() {
		return "", nil
	}
	target, ok := resolveMonth(ds.Months(), month)
	if !ok {
		return "", nil
	}
	groups := aggregateBy(ds.Records, target, false, "", "")
	if len(groups) == 0 {
		return target, nil
	}

	type scored struct {
		agg   Aggregate
		value int
		ratio float64
	}
	rows := make([]scored, 0, len(groups))
	for _, agg := range groups {
		value, ratio := FAFI(agg.Age0To5, agg.BioAge5To17)
		rows = append(rows, scored{agg: agg, value: value, ratio: ratio})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ratio > rows[j].ratio })
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	alerts := make([]model.LostGenerationAlert, 0, len(rows))
	for _, row := range rows {
		tier := TierFAFI(row.ratio)
		alerts = append(alerts, model.LostGenerationAlert{
			State:           row.agg.State,
			District:        row.agg.District,
			Month:           row.agg.Month,
			EnrolAge0To5:    row.agg.Age0To5,
			BioAge5To17:     row.agg.BioAge5To17,
			FAFIValue:       row.value,
			FAFIRatio:       Round2(row.ratio),
			Tier:            tier,
			ImpactStatement: FAFIImpactStatement(tier),
			Recommendations: FAFIRecommendations(tier),
		})
	}
	return target, alerts
}
