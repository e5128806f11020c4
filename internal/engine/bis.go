package engine

import (
	"sort"

	"enrolwatch/internal/dataset"
	"enrolwatch/internal/model"
)

// BiometricIntegrityAlerts ranks pincode-months by capture gap ratio. The
// returned month is the resolved target month; it is empty when the requested
// month is absent, which callers surface as not-found.
func BiometricIntegrityAlerts(ds *dataset.Dataset, month string, limit int) (string, []model.BiometricIntegrityAlert) {
	if ds.Empty() {
		return "", nil
	}
	target, ok := resolveMonth(ds.Months(), month)
	if !ok {
		return "", nil
	}
	irisCol, fingerCol, _ := DetectAuxColumns(ds.ExtraColumns)
	groups := aggregateBy(ds.Records, target, true, irisCol, fingerCol)
	if len(groups) == 0 {
		return target, nil
	}

	type scored struct {
		agg       Aggregate
		ratio     float64
		imbalance *float64
	}
	rows := make([]scored, 0, len(groups))
	for _, agg := range groups {
		row := scored{agg: agg, ratio: CaptureGapRatio(agg.EnrolTotal(), agg.BioTotal())}
		if agg.HasAux {
			s := ImbalanceScore(agg.Iris, agg.Finger)
			row.imbalance = &s
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ratio > rows[j].ratio })
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	alerts := make([]model.BiometricIntegrityAlert, 0, len(rows))
	for _, row := range rows {
		gapTier := TierCaptureGap(row.ratio)
		var imbScore *float64
		var imbTier *string
		if row.imbalance != nil {
			rounded := Round2(*row.imbalance)
			tier := TierImbalance(*row.imbalance)
			imbScore = &rounded
			imbTier = &tier
		}
		alerts = append(alerts, model.BiometricIntegrityAlert{
			State:           row.agg.State,
			District:        row.agg.District,
			Pincode:         row.agg.Pincode,
			Month:           row.agg.Month,
			EnrolTotal:      row.agg.EnrolTotal(),
			BioTotal:        row.agg.BioTotal(),
			CaptureGapRatio: Round2(row.ratio),
			CaptureGapTier:  gapTier,
			ImbalanceScore:  imbScore,
			ImbalanceTier:   imbTier,
			Tags:            CaptureGapTags(gapTier, imbTier),
			Recommendations: CaptureGapRecommendations(gapTier, imbTier),
		})
	}
	return target, alerts
}
