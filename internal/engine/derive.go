package engine

import "math"

// CaptureGapRatio is (enrol_total - bio_total) / enrol_total. A zero
// enrolment total substitutes 1 in the denominator, collapsing the ratio to
// -bio_total. The large-magnitude sentinel is deliberate: it keeps the row in
// the ranking instead of producing NaN or silently skipping it.
func CaptureGapRatio(enrolTotal, bioTotal int) float64 {
	denom := enrolTotal
	if denom == 0 {
		denom = 1
	}
	return float64(enrolTotal-bioTotal) / float64(denom)
}

// ImbalanceScore is |iris - finger| / (iris + finger + 1). Only defined when
// both auxiliary columns were detected; callers leave the metric absent
// otherwise.
func ImbalanceScore(iris, finger int) float64 {
	return math.Abs(float64(iris-finger)) / float64(iris+finger+1)
}

// FAFI returns the Future Authentication Failure Index value and ratio:
// value = enrol_age_0_5 - bio_age_5_17, ratio = value / max(enrol_age_0_5, 1).
func FAFI(enrolAge0To5, bioAge5To17 int) (value int, ratio float64) {
	value = enrolAge0To5 - bioAge5To17
	denom := enrolAge0To5
	if denom < 1 {
		denom = 1
	}
	return value, float64(value) / float64(denom)
}

// ToInflowScore converts a log1p-scale prediction into the [3.0, 6.0]
// presentation range: back-transform with expm1, rescale over the
// [rawMin, rawMax] window clamped to [0, 1], then map onto the range.
func ToInflowScore(sLog, rawMin, rawMax float64) float64 {
	raw := math.Expm1(sLog)
	x := (raw - rawMin) / (rawMax - rawMin + 1e-9)
	if x < 0 {
		x = 0
	}
	if x > 1 {
		x = 1
	}
	return 3.0 + 3.0*x
}

// RawToInflowScore rescales a natural-scale pressure value onto [3.0, 6.0]
// with the same window convention as ToInflowScore.
func RawToInflowScore(raw, rawMin, rawMax float64) float64 {
	x := (raw - rawMin) / (rawMax - rawMin + 1e-9)
	if x < 0 {
		x = 0
	}
	if x > 1 {
		x = 1
	}
	return 3.0 + 3.0*x
}

// StressScore relates a pincode's load to the mean pincode load of its month.
// The mean is floored at 1 so an all-zero month yields 0, not a division
// error.
func StressScore(totalLoad int, meanLoad float64) float64 {
	if meanLoad < 1 {
		meanLoad = 1
	}
	return float64(totalLoad) / meanLoad
}

// Round2 rounds to 2 decimal places. Applied only when a metric crosses the
// assembly boundary; intermediate values stay unrounded so dependent metrics
// do not compound rounding error.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Quantile returns the q-quantile of values using linear interpolation
// between order statistics, matching the convention the model trainer uses to
// derive its raw window.
func Quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := lo + 1
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
