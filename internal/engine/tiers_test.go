package engine

import "testing"

func TestTierCaptureGapBoundaries(t *testing.T) {
	cases := []struct {
		ratio float64
		want  string
	}{
		{0.0, TierLow},
		{0.29, TierLow},
		{0.30, TierMedium}, // boundary lands in MEDIUM
		{0.45, TierMedium},
		{0.60, TierMedium}, // boundary lands in MEDIUM
		{0.61, TierHigh},
		{0.70, TierHigh},
		{-5.0, TierLow}, // sentinel ranks low
	}
	for _, tc := range cases {
		if got := TierCaptureGap(tc.ratio); got != tc.want {
			t.Errorf("TierCaptureGap(%v) = %s, want %s", tc.ratio, got, tc.want)
		}
	}
}

func TestTierImbalanceBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0.19, TierLow},
		{0.20, TierMedium},
		{0.40, TierMedium},
		{0.41, TierHigh},
	}
	for _, tc := range cases {
		if got := TierImbalance(tc.score); got != tc.want {
			t.Errorf("TierImbalance(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestTierFAFIBoundaries(t *testing.T) {
	cases := []struct {
		ratio float64
		want  string
	}{
		{0.19, TierLow},
		{0.20, TierMedium},
		{0.45, TierMedium},
		{0.46, TierHigh},
		{0.83, TierHigh},
	}
	for _, tc := range cases {
		if got := TierFAFI(tc.ratio); got != tc.want {
			t.Errorf("TierFAFI(%v) = %s, want %s", tc.ratio, got, tc.want)
		}
	}
}

func TestInflowTierBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{3.9, LevelNormal},
		{4.0, LevelWatch}, // watch cut is inclusive
		{4.5, LevelWatch},
		{4.99, LevelWatch},
		{5.0, LevelSurge}, // surge cut is inclusive
		{6.0, LevelSurge},
	}
	for _, tc := range cases {
		if got := InflowTier(tc.score, 4.0, 5.0); got != tc.want {
			t.Errorf("InflowTier(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestCaptureGapTags(t *testing.T) {
	medium := TierMedium
	low := TierLow

	tags := CaptureGapTags(TierHigh, &medium)
	if len(tags) != 2 || tags[0] != "High capture gap" || tags[1] != "Equipment / Operational anomaly" {
		t.Fatalf("unexpected tags: %v", tags)
	}
	tags = CaptureGapTags(TierMedium, &low)
	if len(tags) != 1 || tags[0] != "Moderate capture gap" {
		t.Fatalf("unexpected tags: %v", tags)
	}
	tags = CaptureGapTags(TierLow, nil)
	if len(tags) != 0 {
		t.Fatalf("expected no tags for low gap without imbalance, got %v", tags)
	}
}

func TestCaptureGapRecommendations(t *testing.T) {
	high := TierHigh
	recs := CaptureGapRecommendations(TierHigh, &high)
	if recs[0] != "Prioritize biometric capture drives in this pincode" {
		t.Fatalf("unexpected first recommendation: %v", recs)
	}
	if recs[len(recs)-1] != "Audit operator workflows for iris and fingerprint capture balance" {
		t.Fatalf("expected equipment recommendations appended: %v", recs)
	}
	recs = CaptureGapRecommendations(TierLow, nil)
	if len(recs) != 1 || recs[0] != "Maintain current biometric capture coverage" {
		t.Fatalf("unexpected low-tier recommendations: %v", recs)
	}
}

func TestFAFIImpactStatements(t *testing.T) {
	if got := FAFIImpactStatement(TierHigh); got != "Large cohort of children may face future authentication failures if biometrics are not updated soon." {
		t.Fatalf("unexpected high impact statement: %q", got)
	}
	if FAFIImpactStatement(TierMedium) == FAFIImpactStatement(TierLow) {
		t.Fatalf("medium and low statements must differ")
	}
}

func TestMigrationRecommendationLists(t *testing.T) {
	surge := MigrationRecommendations(LevelSurge)
	if len(surge) != 4 || surge[0] != "Open 2 temporary enrollment/update camps" {
		t.Fatalf("unexpected surge recommendations: %v", surge)
	}
	if got := MigrationRecommendations(LevelNormal); len(got) != 1 || got[0] != "Monitor trends" {
		t.Fatalf("unexpected normal recommendations: %v", got)
	}
	if got := PredictedPressure(LevelSurge); len(got) != 4 || got[0] != "PDS" {
		t.Fatalf("unexpected surge pressure list: %v", got)
	}
	if got := PredictedPressure(LevelNormal); len(got) != 0 {
		t.Fatalf("normal level should predict no pressure, got %v", got)
	}
}

func TestTierStressBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0.99, TierLow},
		{1.0, TierMedium},
		{1.5, TierMedium},
		{1.51, TierHigh},
		{1.76, TierHigh},
	}
	for _, tc := range cases {
		if got := TierStress(tc.score); got != tc.want {
			t.Errorf("TierStress(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}
