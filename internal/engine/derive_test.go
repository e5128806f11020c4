package engine

import (
	"math"
	"testing"
)

func TestCaptureGapRatio(t *testing.T) {
	if got := CaptureGapRatio(100, 30); math.Abs(got-0.70) > 1e-9 {
		t.Fatalf("expected 0.70, got %v", got)
	}
	// equivalent form 1 - bio/enrol when enrol != 0
	if got, want := CaptureGapRatio(80, 20), 1-20.0/80.0; math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCaptureGapRatioZeroEnrolSentinel(t *testing.T) {
	got := CaptureGapRatio(0, 5)
	if got != -5.0 {
		t.Fatalf("expected sentinel -5.0, got %v", got)
	}
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("sentinel must be finite, got %v", got)
	}
}

func TestImbalanceScore(t *testing.T) {
	if got, want := ImbalanceScore(30, 10), 20.0/41.0; math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := ImbalanceScore(0, 0); got != 0 {
		t.Fatalf("expected 0 for no updates, got %v", got)
	}
}

func TestFAFI(t *testing.T) {
	value, ratio := FAFI(1200, 200)
	if value != 1000 {
		t.Fatalf("expected fafi_value 1000, got %d", value)
	}
	if Round2(ratio) != 0.83 {
		t.Fatalf("expected fafi_ratio 0.83, got %v", Round2(ratio))
	}
	// zero-guard: denominator substitutes 1
	value, ratio = FAFI(0, 5)
	if value != -5 || ratio != -5.0 {
		t.Fatalf("expected (-5, -5.0), got (%d, %v)", value, ratio)
	}
}

func TestToInflowScore(t *testing.T) {
	// expm1(pred) = 5 with window [0, 10] lands mid-window: 3 + 3*0.5 = 4.5
	pred := math.Log1p(5)
	got := ToInflowScore(pred, 0, 10)
	if math.Abs(got-4.5) > 1e-6 {
		t.Fatalf("expected 4.5, got %v", got)
	}
}

func TestToInflowScoreClamps(t *testing.T) {
	if got := ToInflowScore(math.Log1p(1000), 0, 10); got != 6.0 {
		t.Fatalf("expected clamp to 6.0, got %v", got)
	}
	if got := ToInflowScore(math.Log1p(0), 5, 10); got != 3.0 {
		t.Fatalf("expected clamp to 3.0, got %v", got)
	}
}

func TestStressScore(t *testing.T) {
	if got := StressScore(150, 100); math.Abs(got-1.5) > 1e-9 {
		t.Fatalf("expected 1.5, got %v", got)
	}
	// mean floored at 1
	if got := StressScore(0, 0); got != 0 {
		t.Fatalf("expected 0 for zero load, got %v", got)
	}
}

func TestRound2(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0.834999, 0.83},
		{0.8351, 0.84},
		{-5.0, -5.0},
		{0.7049, 0.70},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5}
	if got := Quantile(sorted, 0); got != 1 {
		t.Fatalf("q0 = %v", got)
	}
	if got := Quantile(sorted, 1); got != 5 {
		t.Fatalf("q1 = %v", got)
	}
	if got := Quantile(sorted, 0.5); got != 3 {
		t.Fatalf("q0.5 = %v", got)
	}
	if got := Quantile(sorted, 0.25); got != 2 {
		t.Fatalf("q0.25 = %v", got)
	}
	if got := Quantile(nil, 0.5); got != 0 {
		t.Fatalf("empty input should yield 0, got %v", got)
	}
}
