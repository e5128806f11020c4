package engine

import "testing"

func TestDetectAuxColumns(t *testing.T) {
	cases := []struct {
		name       string
		columns    []string
		wantIris   string
		wantFinger string
		wantOK     bool
	}{
		{
			name:       "both families present",
			columns:    []string{"iris_update_count", "fp_update_count"},
			wantIris:   "iris_update_count",
			wantFinger: "fp_update_count",
			wantOK:     true,
		},
		{
			name:       "case insensitive",
			columns:    []string{"Iris_Update", "Finger_Update"},
			wantIris:   "Iris_Update",
			wantFinger: "Finger_Update",
			wantOK:     true,
		},
		{
			name:       "first match per family wins",
			columns:    []string{"iris_update_a", "iris_update_b", "fp_update_a", "finger_update_b"},
			wantIris:   "iris_update_a",
			wantFinger: "fp_update_a",
			wantOK:     true,
		},
		{
			name:    "iris only",
			columns: []string{"iris_update_count", "rejected_count"},
			wantOK:  false,
		},
		{
			name:    "finger only",
			columns: []string{"finger_update_count"},
			wantOK:  false,
		},
		{
			name:    "update token required",
			columns: []string{"iris_count", "fp_count"},
			wantOK:  false,
		},
		{
			name:    "no columns",
			columns: nil,
			wantOK:  false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			iris, finger, ok := DetectAuxColumns(tc.columns)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if !ok {
				return
			}
			if iris != tc.wantIris || finger != tc.wantFinger {
				t.Fatalf("got (%q, %q), want (%q, %q)", iris, finger, tc.wantIris, tc.wantFinger)
			}
		})
	}
}
