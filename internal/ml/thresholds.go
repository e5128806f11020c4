package ml

import (
	"encoding/json"
	"fmt"
	"os"
)

// Thresholds is the bundle fixed at training time: the P5/P95 window of the
// target's natural-scale distribution plus the tier cut points on the
// presentation scale.
type Thresholds struct {
	RawMin float64
	RawMax float64
	Watch  float64
	Surge  float64
}

// Absent keys fall back to the same defaults the trainer would have written.
func defaultThresholds() Thresholds {
	return Thresholds{RawMin: 0.0, RawMax: 1.0, Watch: 4.0, Surge: 5.0}
}

func LoadThresholds(path string) (*Thresholds, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read threshold artifact: %w", err)
	}
	var raw struct {
		RawMin *float64 `json:"raw_min"`
		RawMax *float64 `json:"raw_max"`
		Watch  *float64 `json:"watch"`
		Surge  *float64 `json:"surge"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode threshold artifact: %w", err)
	}
	t := defaultThresholds()
	if raw.RawMin != nil {
		t.RawMin = *raw.RawMin
	}
	if raw.RawMax != nil {
		t.RawMax = *raw.RawMax
	}
	if raw.Watch != nil {
		t.Watch = *raw.Watch
	}
	if raw.Surge != nil {
		t.Surge = *raw.Surge
	}
	return &t, nil
}
