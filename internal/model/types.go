package model

import "time"

// Record is one raw dataset row: a (date, state, district, pincode) cell with
// the fixed enrollment/update measure columns. Extra carries auxiliary numeric
// columns picked up at load time (iris/fingerprint update counts and the like).
type Record struct {
	Date     time.Time `json:"date"`
	Month    string    `json:"month"`
	State    string    `json:"state"`
	District string    `json:"district"`
	Pincode  string    `json:"pincode"`

	Age0To5      int `json:"age_0_5"`
	Age5To17     int `json:"age_5_17"`
	Age18Plus    int `json:"age_18_greater"`
	DemoAge5To17 int `json:"demo_age_5_17"`
	DemoAge17    int `json:"demo_age_17_"`
	BioAge5To17  int `json:"bio_age_5_17"`
	BioAge17     int `json:"bio_age_17_"`

	Extra map[string]int `json:"extra,omitempty"`
}

type BiometricIntegrityAlert struct {
	State    string `json:"state"`
	District string `json:"district"`
	Pincode  string `json:"pincode"`
	Month    string `json:"month"`

	EnrolTotal int `json:"enrol_total"`
	BioTotal   int `json:"bio_total"`

	CaptureGapRatio float64 `json:"capture_gap_ratio"`
	CaptureGapTier  string  `json:"capture_gap_tier"`

	ImbalanceScore *float64 `json:"imbalance_score,omitempty"`
	ImbalanceTier  *string  `json:"imbalance_tier,omitempty"`

	Tags            []string `json:"tags"`
	Recommendations []string `json:"recommendations"`
}

type LostGenerationAlert struct {
	State    string `json:"state"`
	District string `json:"district"`
	Month    string `json:"month"`

	EnrolAge0To5 int `json:"enrol_age_0_5"`
	BioAge5To17  int `json:"bio_age_5_17"`

	FAFIValue int     `json:"fafi_value"`
	FAFIRatio float64 `json:"fafi_ratio"`
	Tier      string  `json:"tier"`

	ImpactStatement string   `json:"impact_statement"`
	Recommendations []string `json:"recommendations"`
}

type MigrationAlert struct {
	State    string `json:"state"`
	District string `json:"district"`
	Month    string `json:"month"`

	InflowScore float64 `json:"inflow_score"`
	Level       string  `json:"level"`

	PredictedPressure []string `json:"predicted_pressure"`
	Recommendations   []string `json:"recommendations"`
}

type InfrastructureAlert struct {
	State    string `json:"state"`
	District string `json:"district"`
	Pincode  string `json:"pincode"`
	Month    string `json:"month"`

	TotalLoad   int     `json:"total_load"`
	StressScore float64 `json:"stress_score"`
	Tier        string  `json:"tier"`

	Recommendations []string `json:"recommendations"`
}

type MigrationMLAlert struct {
	State    string `json:"state"`
	District string `json:"district"`
	Month    string `json:"month"`

	MLInflowScore float64 `json:"ml_inflow_score"`
	Tier          string  `json:"tier"`

	Recommendations []string `json:"recommendations"`
}
