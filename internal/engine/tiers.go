package engine

const (
	TierLow    = "LOW"
	TierMedium = "MEDIUM"
	TierHigh   = "HIGH"

	LevelNormal = "NORMAL"
	LevelWatch  = "WATCH"
	LevelSurge  = "SURGE"
)

// Tier breakpoints are fixed business constants, not configuration. Boundary
// values land in MEDIUM: a capture gap of exactly 0.30 or 0.60 is MEDIUM.

func TierCaptureGap(ratio float64) string {
	if ratio < 0.30 {
		return TierLow
	}
	if ratio <= 0.60 {
		return TierMedium
	}
	return TierHigh
}

func TierImbalance(score float64) string {
	if score < 0.20 {
		return TierLow
	}
	if score <= 0.40 {
		return TierMedium
	}
	return TierHigh
}

func TierFAFI(ratio float64) string {
	if ratio < 0.20 {
		return TierLow
	}
	if ratio <= 0.45 {
		return TierMedium
	}
	return TierHigh
}

func TierStress(score float64) string {
	if score < 1.0 {
		return TierLow
	}
	if score <= 1.5 {
		return TierMedium
	}
	return TierHigh
}

// InflowTier maps an inflow score onto NORMAL/WATCH/SURGE using the watch and
// surge cut points. Both the rule-based and the ML migration scorers share
// this mapping; surge is inclusive, watch is inclusive below surge.
func InflowTier(score, watch, surge float64) string {
	if score >= surge {
		return LevelSurge
	}
	if score >= watch {
		return LevelWatch
	}
	return LevelNormal
}

// CaptureGapTags derives the alert tags from the capture-gap tier and the
// optional imbalance tier. The imbalance wording is deliberately equipment and
// operations oriented, never fraud.
func CaptureGapTags(captureGapTier string, imbalanceTier *string) []string {
	tags := []string{}
	switch captureGapTier {
	case TierHigh:
		tags = append(tags, "High capture gap")
	case TierMedium:
		tags = append(tags, "Moderate capture gap")
	}
	if imbalanceTier != nil && (*imbalanceTier == TierMedium || *imbalanceTier == TierHigh) {
		tags = append(tags, "Equipment / Operational anomaly")
	}
	return tags
}

func CaptureGapRecommendations(captureGapTier string, imbalanceTier *string) []string {
	var recs []string
	switch captureGapTier {
	case TierHigh:
		recs = append(recs,
			"Prioritize biometric capture drives in this pincode",
			"Review enrolment vs biometric station coverage",
		)
	case TierMedium:
		recs = append(recs,
			"Plan additional biometric capture sessions",
			"Nudge residents to update biometrics during routine visits",
		)
	default:
		recs = append(recs, "Maintain current biometric capture coverage")
	}
	if imbalanceTier != nil && (*imbalanceTier == TierMedium || *imbalanceTier == TierHigh) {
		recs = append(recs,
			"Check biometric equipment health (iris vs fingerprint)",
			"Audit operator workflows for iris and fingerprint capture balance",
		)
	}
	return recs
}

func FAFIImpactStatement(tier string) string {
	switch tier {
	case TierHigh:
		return "Large cohort of children may face future authentication failures if biometrics are not updated soon."
	case TierMedium:
		return "Noticeable backlog of child biometric updates; risk will grow without targeted interventions."
	default:
		return "Child biometric updates are broadly aligned with enrolments; maintain routine coverage."
	}
}

func FAFIRecommendations(tier string) []string {
	switch tier {
	case TierHigh:
		return []string{
			"Schedule school-based biometric update camps",
			"Deploy mobile biometric vans",
			"Set 30-day district update target",
		}
	case TierMedium:
		return []string{
			"Run biometric update drives in schools",
			"Increase awareness in parent communities",
		}
	default:
		return []string{"Continue routine biometric camps"}
	}
}

func MigrationRecommendations(level string) []string {
	switch level {
	case LevelSurge:
		return []string{
			"Open 2 temporary enrollment/update camps",
			"Deploy mobile Aadhaar van",
			"Increase ration shop capacity",
			"Set up drinking water + shade",
		}
	case LevelWatch:
		return []string{
			"Increase staff shifts for 14 days",
			"Add multilingual helpdesk",
		}
	default:
		return []string{"Monitor trends"}
	}
}

func PredictedPressure(level string) []string {
	switch level {
	case LevelSurge:
		return []string{"PDS", "Public Health", "Housing", "Aadhaar Centers"}
	case LevelWatch:
		return []string{"Aadhaar Centers", "PDS"}
	default:
		return []string{}
	}
}

func StressRecommendations(tier string) []string {
	switch tier {
	case TierHigh:
		return []string{
			"Add temporary Aadhaar camp (school/community hall)",
			"Deploy 2-3 extra kits",
			"Add queue tokens + helpdesk",
		}
	case TierMedium:
		return []string{
			"Extend operating hours on peak days",
			"Add one extra enrolment kit",
		}
	default:
		return []string{"Maintain current facility capacity"}
	}
}
