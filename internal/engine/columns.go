package engine

import "strings"

// DetectAuxColumns scans auxiliary column names for an iris-update and a
// fingerprint-update column. Matching is case-insensitive substring: "iris"
// plus "update" for the first family, "finger" or "fp" plus "update" for the
// second. The first match of each family in header order wins. Both families
// must match or neither column is reported, in which case imbalance metrics
// stay unavailable downstream.
func DetectAuxColumns(columns []string) (iris, finger string, ok bool) {
	for _, c := range columns {
		key := strings.ToLower(c)
		if !strings.Contains(key, "update") {
			continue
		}
		if iris == "" && strings.Contains(key, "iris") {
			iris = c
		}
		if finger == "" && (strings.Contains(key, "finger") || strings.Contains(key, "fp")) {
			finger = c
		}
	}
	if iris == "" || finger == "" {
		return "", "", false
	}
	return iris, finger, true
}
