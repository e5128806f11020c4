package engine

import (
	"sort"

	"enrolwatch/internal/model"
)

// Aggregate is one grouped row: a geographic key tuple within a single month
// with every measure column summed. Pincode is empty for district-level
// groupings. Iris/Finger sums are only meaningful when HasAux is set.
type Aggregate struct {
	State    string
	District string
	Pincode  string
	Month    string

	Age0To5      int
	Age5To17     int
	Age18Plus    int
	DemoAge5To17 int
	DemoAge17    int
	BioAge5To17  int
	BioAge17     int

	Iris   int
	Finger int
	HasAux bool
}

func (a *Aggregate) EnrolTotal() int {
	return a.Age0To5 + a.Age5To17 + a.Age18Plus
}

func (a *Aggregate) BioTotal() int {
	return a.BioAge5To17 + a.BioAge17
}

func (a *Aggregate) TotalLoad() int {
	return a.EnrolTotal() + a.DemoAge5To17 + a.DemoAge17 + a.BioTotal()
}

// AggregateDistrictMonths sums every (state, district, month) bucket across
// the whole dataset. The ML feature pipeline uses this to rebuild the same
// district-month aggregation the rule-based migration path runs on.
func AggregateDistrictMonths(records []model.Record) []Aggregate {
	return aggregateBy(records, "", false, "", "")
}

type groupKey struct {
	state    string
	district string
	pincode  string
	month    string
}

// aggregateBy groups records by (state, district[, pincode], month) and sums
// every measure column. month filters when non-empty; an empty month keeps all
// buckets, which the migration scorers need for dataset-wide windows and
// rolling features. Sums are missing-column tolerant: an absent auxiliary
// column simply never contributes, it is not an error.
func aggregateBy(records []model.Record, month string, byPincode bool, irisCol, fingerCol string) []Aggregate {
	groups := make(map[groupKey]*Aggregate)
	hasAux := irisCol != "" && fingerCol != ""
	for _, r := range records {
		if month != "" && r.Month != month {
			continue
		}
		key := groupKey{state: r.State, district: r.District, month: r.Month}
		if byPincode {
			key.pincode = r.Pincode
		}
		agg, ok := groups[key]
		if !ok {
			agg = &Aggregate{
				State:    r.State,
				District: r.District,
				Pincode:  key.pincode,
				Month:    r.Month,
				HasAux:   hasAux,
			}
			groups[key] = agg
		}
		agg.Age0To5 += r.Age0To5
		agg.Age5To17 += r.Age5To17
		agg.Age18Plus += r.Age18Plus
		agg.DemoAge5To17 += r.DemoAge5To17
		agg.DemoAge17 += r.DemoAge17
		agg.BioAge5To17 += r.BioAge5To17
		agg.BioAge17 += r.BioAge17
		if hasAux {
			agg.Iris += r.Extra[irisCol]
			agg.Finger += r.Extra[fingerCol]
		}
	}
	out := make([]Aggregate, 0, len(groups))
	for _, agg := range groups {
		out = append(out, *agg)
	}
	// map iteration order is random; fix a deterministic base order before
	// metric sorting so ties rank stably across runs
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		if out[i].State != out[j].State {
			return out[i].State < out[j].State
		}
		if out[i].District != out[j].District {
			return out[i].District < out[j].District
		}
		return out[i].Pincode < out[j].Pincode
	})
	return out
}

// resolveMonth picks the target month: the requested one when present in the
// dataset, the latest otherwise. ok is false when the requested month is
// absent or the dataset holds no months at all; callers translate that into an
// empty alert list, never an error.
func resolveMonth(months []string, requested string) (string, bool) {
	if len(months) == 0 {
		return "", false
	}
	if requested == "" {
		return months[len(months)-1], true
	}
	for _, m := range months {
		if m == requested {
			return m, true
		}
	}
	return "", false
}
