package points

import (
	"time"
)

// MedalTier gates a medal rank behind a monthly point threshold. Tiers are
// cumulative within a period: a user holds every tier whose threshold is met,
// not just the highest.
type MedalTier struct {
	Name      string
	Threshold int
}

var MedalTiers = []MedalTier{
	{"bronze", 30},
	{"silver", 75},
	{"gold", 150},
	{"platinum", 300},
	{"diamond", 500},
}

// PeriodKey buckets medals by calendar month, e.g. "2025-01".
func PeriodKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// TiersFor returns the tiers earned at a monthly point total, in ascending
// threshold order.
func TiersFor(monthlyPoints int) []string {

	var tiers []string
	for _, tier := range MedalTiers {
		if monthlyPoints >= tier.Threshold {
			tiers = append(tiers, tier.Name)
		}
	}
	return tiers

}

// Reconcile rewrites the medal set for one period so it is exactly the set
// earned at monthlyPoints. An empty result removes the period key; no
// empty-set entries persist. Other periods are untouched. The input map is
// never mutated.
func Reconcile(existing map[string][]string, period string, monthlyPoints int) map[string][]string {

	medals := make(map[string][]string, len(existing)+1)
	for key, tiers := range existing {
		if key == period {
			continue
		}
		medals[key] = append([]string(nil), tiers...)
	}

	if tiers := TiersFor(monthlyPoints); len(tiers) > 0 {
		medals[period] = tiers
	}

	return medals

}
