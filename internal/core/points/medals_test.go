package points

import (
	"reflect"
	"testing"
	"time"
)

func TestTiersFor(t *testing.T) {

	cases := []struct {
		monthly int
		want    []string
	}{
		{0, nil},
		{29, nil},
		{30, []string{"bronze"}},
		{74, []string{"bronze"}},
		{75, []string{"bronze", "silver"}},
		{150, []string{"bronze", "silver", "gold"}},
		{300, []string{"bronze", "silver", "gold", "platinum"}},
		{499, []string{"bronze", "silver", "gold", "platinum"}},
		{500, []string{"bronze", "silver", "gold", "platinum", "diamond"}},
		{10000, []string{"bronze", "silver", "gold", "platinum", "diamond"}},
	}
	for _, c := range cases {
		if got := TiersFor(c.monthly); !reflect.DeepEqual(got, c.want) {
			t.Errorf("TiersFor(%d) = %v, want %v", c.monthly, got, c.want)
		}
	}

}

func TestTiersForMonotonic(t *testing.T) {

	prev := 0
	for monthly := 0; monthly <= 600; monthly++ {
		n := len(TiersFor(monthly))
		if n < prev {
			t.Fatalf("tier count decreased at %d points: %d -> %d", monthly, prev, n)
		}
		prev = n
	}

}

func TestPeriodKey(t *testing.T) {

	at := time.Date(2025, time.January, 15, 23, 30, 0, 0, time.UTC)
	if got := PeriodKey(at); got != "2025-01" {
		t.Errorf("PeriodKey = %q, want 2025-01", got)
	}

}

func TestReconcileReplacesPeriod(t *testing.T) {

	existing := map[string][]string{
		"2024-12": {"bronze", "silver"},
		"2025-01": {"bronze"},
	}

	medals := Reconcile(existing, "2025-01", 160)

	want := map[string][]string{
		"2024-12": {"bronze", "silver"},
		"2025-01": {"bronze", "silver", "gold"},
	}
	if !reflect.DeepEqual(medals, want) {
		t.Errorf("Reconcile = %v, want %v", medals, want)
	}

	// input untouched
	if !reflect.DeepEqual(existing["2025-01"], []string{"bronze"}) {
		t.Errorf("input map mutated: %v", existing)
	}

}

func TestReconcileRemovesEmptyPeriod(t *testing.T) {

	existing := map[string][]string{"2025-01": {"bronze"}}

	medals := Reconcile(existing, "2025-01", 12)

	if _, ok := medals["2025-01"]; ok {
		t.Errorf("period key should be removed when no tiers are earned: %v", medals)
	}

}
