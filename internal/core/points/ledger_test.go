package points

import (
	"context"
	"testing"
	"time"
	"untrashapi/internal/store/memstore"
	"untrashapi/pkg/schemas"

	"go.uber.org/zap"
)

func testLedger(t *testing.T) (*Ledger, *memstore.Store) {

	t.Helper()
	st := memstore.New()
	ledger := NewLedger(st, st, zap.NewNop())
	ledger.now = func() time.Time {
		return time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)
	}
	return ledger, st

}

func seedUser(t *testing.T, st *memstore.Store, userId string, groups ...string) {

	t.Helper()
	err := st.InsertUser(context.Background(), &schemas.User{
		UserId:       userId,
		Email:        userId + "@example.com",
		Name:         userId,
		Medals:       map[string][]string{},
		JoinedGroups: groups,
	})
	if err != nil {
		t.Fatal(err)
	}

}

func TestApplyDeltaFloorsAtZero(t *testing.T) {

	ledger, st := testLedger(t)
	ctx := context.Background()
	seedUser(t, st, "user_a")

	if err := ledger.ApplyDelta(ctx, "user_a", 5); err != nil {
		t.Fatal(err)
	}
	if err := ledger.ApplyDelta(ctx, "user_a", -25); err != nil {
		t.Fatal(err)
	}

	user, err := st.GetUser(ctx, "user_a")
	if err != nil {
		t.Fatal(err)
	}
	if user.TotalPoints != 0 || user.MonthlyPoints != 0 || user.WeeklyPoints != 0 {
		t.Errorf("counters not floored at zero: total=%d monthly=%d weekly=%d",
			user.TotalPoints, user.MonthlyPoints, user.WeeklyPoints)
	}

}

func TestApplyDeltaFloorsCountersIndependently(t *testing.T) {

	ledger, st := testLedger(t)
	ctx := context.Background()
	seedUser(t, st, "user_a")

	// weekly has been reset, total and monthly have history
	if err := st.OverrideUserPoints(ctx, "user_a", 40, 40, 3, map[string][]string{}); err != nil {
		t.Fatal(err)
	}
	if err := ledger.ApplyDelta(ctx, "user_a", -5); err != nil {
		t.Fatal(err)
	}

	user, err := st.GetUser(ctx, "user_a")
	if err != nil {
		t.Fatal(err)
	}
	if user.TotalPoints != 35 || user.MonthlyPoints != 35 {
		t.Errorf("total/monthly = %d/%d, want 35/35", user.TotalPoints, user.MonthlyPoints)
	}
	if user.WeeklyPoints != 0 {
		t.Errorf("weekly = %d, want 0 (floored)", user.WeeklyPoints)
	}

}

func TestApplyDeltaAwardsMedalAtThreshold(t *testing.T) {

	ledger, st := testLedger(t)
	ctx := context.Background()
	seedUser(t, st, "user_a")

	if err := st.OverrideUserPoints(ctx, "user_a", 29, 29, 29, map[string][]string{}); err != nil {
		t.Fatal(err)
	}
	if err := ledger.ApplyDelta(ctx, "user_a", 1); err != nil {
		t.Fatal(err)
	}

	user, err := st.GetUser(ctx, "user_a")
	if err != nil {
		t.Fatal(err)
	}
	tiers := user.Medals["2025-01"]
	if len(tiers) != 1 || tiers[0] != "bronze" {
		t.Errorf("medals = %v, want bronze for 2025-01", user.Medals)
	}

}

func TestApplyDeltaRevokesMedalOnDrop(t *testing.T) {

	ledger, st := testLedger(t)
	ctx := context.Background()
	seedUser(t, st, "user_a")

	if err := ledger.ApplyDelta(ctx, "user_a", 30); err != nil {
		t.Fatal(err)
	}
	if err := ledger.ApplyDelta(ctx, "user_a", -10); err != nil {
		t.Fatal(err)
	}

	user, err := st.GetUser(ctx, "user_a")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := user.Medals["2025-01"]; ok {
		t.Errorf("medals should be revoked when monthly drops below threshold: %v", user.Medals)
	}

}

func TestApplyDeltaCascadesToGroups(t *testing.T) {

	ledger, st := testLedger(t)
	ctx := context.Background()

	if err := st.InsertGroup(ctx, &schemas.Group{GroupId: "group_a", Name: "A"}); err != nil {
		t.Fatal(err)
	}
	if err := st.InsertGroup(ctx, &schemas.Group{GroupId: "group_b", Name: "B"}); err != nil {
		t.Fatal(err)
	}
	seedUser(t, st, "user_a", "group_a", "group_b")

	if err := ledger.ApplyDelta(ctx, "user_a", 25); err != nil {
		t.Fatal(err)
	}

	for _, groupId := range []string{"group_a", "group_b"} {
		group, err := st.GetGroup(ctx, groupId)
		if err != nil {
			t.Fatal(err)
		}
		if group.TotalPoints != 25 || group.WeeklyPoints != 25 {
			t.Errorf("%s points = %d/%d, want 25/25", groupId, group.TotalPoints, group.WeeklyPoints)
		}
	}

}

func TestApplyDeltaMissingUserIsNoop(t *testing.T) {

	ledger, _ := testLedger(t)

	if err := ledger.ApplyDelta(context.Background(), "user_missing", 25); err != nil {
		t.Errorf("missing user should be a no-op, got error: %v", err)
	}

}

func TestOverrideFloorsAndClearsMedals(t *testing.T) {

	ledger, st := testLedger(t)
	ctx := context.Background()
	seedUser(t, st, "user_a")

	if err := ledger.ApplyDelta(ctx, "user_a", 100); err != nil {
		t.Fatal(err)
	}

	user, err := ledger.Override(ctx, "user_a", -5, 0, 0, true)
	if err != nil {
		t.Fatal(err)
	}
	if user.TotalPoints != 0 {
		t.Errorf("total = %d, want 0 (floored)", user.TotalPoints)
	}
	if len(user.Medals) != 0 {
		t.Errorf("medals = %v, want cleared", user.Medals)
	}

	stored, err := st.GetUser(ctx, "user_a")
	if err != nil {
		t.Fatal(err)
	}
	if stored.TotalPoints != 0 || stored.MonthlyPoints != 0 || stored.WeeklyPoints != 0 {
		t.Errorf("stored counters = %d/%d/%d, want zeros",
			stored.TotalPoints, stored.MonthlyPoints, stored.WeeklyPoints)
	}

}

func TestOverrideRederivesMedals(t *testing.T) {

	ledger, st := testLedger(t)
	ctx := context.Background()
	seedUser(t, st, "user_a")

	user, err := ledger.Override(ctx, "user_a", 200, 80, 10, false)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"bronze", "silver"}
	got := user.Medals["2025-01"]
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("medals = %v, want %v for 2025-01", user.Medals, want)
	}

	if _, err := st.GetUser(ctx, "user_a"); err != nil {
		t.Fatal(err)
	}

}
