package reports

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
	"untrashapi/internal/core"
	"untrashapi/internal/core/points"
	"untrashapi/internal/store/memstore"
	"untrashapi/pkg/config"
	"untrashapi/pkg/schemas"

	"go.uber.org/zap"
)

type stubOracle struct {
	visible bool
	err     error
	calls   int
}

func (o *stubOracle) TrashVisible(ctx context.Context, imageUrl string) (bool, error) {
	o.calls++
	return o.visible, o.err
}

func testService(t *testing.T, oracle *stubOracle) (*Service, *memstore.Store) {

	t.Helper()
	st := memstore.New()
	ledger := points.NewLedger(st, st, zap.NewNop())
	svc := NewService(st, ledger, oracle, zap.NewNop())
	svc.now = func() time.Time {
		return time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)
	}
	n := 0
	svc.newId = func() string {
		n++
		return fmt.Sprintf("trash_%06d", n)
	}
	return svc, st

}

func seedUser(t *testing.T, st *memstore.Store, userId string) {

	t.Helper()
	err := st.InsertUser(context.Background(), &schemas.User{
		UserId: userId,
		Email:  userId + "@mail.org",
		Name:   userId,
		Medals: map[string][]string{},
	})
	if err != nil {
		t.Fatal(err)
	}

}

func userPoints(t *testing.T, st *memstore.Store, userId string) int {

	t.Helper()
	user, err := st.GetUser(context.Background(), userId)
	if err != nil {
		t.Fatal(err)
	}
	return user.TotalPoints

}

func TestReportPaysFlatReward(t *testing.T) {

	svc, st := testService(t, &stubOracle{visible: true})
	ctx := context.Background()
	seedUser(t, st, "user_r")

	report, err := svc.Report(ctx, "user_r", schemas.Location{Lat: 52.52, Lng: 13.405}, "https://cdn.untrash.app/img_1", "")
	if err != nil {
		t.Fatal(err)
	}
	if report.Status != schemas.StatusReported {
		t.Errorf("status = %q, want reported", report.Status)
	}
	if !report.AiVerified {
		t.Errorf("ai_verified should reflect the oracle outcome")
	}
	if got := userPoints(t, st, "user_r"); got != config.REPORT_REWARD {
		t.Errorf("reporter points = %d, want %d", got, config.REPORT_REWARD)
	}

}

func TestReportOracleErrorDoesNotBlock(t *testing.T) {

	svc, st := testService(t, &stubOracle{err: errors.New("oracle down")})
	ctx := context.Background()
	seedUser(t, st, "user_r")

	report, err := svc.Report(ctx, "user_r", schemas.Location{Lat: 1, Lng: 2}, "https://cdn.untrash.app/img_1", "")
	if err != nil {
		t.Fatal(err)
	}
	if report.AiVerified {
		t.Errorf("oracle failure must leave the report unverified")
	}

}

func TestCollectVerifiedPendingPoints(t *testing.T) {

	// trash gone from the proof photo: oracle reports not visible
	oracle := &stubOracle{visible: false}
	svc, st := testService(t, oracle)
	ctx := context.Background()
	seedUser(t, st, "user_r")
	seedUser(t, st, "user_c")

	report, err := svc.Report(ctx, "user_r", schemas.Location{Lat: 1, Lng: 2}, "https://cdn.untrash.app/img_1", "")
	if err != nil {
		t.Fatal(err)
	}

	collected, err := svc.Collect(ctx, report.ReportId, "user_c", "https://cdn.untrash.app/img_2")
	if err != nil {
		t.Fatal(err)
	}
	if !collected.AiVerified {
		t.Errorf("collection should be verified when trash is gone")
	}
	if collected.PointsAwarded != config.COLLECT_REWARD_VERIFIED {
		t.Errorf("pending points = %d, want %d", collected.PointsAwarded, config.COLLECT_REWARD_VERIFIED)
	}
	if got := userPoints(t, st, "user_c"); got != 0 {
		t.Errorf("collector paid %d before approval, want 0", got)
	}

}

func TestCollectOracleErrorLowersTier(t *testing.T) {

	svc, st := testService(t, &stubOracle{err: errors.New("timeout")})
	ctx := context.Background()
	seedUser(t, st, "user_r")
	seedUser(t, st, "user_c")

	report, err := svc.Report(ctx, "user_r", schemas.Location{Lat: 1, Lng: 2}, "https://cdn.untrash.app/img_1", "")
	if err != nil {
		t.Fatal(err)
	}

	collected, err := svc.Collect(ctx, report.ReportId, "user_c", "https://cdn.untrash.app/img_2")
	if err != nil {
		t.Fatal(err)
	}
	if collected.AiVerified {
		t.Errorf("oracle failure must not verify the collection")
	}
	if collected.PointsAwarded != config.COLLECT_REWARD_UNVERIFIED {
		t.Errorf("pending points = %d, want %d", collected.PointsAwarded, config.COLLECT_REWARD_UNVERIFIED)
	}

}

func TestCollectTwiceFails(t *testing.T) {

	svc, st := testService(t, &stubOracle{})
	ctx := context.Background()
	seedUser(t, st, "user_r")
	seedUser(t, st, "user_c")

	report, err := svc.Report(ctx, "user_r", schemas.Location{Lat: 1, Lng: 2}, "https://cdn.untrash.app/img_1", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Collect(ctx, report.ReportId, "user_c", "https://cdn.untrash.app/img_2"); err != nil {
		t.Fatal(err)
	}

	_, err = svc.Collect(ctx, report.ReportId, "user_c", "https://cdn.untrash.app/img_3")
	if !errors.Is(err, core.ErrAlreadyCollected) {
		t.Errorf("err = %v, want ErrAlreadyCollected", err)
	}

}

func TestApprovePaysOnce(t *testing.T) {

	svc, st := testService(t, &stubOracle{})
	ctx := context.Background()
	seedUser(t, st, "user_r")
	seedUser(t, st, "user_c")

	report, err := svc.Report(ctx, "user_r", schemas.Location{Lat: 1, Lng: 2}, "https://cdn.untrash.app/img_1", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Collect(ctx, report.ReportId, "user_c", "https://cdn.untrash.app/img_2"); err != nil {
		t.Fatal(err)
	}

	approved, err := svc.Approve(ctx, report.ReportId)
	if err != nil {
		t.Fatal(err)
	}
	if !approved.AdminVerified || !approved.PointsGiven {
		t.Errorf("approved report flags: admin_verified=%v points_given=%v", approved.AdminVerified, approved.PointsGiven)
	}
	paid := userPoints(t, st, "user_c")
	if paid != config.COLLECT_REWARD_VERIFIED {
		t.Errorf("collector points = %d, want %d", paid, config.COLLECT_REWARD_VERIFIED)
	}

	// second approval is an invalid transition, never a second payment
	if _, err := svc.Approve(ctx, report.ReportId); !errors.Is(err, core.ErrAlreadyVerified) {
		t.Errorf("err = %v, want ErrAlreadyVerified", err)
	}
	if got := userPoints(t, st, "user_c"); got != paid {
		t.Errorf("collector points changed on double approval: %d -> %d", paid, got)
	}

}

func TestApproveUncollectedFails(t *testing.T) {

	svc, st := testService(t, &stubOracle{})
	ctx := context.Background()
	seedUser(t, st, "user_r")

	report, err := svc.Report(ctx, "user_r", schemas.Location{Lat: 1, Lng: 2}, "https://cdn.untrash.app/img_1", "")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Approve(ctx, report.ReportId); !errors.Is(err, core.ErrNotCollected) {
		t.Errorf("err = %v, want ErrNotCollected", err)
	}
	if _, err := svc.Approve(ctx, "trash_missing"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

}

func TestRejectRoundTrip(t *testing.T) {

	svc, st := testService(t, &stubOracle{})
	ctx := context.Background()
	seedUser(t, st, "user_r")
	seedUser(t, st, "user_c")

	report, err := svc.Report(ctx, "user_r", schemas.Location{Lat: 1, Lng: 2}, "https://cdn.untrash.app/img_1", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Collect(ctx, report.ReportId, "user_c", "https://cdn.untrash.app/img_2"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Reject(ctx, report.ReportId); err != nil {
		t.Fatal(err)
	}

	after, err := svc.Get(ctx, report.ReportId)
	if err != nil {
		t.Fatal(err)
	}
	if after.Status != schemas.StatusReported {
		t.Errorf("status = %q, want reported", after.Status)
	}
	if after.CollectorId != "" || after.CollectedAt != nil || after.CollectionImageUrl != "" {
		t.Errorf("collection fields not cleared: %+v", after)
	}
	if after.AiVerified || after.AdminVerified || after.PointsGiven || after.PointsAwarded != 0 {
		t.Errorf("verification fields not cleared: %+v", after)
	}
	if got := userPoints(t, st, "user_c"); got != 0 {
		t.Errorf("collector points = %d after reject, want 0", got)
	}

	// the rejected report can be collected again
	if _, err := svc.Collect(ctx, report.ReportId, "user_c", "https://cdn.untrash.app/img_3"); err != nil {
		t.Fatal(err)
	}

}

func TestRejectUncollectedFails(t *testing.T) {

	svc, st := testService(t, &stubOracle{})
	ctx := context.Background()
	seedUser(t, st, "user_r")

	report, err := svc.Report(ctx, "user_r", schemas.Location{Lat: 1, Lng: 2}, "https://cdn.untrash.app/img_1", "")
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Reject(ctx, report.ReportId); !errors.Is(err, core.ErrNotCollected) {
		t.Errorf("err = %v, want ErrNotCollected", err)
	}
	if err := svc.Reject(ctx, "trash_missing"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

}

func TestDeleteReversesAllPayments(t *testing.T) {

	svc, st := testService(t, &stubOracle{})
	ctx := context.Background()
	seedUser(t, st, "user_r")
	seedUser(t, st, "user_c")

	report, err := svc.Report(ctx, "user_r", schemas.Location{Lat: 1, Lng: 2}, "https://cdn.untrash.app/img_1", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Collect(ctx, report.ReportId, "user_c", "https://cdn.untrash.app/img_2"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Approve(ctx, report.ReportId); err != nil {
		t.Fatal(err)
	}

	deductions, err := svc.Delete(ctx, report.ReportId)
	if err != nil {
		t.Fatal(err)
	}
	if len(deductions) != 2 {
		t.Fatalf("deductions = %v, want reporter and collector entries", deductions)
	}
	if got := userPoints(t, st, "user_r"); got != 0 {
		t.Errorf("reporter points = %d after delete, want 0", got)
	}
	if got := userPoints(t, st, "user_c"); got != 0 {
		t.Errorf("collector points = %d after delete, want 0", got)
	}

	if _, err := svc.Get(ctx, report.ReportId); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("report still readable after delete: %v", err)
	}

}

func TestDeleteBeforeApprovalOnlyDeductsReporter(t *testing.T) {

	svc, st := testService(t, &stubOracle{})
	ctx := context.Background()
	seedUser(t, st, "user_r")
	seedUser(t, st, "user_c")

	report, err := svc.Report(ctx, "user_r", schemas.Location{Lat: 1, Lng: 2}, "https://cdn.untrash.app/img_1", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Collect(ctx, report.ReportId, "user_c", "https://cdn.untrash.app/img_2"); err != nil {
		t.Fatal(err)
	}

	deductions, err := svc.Delete(ctx, report.ReportId)
	if err != nil {
		t.Fatal(err)
	}
	if len(deductions) != 1 || deductions[0].Role != "reporter" {
		t.Errorf("deductions = %v, want reporter only (no points were given)", deductions)
	}

}

func TestListDefaultFeedWindow(t *testing.T) {

	svc, st := testService(t, &stubOracle{})
	ctx := context.Background()
	seedUser(t, st, "user_r")
	seedUser(t, st, "user_c")

	openReport, err := svc.Report(ctx, "user_r", schemas.Location{Lat: 1, Lng: 2}, "https://cdn.untrash.app/img_1", "")
	if err != nil {
		t.Fatal(err)
	}

	fresh, err := svc.Report(ctx, "user_r", schemas.Location{Lat: 1, Lng: 2}, "https://cdn.untrash.app/img_2", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Collect(ctx, fresh.ReportId, "user_c", "https://cdn.untrash.app/img_3"); err != nil {
		t.Fatal(err)
	}

	stale, err := svc.Report(ctx, "user_r", schemas.Location{Lat: 1, Lng: 2}, "https://cdn.untrash.app/img_4", "")
	if err != nil {
		t.Fatal(err)
	}
	old := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return old }
	if _, err := svc.Collect(ctx, stale.ReportId, "user_c", "https://cdn.untrash.app/img_5"); err != nil {
		t.Fatal(err)
	}
	svc.now = func() time.Time {
		return time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)
	}

	feed, err := svc.List(ctx, "", false, 0)
	if err != nil {
		t.Fatal(err)
	}

	ids := map[string]bool{}
	for _, r := range feed {
		ids[r.ReportId] = true
	}
	if !ids[openReport.ReportId] {
		t.Errorf("open report missing from default feed")
	}
	if !ids[fresh.ReportId] {
		t.Errorf("recently collected report missing from default feed")
	}
	if ids[stale.ReportId] {
		t.Errorf("collection older than the feed window should be excluded")
	}

}

func TestListExcludesTestImages(t *testing.T) {

	svc, _ := testService(t, &stubOracle{})
	ctx := context.Background()

	if _, err := svc.Report(ctx, "user_r", schemas.Location{Lat: 1, Lng: 2}, "https://via.placeholder.com/300", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Report(ctx, "user_r", schemas.Location{Lat: 1, Lng: 2}, "https://cdn.untrash.app/img_real", ""); err != nil {
		t.Fatal(err)
	}

	feed, err := svc.List(ctx, "", false, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(feed) != 1 || feed[0].ImageUrl != "https://cdn.untrash.app/img_real" {
		t.Errorf("feed = %v, want the real image only", feed)
	}

	all, err := svc.List(ctx, "", true, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("include_test feed has %d entries, want 2", len(all))
	}

}
