package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"untrashapi/internal/api"
	"untrashapi/internal/core/areas"
	"untrashapi/internal/core/moderation"
	"untrashapi/internal/core/points"
	"untrashapi/internal/core/reports"
	"untrashapi/internal/store/memstore"
	"untrashapi/pkg/schemas"
	"untrashapi/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type stubOracle struct{}

func (stubOracle) TrashVisible(ctx context.Context, imageUrl string) (bool, error) {
	return false, nil
}

func testRouter(t *testing.T) (*chi.Mux, *memstore.Store) {

	t.Helper()
	st := memstore.New()
	logger := zap.NewNop()
	ledger := points.NewLedger(st, st, logger)

	h := &api.Handler{
		Logger:     logger,
		Validate:   validator.New(),
		Store:      st,
		Ledger:     ledger,
		Reports:    reports.NewService(st, ledger, stubOracle{}, logger),
		Areas:      areas.NewService(st, ledger, logger),
		Moderation: moderation.NewService(st, st, st, ledger, logger),
	}
	adminH := &Handler{Handler: h}

	router := chi.NewRouter()
	router.Get("/admin/pending-count", h.AdminMiddleware(adminH.PendingCount))
	router.Post("/admin/users/{userId}/ban", h.AdminMiddleware(adminH.BanUser))
	router.Post("/admin/users/{userId}/reset-points", h.AdminMiddleware(adminH.ResetPoints))
	router.Post("/admin/collections/{reportId}/approve", h.AdminMiddleware(adminH.ApproveCollection))
	return router, st

}

func seedUser(t *testing.T, st *memstore.Store, userId string, isAdmin bool) {

	t.Helper()
	err := st.InsertUser(context.Background(), &schemas.User{
		UserId:  userId,
		Email:   userId + "@mail.org",
		Name:    userId,
		Medals:  map[string][]string{},
		IsAdmin: isAdmin,
	})
	if err != nil {
		t.Fatal(err)
	}

}

func do(t *testing.T, router *chi.Mux, method, path, userId, body string) *httptest.ResponseRecorder {

	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if userId != "" {
		signed, err := utils.CreateNewAuthToken(userId).Sign()
		if err != nil {
			t.Fatal(err)
		}
		req.Header.Set("Authorization", "Bearer "+signed)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec

}

func TestAdminRoutesRequireAdmin(t *testing.T) {

	router, st := testRouter(t)
	seedUser(t, st, "user_plain", false)

	rec := do(t, router, http.MethodGet, "/admin/pending-count", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want 401", rec.Code)
	}

	rec = do(t, router, http.MethodGet, "/admin/pending-count", "user_plain", "")
	if rec.Code != http.StatusForbidden {
		t.Errorf("non-admin status = %d, want 403", rec.Code)
	}

}

func TestPendingCountEndpoint(t *testing.T) {

	router, st := testRouter(t)
	seedUser(t, st, "user_admin", true)

	rec := do(t, router, http.MethodGet, "/admin/pending-count", "user_admin", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var counts moderation.PendingCounts
	if err := json.Unmarshal(rec.Body.Bytes(), &counts); err != nil {
		t.Fatal(err)
	}
	if counts.TotalPending != 0 {
		t.Errorf("counts = %+v, want empty", counts)
	}

}

func TestBanEndpoint(t *testing.T) {

	router, st := testRouter(t)
	seedUser(t, st, "user_admin", true)
	seedUser(t, st, "user_target", false)

	rec := do(t, router, http.MethodPost, "/admin/users/user_target/ban", "user_admin", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	user, err := st.GetUser(context.Background(), "user_target")
	if err != nil {
		t.Fatal(err)
	}
	if !user.IsBanned {
		t.Errorf("target not banned")
	}

	// the banned user is now rejected by the admin surface too
	rec = do(t, router, http.MethodGet, "/admin/pending-count", "user_target", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("banned user status = %d, want 401", rec.Code)
	}

}

func TestResetPointsEndpoint(t *testing.T) {

	router, st := testRouter(t)
	seedUser(t, st, "user_admin", true)

	ctx := context.Background()
	err := st.InsertUser(ctx, &schemas.User{
		UserId:        "user_target",
		Email:         "t@mail.org",
		Name:          "T",
		TotalPoints:   90,
		MonthlyPoints: 90,
		WeeklyPoints:  90,
		Medals:        map[string][]string{"2025-01": {"bronze", "silver"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	body := `{"total_points":10,"monthly_points":10,"weekly_points":10,"clear_medals":true}`
	rec := do(t, router, http.MethodPost, "/admin/users/user_target/reset-points", "user_admin", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	user, err := st.GetUser(ctx, "user_target")
	if err != nil {
		t.Fatal(err)
	}
	if user.TotalPoints != 10 || len(user.Medals) != 0 {
		t.Errorf("after reset: points=%d medals=%v", user.TotalPoints, user.Medals)
	}

}

func TestApproveCollectionEndpointDoubleApproval(t *testing.T) {

	router, st := testRouter(t)
	seedUser(t, st, "user_admin", true)
	seedUser(t, st, "user_c", false)

	ctx := context.Background()
	collectedAt := time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)
	err := st.InsertReport(ctx, &schemas.TrashReport{
		ReportId:      "trash_1",
		Status:        schemas.StatusCollected,
		ReporterId:    "user_r",
		CollectorId:   "user_c",
		CollectedAt:   &collectedAt,
		PointsAwarded: 25,
		CreatedAt:     collectedAt,
	})
	if err != nil {
		t.Fatal(err)
	}

	rec := do(t, router, http.MethodPost, "/admin/collections/trash_1/approve", "user_admin", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	user, err := st.GetUser(ctx, "user_c")
	if err != nil {
		t.Fatal(err)
	}
	if user.TotalPoints != 25 {
		t.Errorf("collector points = %d, want 25", user.TotalPoints)
	}

	rec = do(t, router, http.MethodPost, "/admin/collections/trash_1/approve", "user_admin", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("double approval status = %d, want 400", rec.Code)
	}
	user, err = st.GetUser(ctx, "user_c")
	if err != nil {
		t.Fatal(err)
	}
	if user.TotalPoints != 25 {
		t.Errorf("collector points = %d after double approval, want 25", user.TotalPoints)
	}

}
