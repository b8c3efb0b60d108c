package trash

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"untrashapi/internal/api"
	"untrashapi/internal/core/points"
	"untrashapi/internal/core/reports"
	"untrashapi/internal/store/memstore"
	"untrashapi/pkg/schemas"
	"untrashapi/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type stubOracle struct{ visible bool }

func (o *stubOracle) TrashVisible(ctx context.Context, imageUrl string) (bool, error) {
	return o.visible, nil
}

func testRouter(t *testing.T) (*chi.Mux, *memstore.Store) {

	t.Helper()
	st := memstore.New()
	logger := zap.NewNop()
	ledger := points.NewLedger(st, st, logger)

	validate := validator.New()
	if err := validate.RegisterValidation("maxgraphemes", utils.MaxGraphemesValidator); err != nil {
		t.Fatal(err)
	}

	h := &api.Handler{
		Logger:   logger,
		Validate: validate,
		Store:    st,
		Ledger:   ledger,
		Reports:  reports.NewService(st, ledger, &stubOracle{}, logger),
	}
	trashH := &Handler{Handler: h}

	router := chi.NewRouter()
	router.Post("/trash/report", h.AuthMiddleware(trashH.Report))
	router.Post("/trash/{reportId}/collect", h.AuthMiddleware(trashH.Collect))
	router.Get("/trash", trashH.List)
	router.Get("/trash/{reportId}", trashH.Get)
	return router, st

}

func authHeader(t *testing.T, userId string) string {

	t.Helper()
	signed, err := utils.CreateNewAuthToken(userId).Sign()
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + signed

}

func seedUser(t *testing.T, st *memstore.Store, userId string, banned bool) {

	t.Helper()
	err := st.InsertUser(context.Background(), &schemas.User{
		UserId:   userId,
		Email:    userId + "@mail.org",
		Name:     userId,
		Medals:   map[string][]string{},
		IsBanned: banned,
	})
	if err != nil {
		t.Fatal(err)
	}

}

func TestReportEndpoint(t *testing.T) {

	router, st := testRouter(t)
	seedUser(t, st, "user_r", false)

	body := `{"location":{"lat":52.52,"lng":13.405},"image_url":"https://cdn.untrash.app/img_1"}`
	req := httptest.NewRequest(http.MethodPost, "/trash/report", strings.NewReader(body))
	req.Header.Set("Authorization", authHeader(t, "user_r"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var report schemas.TrashReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatal(err)
	}
	if report.Status != schemas.StatusReported || report.ReporterId != "user_r" {
		t.Errorf("unexpected report: %+v", report)
	}

	user, err := st.GetUser(context.Background(), "user_r")
	if err != nil {
		t.Fatal(err)
	}
	if user.TotalPoints != 5 {
		t.Errorf("reporter points = %d, want 5", user.TotalPoints)
	}

}

func TestReportRejectsUnknownFields(t *testing.T) {

	router, st := testRouter(t)
	seedUser(t, st, "user_r", false)

	body := `{"location":{"lat":1,"lng":2},"image_url":"https://cdn.untrash.app/img_1","bogus":true}`
	req := httptest.NewRequest(http.MethodPost, "/trash/report", strings.NewReader(body))
	req.Header.Set("Authorization", authHeader(t, "user_r"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

}

func TestReportRejectsOutOfRangeLocation(t *testing.T) {

	router, st := testRouter(t)
	seedUser(t, st, "user_r", false)

	body := `{"location":{"lat":91,"lng":13.405},"image_url":"https://cdn.untrash.app/img_1"}`
	req := httptest.NewRequest(http.MethodPost, "/trash/report", strings.NewReader(body))
	req.Header.Set("Authorization", authHeader(t, "user_r"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

}

func TestAuthRequired(t *testing.T) {

	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/trash/report", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}

}

func TestBannedUserRejected(t *testing.T) {

	router, st := testRouter(t)
	seedUser(t, st, "user_b", true)

	body := `{"location":{"lat":1,"lng":2},"image_url":"https://cdn.untrash.app/img_1"}`
	req := httptest.NewRequest(http.MethodPost, "/trash/report", strings.NewReader(body))
	req.Header.Set("Authorization", authHeader(t, "user_b"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for banned user", rec.Code)
	}

}

func TestCollectEndpointTransitions(t *testing.T) {

	router, st := testRouter(t)
	seedUser(t, st, "user_r", false)
	seedUser(t, st, "user_c", false)

	body := `{"location":{"lat":1,"lng":2},"image_url":"https://cdn.untrash.app/img_1"}`
	req := httptest.NewRequest(http.MethodPost, "/trash/report", strings.NewReader(body))
	req.Header.Set("Authorization", authHeader(t, "user_r"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("report status = %d", rec.Code)
	}
	var report schemas.TrashReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatal(err)
	}

	collectBody := `{"collection_image_url":"https://cdn.untrash.app/img_2"}`
	req = httptest.NewRequest(http.MethodPost, "/trash/"+report.ReportId+"/collect", strings.NewReader(collectBody))
	req.Header.Set("Authorization", authHeader(t, "user_c"))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("collect status = %d, body %s", rec.Code, rec.Body.String())
	}

	// a second collect is an invalid transition
	req = httptest.NewRequest(http.MethodPost, "/trash/"+report.ReportId+"/collect", strings.NewReader(collectBody))
	req.Header.Set("Authorization", authHeader(t, "user_c"))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("double collect status = %d, want 400", rec.Code)
	}

}

func TestGetUnknownReport(t *testing.T) {

	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/trash/trash_missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}

}
