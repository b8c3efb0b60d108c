package stats

import (
	"net/http"
	"time"
	"untrashapi/internal/api"
)

func (h *Handler) Weekly(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	since := time.Now().UTC().Add(-7 * 24 * time.Hour)

	reported, err := h.Store.CountReportsSince(ctx, since)
	if err != nil {
		resParams.Code = api.StatusForErr(err)
		resParams.Err = err
		h.Res(resParams)
		return
	}
	collected, err := h.Store.CountCollectionsSince(ctx, since)
	if err != nil {
		resParams.Code = api.StatusForErr(err)
		resParams.Err = err
		h.Res(resParams)
		return
	}

	resParams.Code = http.StatusOK
	resParams.ResData = &struct {
		ReportsThisWeek     int64 `json:"reports_this_week"`
		CollectionsThisWeek int64 `json:"collections_this_week"`
	}{ReportsThisWeek: reported, CollectionsThisWeek: collected}
	h.Res(resParams)

}
