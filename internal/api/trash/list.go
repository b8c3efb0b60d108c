package trash

import (
	"net/http"
	"strconv"
	"untrashapi/internal/api"
	"untrashapi/pkg/schemas"
)

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	status := r.URL.Query().Get("status")
	includeTest := r.URL.Query().Get("include_test") == "true"
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	reports, err := h.Reports.List(ctx, status, includeTest, limit)
	if err != nil {
		resParams.Code = api.StatusForErr(err)
		resParams.Err = err
		h.Res(resParams)
		return
	}
	if reports == nil {
		reports = []schemas.TrashReport{}
	}

	resParams.Code = http.StatusOK
	resParams.ResData = reports
	h.Res(resParams)

}
