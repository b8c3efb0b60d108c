package trash

import (
	"net/http"
	"untrashapi/internal/api"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	report, err := h.Reports.Get(ctx, chi.URLParam(r, "reportId"))
	if err != nil {
		resParams.Code = api.StatusForErr(err)
		resParams.Err = err
		h.Res(resParams)
		return
	}

	resParams.Code = http.StatusOK
	resParams.ResData = report
	h.Res(resParams)

}
