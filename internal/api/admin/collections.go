package admin

import (
	"net/http"
	"untrashapi/internal/api"
	"untrashapi/internal/core/moderation"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) PendingCollections(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	pending, err := h.Moderation.PendingCollections(ctx)
	if err != nil {
		resParams.Code = api.StatusForErr(err)
		resParams.Err = err
		h.Res(resParams)
		return
	}
	if pending == nil {
		pending = []moderation.PendingCollection{}
	}

	resParams.Code = http.StatusOK
	resParams.ResData = pending
	h.Res(resParams)

}

func (h *Handler) ApproveCollection(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	report, err := h.Reports.Approve(ctx, chi.URLParam(r, "reportId"))
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

func (h *Handler) RejectCollection(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	if err := h.Reports.Reject(ctx, chi.URLParam(r, "reportId")); err != nil {
		resParams.Code = api.StatusForErr(err)
		resParams.Err = err
		h.Res(resParams)
		return
	}

	resParams.Code = http.StatusOK
	resParams.ResData = &struct {
		Rejected bool `json:"rejected"`
	}{Rejected: true}
	h.Res(resParams)

}
