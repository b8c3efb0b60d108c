package admin

import (
	"net/http"
	"untrashapi/internal/api"
	"untrashapi/internal/core/moderation"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) PendingAreas(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	pending, err := h.Moderation.PendingAreas(ctx)
	if err != nil {
		resParams.Code = api.StatusForErr(err)
		resParams.Err = err
		h.Res(resParams)
		return
	}
	if pending == nil {
		pending = []moderation.PendingArea{}
	}

	resParams.Code = http.StatusOK
	resParams.ResData = pending
	h.Res(resParams)

}

func (h *Handler) ApproveArea(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	area, err := h.Areas.Approve(ctx, chi.URLParam(r, "areaId"))
	if err != nil {
		resParams.Code = api.StatusForErr(err)
		resParams.Err = err
		h.Res(resParams)
		return
	}

	resParams.Code = http.StatusOK
	resParams.ResData = area
	h.Res(resParams)

}

func (h *Handler) RejectArea(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	if err := h.Areas.Reject(ctx, chi.URLParam(r, "areaId")); err != nil {
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
