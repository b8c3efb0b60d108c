package admin

import (
	"encoding/json"
	"net/http"
	"untrashapi/internal/api"
	"untrashapi/internal/core/reports"
	"untrashapi/pkg/schemas"

	"github.com/go-chi/chi/v5"
)

// DeleteTrash removes a report and reverses every payment it caused. The
// response itemizes the deductions.
func (h *Handler) DeleteTrash(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	deductions, err := h.Reports.Delete(ctx, chi.URLParam(r, "reportId"))
	if err != nil {
		resParams.Code = api.StatusForErr(err)
		resParams.Err = err
		h.Res(resParams)
		return
	}

	if deductions == nil {
		deductions = []reports.Deduction{}
	}
	resParams.Code = http.StatusOK
	resParams.ResData = &struct {
		Deleted    bool                `json:"deleted"`
		Deductions []reports.Deduction `json:"deductions"`
	}{Deleted: true, Deductions: deductions}
	h.Res(resParams)

}

// UpdateTrash patches the admin-editable report fields.
func (h *Handler) UpdateTrash(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()
	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	var reqData struct {
		Status       *string           `json:"status" validate:"omitempty,oneof=reported collected"`
		ImageUrl     *string           `json:"image_url" validate:"omitempty,url"`
		ThumbnailUrl *string           `json:"thumbnail_url" validate:"omitempty,url"`
		Location     *schemas.Location `json:"location"`
		AiVerified   *bool             `json:"ai_verified"`
	}

	// validate request body
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&reqData); err != nil {
		resParams.Code = http.StatusBadRequest
		resParams.Err = err
		h.Res(resParams)
		return
	}
	resParams.ReqData = reqData
	if err := h.Validate.Struct(&reqData); err != nil {
		resParams.Code = http.StatusBadRequest
		resParams.Err = err
		h.Res(resParams)
		return
	}

	fields := map[string]any{}
	if reqData.Status != nil {
		fields["status"] = *reqData.Status
	}
	if reqData.ImageUrl != nil {
		fields["image_url"] = *reqData.ImageUrl
	}
	if reqData.ThumbnailUrl != nil {
		fields["thumbnail_url"] = *reqData.ThumbnailUrl
	}
	if reqData.Location != nil {
		fields["location"] = *reqData.Location
	}
	if reqData.AiVerified != nil {
		fields["ai_verified"] = *reqData.AiVerified
	}

	reportId := chi.URLParam(r, "reportId")
	if err := h.Reports.AdminUpdate(ctx, reportId, fields); err != nil {
		resParams.Code = api.StatusForErr(err)
		resParams.Err = err
		h.Res(resParams)
		return
	}

	report, err := h.Reports.Get(ctx, reportId)
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
