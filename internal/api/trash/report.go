package trash

import (
	"encoding/json"
	"net/http"
	"untrashapi/internal/api"
	"untrashapi/pkg/schemas"
)

func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()
	ctx := r.Context()
	user := api.CurrentUser(ctx)
	resParams := &api.ResParams{W: w, R: r}

	var reqData struct {
		Location     schemas.Location `json:"location" validate:"required"`
		ImageUrl     string           `json:"image_url" validate:"required,url"`
		ThumbnailUrl string           `json:"thumbnail_url" validate:"omitempty,url"`
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

	report, err := h.Reports.Report(ctx, user.UserId, reqData.Location, reqData.ImageUrl, reqData.ThumbnailUrl)
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
