package areas

import (
	"encoding/json"
	"net/http"
	"untrashapi/internal/api"
	"untrashapi/pkg/schemas"
)

func (h *Handler) Clean(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()
	ctx := r.Context()
	user := api.CurrentUser(ctx)
	resParams := &api.ResParams{W: w, R: r}

	var reqData struct {
		CenterLocation schemas.Location `json:"center_location" validate:"required"`
		PolygonCoords  [][]float64      `json:"polygon_coords" validate:"required,min=3,dive,len=2"`
		AreaSize       float64          `json:"area_size" validate:"required,gt=0"`
		ImageUrl       string           `json:"image_url" validate:"required,url"`
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

	area, err := h.Areas.Submit(ctx, user.UserId, reqData.CenterLocation, reqData.PolygonCoords, reqData.AreaSize, reqData.ImageUrl)
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
