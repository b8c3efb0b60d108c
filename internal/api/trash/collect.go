package trash

import (
	"encoding/json"
	"net/http"
	"untrashapi/internal/api"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) Collect(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()
	ctx := r.Context()
	user := api.CurrentUser(ctx)
	resParams := &api.ResParams{W: w, R: r}

	var reqData struct {
		CollectionImageUrl string `json:"collection_image_url" validate:"required,url"`
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

	report, err := h.Reports.Collect(ctx, chi.URLParam(r, "reportId"), user.UserId, reqData.CollectionImageUrl)
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
