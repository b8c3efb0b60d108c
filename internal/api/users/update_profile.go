package users

import (
	"encoding/json"
	"net/http"
	"untrashapi/internal/api"
)

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()
	ctx := r.Context()
	user := api.CurrentUser(ctx)
	resParams := &api.ResParams{W: w, R: r}

	var reqData struct {
		Name    string `json:"name" validate:"required,maxgraphemes=64"`
		Picture string `json:"picture" validate:"omitempty,url"`
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

	if err := h.Store.UpdateUserProfile(ctx, user.UserId, reqData.Name, reqData.Picture, false); err != nil {
		resParams.Code = api.StatusForErr(err)
		resParams.Err = err
		h.Res(resParams)
		return
	}

	user.Name = reqData.Name
	user.Picture = reqData.Picture
	resParams.Code = http.StatusOK
	resParams.ResData = user
	h.Res(resParams)

}
