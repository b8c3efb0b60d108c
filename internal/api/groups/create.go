package groups

import (
	"encoding/json"
	"net/http"
	"time"
	"untrashapi/internal/api"
	"untrashapi/pkg/schemas"
	"untrashapi/pkg/utils"
)

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()
	ctx := r.Context()
	user := api.CurrentUser(ctx)
	resParams := &api.ResParams{W: w, R: r}

	var reqData struct {
		Name        string `json:"name" validate:"required,maxgraphemes=64"`
		Description string `json:"description" validate:"omitempty,maxgraphemes=500"`
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

	group := &schemas.Group{
		GroupId:     utils.NewId("group"),
		Name:        reqData.Name,
		Description: reqData.Description,
		AdminIds:    []string{user.UserId},
		MemberIds:   []string{user.UserId},
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.Store.InsertGroup(ctx, group); err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}
	if err := h.Store.AddJoinedGroup(ctx, user.UserId, group.GroupId); err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	resParams.Code = http.StatusOK
	resParams.ResData = group
	h.Res(resParams)

}
