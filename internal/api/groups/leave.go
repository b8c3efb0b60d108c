package groups

import (
	"net/http"
	"slices"
	"untrashapi/internal/api"
	"untrashapi/internal/core"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) Leave(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	user := api.CurrentUser(ctx)
	resParams := &api.ResParams{W: w, R: r}

	groupId := chi.URLParam(r, "groupId")
	group, err := h.Store.GetGroup(ctx, groupId)
	if err != nil {
		resParams.Code = api.StatusForErr(err)
		resParams.Err = err
		h.Res(resParams)
		return
	}
	if slices.Contains(group.AdminIds, user.UserId) {
		resParams.Code = http.StatusBadRequest
		resParams.Err = core.ErrOwnerCannotLeave
		h.Res(resParams)
		return
	}

	if err := h.Store.RemoveGroupMember(ctx, groupId, user.UserId); err != nil {
		resParams.Code = api.StatusForErr(err)
		resParams.Err = err
		h.Res(resParams)
		return
	}
	if err := h.Store.RemoveJoinedGroup(ctx, user.UserId, groupId); err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	resParams.Code = http.StatusOK
	resParams.ResData = &struct {
		Left bool `json:"left"`
	}{Left: true}
	h.Res(resParams)

}
