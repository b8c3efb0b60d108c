package groups

import (
	"net/http"
	"slices"
	"untrashapi/internal/api"
	"untrashapi/internal/core"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Delete removes the group, its events, and the membership back-references on
// every member. Allowed for app admins and group admins.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {

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
	if !user.IsAdmin && !slices.Contains(group.AdminIds, user.UserId) {
		resParams.Code = http.StatusForbidden
		resParams.Err = core.ErrForbidden
		h.Res(resParams)
		return
	}

	if err := h.Store.DeleteGroupEvents(ctx, groupId); err != nil {
		h.Logger.Warn("group events not deleted", zap.String("group_id", groupId), zap.Error(err))
	}
	if err := h.Store.RemoveGroupFromMembers(ctx, groupId, group.MemberIds); err != nil {
		h.Logger.Warn("membership back-references not cleaned", zap.String("group_id", groupId), zap.Error(err))
	}
	if err := h.Store.DeleteGroup(ctx, groupId); err != nil {
		resParams.Code = api.StatusForErr(err)
		resParams.Err = err
		h.Res(resParams)
		return
	}

	resParams.Code = http.StatusOK
	resParams.ResData = &struct {
		Deleted bool `json:"deleted"`
	}{Deleted: true}
	h.Res(resParams)

}
