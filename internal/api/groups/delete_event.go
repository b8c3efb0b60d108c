package groups

import (
	"net/http"
	"slices"
	"untrashapi/internal/api"
	"untrashapi/internal/core"

	"github.com/go-chi/chi/v5"
)

// DeleteEvent is allowed for the event creator, a group admin, or an app
// admin.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	user := api.CurrentUser(ctx)
	resParams := &api.ResParams{W: w, R: r}

	event, err := h.Store.GetEvent(ctx, chi.URLParam(r, "eventId"))
	if err != nil {
		resParams.Code = api.StatusForErr(err)
		resParams.Err = err
		h.Res(resParams)
		return
	}

	allowed := user.IsAdmin || event.CreatedBy == user.UserId
	if !allowed {
		group, err := h.Store.GetGroup(ctx, event.GroupId)
		if err == nil && slices.Contains(group.AdminIds, user.UserId) {
			allowed = true
		}
	}
	if !allowed {
		resParams.Code = http.StatusForbidden
		resParams.Err = core.ErrForbidden
		h.Res(resParams)
		return
	}

	if err := h.Store.DeleteEvent(ctx, event.EventId); err != nil {
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
