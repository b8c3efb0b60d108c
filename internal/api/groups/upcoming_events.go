package groups

import (
	"net/http"
	"time"
	"untrashapi/internal/api"
	"untrashapi/pkg/config"
	"untrashapi/pkg/schemas"
)

// UpcomingEvents lists future events across every group the user has joined.
func (h *Handler) UpcomingEvents(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	user := api.CurrentUser(ctx)
	resParams := &api.ResParams{W: w, R: r}

	events, err := h.Store.UpcomingEvents(ctx, user.JoinedGroups, time.Now().UTC(), config.DEFAULT_LIMIT)
	if err != nil {
		resParams.Code = api.StatusForErr(err)
		resParams.Err = err
		h.Res(resParams)
		return
	}
	if events == nil {
		events = []schemas.GroupEvent{}
	}

	resParams.Code = http.StatusOK
	resParams.ResData = events
	h.Res(resParams)

}
