package notifications

import (
	"net/http"
	"untrashapi/internal/api"
	"untrashapi/pkg/config"
	"untrashapi/pkg/schemas"
)

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	user := api.CurrentUser(ctx)
	resParams := &api.ResParams{W: w, R: r}

	notifications, err := h.Store.UserNotifications(ctx, user.UserId, config.DEFAULT_LIMIT)
	if err != nil {
		resParams.Code = api.StatusForErr(err)
		resParams.Err = err
		h.Res(resParams)
		return
	}
	if notifications == nil {
		notifications = []schemas.Notification{}
	}

	resParams.Code = http.StatusOK
	resParams.ResData = notifications
	h.Res(resParams)

}
