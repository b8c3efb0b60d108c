package notifications

import (
	"encoding/json"
	"errors"
	"net/http"
	"untrashapi/internal/api"
	"untrashapi/internal/core"
	"untrashapi/pkg/schemas"
)

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	user := api.CurrentUser(ctx)
	resParams := &api.ResParams{W: w, R: r}

	prefs, err := h.Store.GetNotificationPreferences(ctx, user.UserId)
	if errors.Is(err, core.ErrNotFound) {
		prefs = schemas.DefaultNotificationPreferences(user.UserId)
	} else if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	resParams.Code = http.StatusOK
	resParams.ResData = prefs
	h.Res(resParams)

}

// UpdateSettings applies a partial preference update; omitted fields keep
// their stored (or default) values.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()
	ctx := r.Context()
	user := api.CurrentUser(ctx)
	resParams := &api.ResParams{W: w, R: r}

	var reqData struct {
		EmailNotifications *bool `json:"email_notifications"`
		PushNotifications  *bool `json:"push_notifications"`
		NotifyNewEvents    *bool `json:"notify_new_events"`
		NotifyNearbyTrash  *bool `json:"notify_nearby_trash"`
		NotifyGroupUpdates *bool `json:"notify_group_updates"`
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

	fields := map[string]any{}
	if reqData.EmailNotifications != nil {
		fields["email_notifications"] = *reqData.EmailNotifications
	}
	if reqData.PushNotifications != nil {
		fields["push_notifications"] = *reqData.PushNotifications
	}
	if reqData.NotifyNewEvents != nil {
		fields["notify_new_events"] = *reqData.NotifyNewEvents
	}
	if reqData.NotifyNearbyTrash != nil {
		fields["notify_nearby_trash"] = *reqData.NotifyNearbyTrash
	}
	if reqData.NotifyGroupUpdates != nil {
		fields["notify_group_updates"] = *reqData.NotifyGroupUpdates
	}

	if len(fields) > 0 {
		if err := h.Store.SaveNotificationPreferences(ctx, user.UserId, fields); err != nil {
			resParams.Code = http.StatusInternalServerError
			resParams.Err = err
			h.Res(resParams)
			return
		}
	}

	prefs, err := h.Store.GetNotificationPreferences(ctx, user.UserId)
	if errors.Is(err, core.ErrNotFound) {
		prefs = schemas.DefaultNotificationPreferences(user.UserId)
	} else if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	resParams.Code = http.StatusOK
	resParams.ResData = prefs
	h.Res(resParams)

}
