package groups

import (
	"encoding/json"
	"net/http"
	"slices"
	"time"
	"untrashapi/internal/api"
	"untrashapi/internal/core"
	"untrashapi/pkg/schemas"
	"untrashapi/pkg/utils"

	"github.com/go-chi/chi/v5"
)

// CreateEvent creates a group event and notifies every other member.
// Member-only.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()
	ctx := r.Context()
	user := api.CurrentUser(ctx)
	resParams := &api.ResParams{W: w, R: r}

	var reqData struct {
		Title       string            `json:"title" validate:"required,maxgraphemes=100"`
		Description string            `json:"description" validate:"omitempty,maxgraphemes=1000"`
		Location    *schemas.Location `json:"location" validate:"omitempty"`
		EventDate   time.Time         `json:"event_date" validate:"required"`
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

	groupId := chi.URLParam(r, "groupId")
	group, err := h.Store.GetGroup(ctx, groupId)
	if err != nil {
		resParams.Code = api.StatusForErr(err)
		resParams.Err = err
		h.Res(resParams)
		return
	}
	if !slices.Contains(group.MemberIds, user.UserId) {
		resParams.Code = http.StatusForbidden
		resParams.Err = core.ErrForbidden
		h.Res(resParams)
		return
	}

	event := &schemas.GroupEvent{
		EventId:     utils.NewId("event"),
		GroupId:     groupId,
		Title:       reqData.Title,
		Description: reqData.Description,
		Location:    reqData.Location,
		EventDate:   reqData.EventDate.UTC(),
		CreatedBy:   user.UserId,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.Store.InsertEvent(ctx, event); err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	for _, memberId := range group.MemberIds {
		if memberId == user.UserId {
			continue
		}
		h.Notify.Notify(ctx, memberId, "new_event",
			"New event in "+group.Name,
			event.Title+" on "+event.EventDate.Format("Jan 2, 2006"),
		)
	}

	resParams.Code = http.StatusOK
	resParams.ResData = event
	h.Res(resParams)

}
