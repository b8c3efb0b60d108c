package groups

import (
	"net/http"
	"untrashapi/internal/api"
	"untrashapi/pkg/config"
	"untrashapi/pkg/schemas"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	events, err := h.Store.GroupEvents(ctx, chi.URLParam(r, "groupId"), config.DEFAULT_LIMIT)
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
