package groups

import (
	"net/http"
	"untrashapi/internal/api"
	"untrashapi/pkg/config"
	"untrashapi/pkg/schemas"
)

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	groups, err := h.Store.ListGroups(ctx, config.DEFAULT_LIMIT)
	if err != nil {
		resParams.Code = api.StatusForErr(err)
		resParams.Err = err
		h.Res(resParams)
		return
	}
	if groups == nil {
		groups = []schemas.Group{}
	}

	resParams.Code = http.StatusOK
	resParams.ResData = groups
	h.Res(resParams)

}
