package admin

import (
	"net/http"
	"untrashapi/internal/api"
)

func (h *Handler) PendingCount(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	counts, err := h.Moderation.Counts(ctx)
	if err != nil {
		resParams.Code = api.StatusForErr(err)
		resParams.Err = err
		h.Res(resParams)
		return
	}

	resParams.Code = http.StatusOK
	resParams.ResData = counts
	h.Res(resParams)

}
