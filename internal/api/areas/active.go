package areas

import (
	"net/http"
	"untrashapi/internal/api"
	"untrashapi/pkg/schemas"
)

func (h *Handler) Active(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	zones, err := h.Areas.ActiveZones(ctx)
	if err != nil {
		resParams.Code = api.StatusForErr(err)
		resParams.Err = err
		h.Res(resParams)
		return
	}
	if zones == nil {
		zones = []schemas.AreaCleaning{}
	}

	resParams.Code = http.StatusOK
	resParams.ResData = zones
	h.Res(resParams)

}
