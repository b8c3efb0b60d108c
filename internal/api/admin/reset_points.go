package admin

import (
	"encoding/json"
	"net/http"
	"untrashapi/internal/api"

	"github.com/go-chi/chi/v5"
)

// ResetPoints sets absolute counter values for a user. This is the only path
// that writes counters without a delta; negative inputs are floored to zero.
func (h *Handler) ResetPoints(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()
	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	var reqData struct {
		TotalPoints   int  `json:"total_points"`
		MonthlyPoints int  `json:"monthly_points"`
		WeeklyPoints  int  `json:"weekly_points"`
		ClearMedals   bool `json:"clear_medals"`
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

	user, err := h.Moderation.ResetPoints(ctx, chi.URLParam(r, "userId"),
		reqData.TotalPoints, reqData.MonthlyPoints, reqData.WeeklyPoints, reqData.ClearMedals)
	if err != nil {
		resParams.Code = api.StatusForErr(err)
		resParams.Err = err
		h.Res(resParams)
		return
	}

	resParams.Code = http.StatusOK
	resParams.ResData = user
	h.Res(resParams)

}
