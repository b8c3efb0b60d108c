package users

import (
	"net/http"
	"untrashapi/internal/api"

	"github.com/go-chi/chi/v5"
)

// Get returns a user's public profile.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	user, err := h.Store.GetUser(ctx, chi.URLParam(r, "userId"))
	if err != nil {
		resParams.Code = api.StatusForErr(err)
		resParams.Err = err
		h.Res(resParams)
		return
	}

	resParams.Code = http.StatusOK
	resParams.ResData = &struct {
		UserId        string              `json:"user_id"`
		Name          string              `json:"name"`
		Picture       string              `json:"picture,omitempty"`
		TotalPoints   int                 `json:"total_points"`
		MonthlyPoints int                 `json:"monthly_points"`
		WeeklyPoints  int                 `json:"weekly_points"`
		Medals        map[string][]string `json:"medals"`
	}{
		UserId:        user.UserId,
		Name:          user.Name,
		Picture:       user.Picture,
		TotalPoints:   user.TotalPoints,
		MonthlyPoints: user.MonthlyPoints,
		WeeklyPoints:  user.WeeklyPoints,
		Medals:        user.Medals,
	}
	h.Res(resParams)

}
