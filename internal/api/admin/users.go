package admin

import (
	"net/http"
	"untrashapi/internal/api"
	"untrashapi/pkg/config"
	"untrashapi/pkg/schemas"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	users, err := h.Store.ListUsers(ctx, config.DEFAULT_LIMIT)
	if err != nil {
		resParams.Code = api.StatusForErr(err)
		resParams.Err = err
		h.Res(resParams)
		return
	}
	if users == nil {
		users = []schemas.User{}
	}

	resParams.Code = http.StatusOK
	resParams.ResData = users
	h.Res(resParams)

}

// BanUser flips is_banned; the auth middleware rejects the user on their next
// request regardless of any live session token.
func (h *Handler) BanUser(w http.ResponseWriter, r *http.Request) {
	h.setBanned(w, r, true)
}

func (h *Handler) UnbanUser(w http.ResponseWriter, r *http.Request) {
	h.setBanned(w, r, false)
}

func (h *Handler) setBanned(w http.ResponseWriter, r *http.Request, banned bool) {

	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	userId := chi.URLParam(r, "userId")
	if err := h.Store.SetUserBanned(ctx, userId, banned); err != nil {
		resParams.Code = api.StatusForErr(err)
		resParams.Err = err
		h.Res(resParams)
		return
	}

	resParams.Code = http.StatusOK
	resParams.ResData = &struct {
		UserId   string `json:"user_id"`
		IsBanned bool   `json:"is_banned"`
	}{UserId: userId, IsBanned: banned}
	h.Res(resParams)

}
