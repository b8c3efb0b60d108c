package auth

import (
	"net/http"
	"untrashapi/internal/api"
)

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {

	h.Res(&api.ResParams{
		W: w, R: r,
		Code:    http.StatusOK,
		ResData: api.CurrentUser(r.Context()),
	})

}
