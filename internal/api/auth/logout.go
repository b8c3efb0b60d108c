package auth

import (
	"net/http"
	"untrashapi/internal/api"
)

// Logout clears the session cookie. Tokens are stateless; a banned user is
// rejected per request regardless of any token still in the wild.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {

	http.SetCookie(w, &http.Cookie{
		Name:     "session_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	h.Res(&api.ResParams{
		W: w, R: r,
		Code:    http.StatusOK,
		ResData: &struct{}{},
	})

}
