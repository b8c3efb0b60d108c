package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
	"untrashapi/internal/api"
	"untrashapi/internal/core"
	"untrashapi/pkg/config"
	"untrashapi/pkg/schemas"
	"untrashapi/pkg/utils"
)

// Session exchanges an identity-provider session id for a signed session
// token. The user document is created on first login; the admin flag follows
// the ADMIN_EMAILS provisioning list and is only ever promoted here.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()
	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	sessionId := r.Header.Get("X-Session-ID")
	if sessionId == "" {
		resParams.Code = http.StatusBadRequest
		resParams.Err = errors.New("missing X-Session-ID header")
		h.Res(resParams)
		return
	}

	// resolve session with the identity provider
	idReq, err := http.NewRequestWithContext(ctx, http.MethodGet, config.VAR.IDENTITY_URL, nil)
	if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}
	idReq.Header.Set("X-Session-ID", sessionId)

	idRes, err := h.HttpCli.Do(idReq)
	if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}
	defer idRes.Body.Close()
	if idRes.StatusCode != http.StatusOK {
		resParams.Code = http.StatusUnauthorized
		resParams.Err = fmt.Errorf("identity provider returned %d", idRes.StatusCode)
		h.Res(resParams)
		return
	}

	var identity struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(idRes.Body).Decode(&identity); err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}
	if identity.Email == "" {
		resParams.Code = http.StatusUnauthorized
		resParams.Err = errors.New("identity provider returned no email")
		h.Res(resParams)
		return
	}

	isAdmin := config.IsAdminEmail(identity.Email)

	user, err := h.Store.GetUserByEmail(ctx, identity.Email)
	if errors.Is(err, core.ErrNotFound) {
		user = &schemas.User{
			UserId:       utils.NewId("user"),
			Email:        identity.Email,
			Name:         identity.Name,
			Picture:      identity.Picture,
			Medals:       map[string][]string{},
			JoinedGroups: []string{},
			IsAdmin:      isAdmin,
			CreatedAt:    time.Now().UTC(),
		}
		if err := h.Store.InsertUser(ctx, user); err != nil {
			resParams.Code = http.StatusInternalServerError
			resParams.Err = err
			h.Res(resParams)
			return
		}
	} else if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	} else {
		if user.IsBanned {
			resParams.Code = http.StatusUnauthorized
			resParams.Err = errors.New("user is banned")
			h.Res(resParams)
			return
		}
		if err := h.Store.UpdateUserProfile(ctx, user.UserId, identity.Name, identity.Picture, isAdmin); err != nil {
			resParams.Code = http.StatusInternalServerError
			resParams.Err = err
			h.Res(resParams)
			return
		}
		user.Name = identity.Name
		user.Picture = identity.Picture
		user.IsAdmin = user.IsAdmin || isAdmin
	}

	signed, err := utils.CreateNewAuthToken(user.UserId).Sign()
	if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session_token",
		Value:    signed,
		Path:     "/",
		MaxAge:   int(config.SESSION_TTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	resParams.Code = http.StatusOK
	resParams.ResData = &struct {
		User         *schemas.User `json:"user"`
		SessionToken string        `json:"session_token"`
	}{User: user, SessionToken: signed}
	h.Res(resParams)

}
