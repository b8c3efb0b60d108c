package utils

import (
	"errors"
	"net/http"
	"strings"
	"time"
	"untrashapi/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

type AuthToken struct {
	Uid string `json:"uid"`
	jwt.RegisteredClaims
}

func CreateNewAuthToken(uid string) *AuthToken {

	token := AuthToken{Uid: uid}
	token.refreshToken()
	return &token

}

// ValidateAuthToken accepts the session token from either the session cookie
// or an Authorization bearer header.
func ValidateAuthToken(r *http.Request) (*AuthToken, error) {

	var tokenRaw string
	if cookie, err := r.Cookie("session_token"); err == nil {
		tokenRaw = cookie.Value
	} else {
		header := r.Header.Get("Authorization")
		if header == "" {
			return nil, errors.New("missing token")
		}
		parts := strings.Split(header, " ")
		if len(parts) != 2 {
			return nil, errors.New("invalid token format")
		}
		tokenRaw = parts[1]
	}

	// validate token
	var authToken AuthToken
	token, err := jwt.ParseWithClaims(tokenRaw, &authToken, func(token *jwt.Token) (any, error) {
		return []byte(config.VAR.JWT_SECRET), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	// error if expired
	if time.Now().UTC().After(authToken.ExpiresAt.Time) {
		return nil, errors.New("token expired")
	}

	return &authToken, nil

}

func (authToken *AuthToken) Sign() (string, error) {

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, authToken)
	key := []byte(config.VAR.JWT_SECRET)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", err
	}

	return signed, nil

}

func (authToken *AuthToken) Refresh() {

	// if expiring in < 1 day, extend the session
	timeTillExpire := authToken.ExpiresAt.Sub(time.Now().UTC())
	if timeTillExpire <= time.Hour*24 {
		authToken.refreshToken()
	}

}

func (authToken *AuthToken) refreshToken() {

	now := time.Now().UTC()
	authToken.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(config.SESSION_TTL)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    "untrashapi",
	}

}
