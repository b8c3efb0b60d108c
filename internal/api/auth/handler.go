package auth

import (
	"untrashapi/internal/api"
)

type Handler struct {
	*api.Handler
}
