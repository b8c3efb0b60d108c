package notifications

import (
	"untrashapi/internal/api"
)

type Handler struct {
	*api.Handler
}
