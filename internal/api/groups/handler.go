package groups

import (
	"untrashapi/internal/api"
)

type Handler struct {
	*api.Handler
}
