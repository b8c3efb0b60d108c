package trash

import (
	"untrashapi/internal/api"
)

type Handler struct {
	*api.Handler
}
