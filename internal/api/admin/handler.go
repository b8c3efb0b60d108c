package admin

import (
	"untrashapi/internal/api"
)

// Handler serves the moderation surface. Every route is mounted behind
// AdminMiddleware.
type Handler struct {
	*api.Handler
}
