package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"untrashapi/internal/core"
	"untrashapi/internal/core/areas"
	"untrashapi/internal/core/moderation"
	"untrashapi/internal/core/points"
	"untrashapi/internal/core/reports"
	"untrashapi/internal/notify"
	"untrashapi/internal/store"
	"untrashapi/pkg/schemas"
	"untrashapi/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Logger    *zap.Logger
	Validate  *validator.Validate
	HttpCli   *http.Client
	MongoDB   *mongo.Database
	RedisCli  *redis.Client
	AWSSESCli *ses.Client
	R2Cli     *s3.Client

	Store      store.Store
	Ledger     *points.Ledger
	Reports    *reports.Service
	Areas      *areas.Service
	Moderation *moderation.Service
	Notify     *notify.Service
}

type ResParams struct {
	W       http.ResponseWriter
	R       *http.Request
	Code    int
	Err     error
	ReqData any // for logs
	ResData any
}

type ctxKey int

const userCtxKey ctxKey = 0

// AuthMiddleware resolves the session token to a user document. Banned and
// deleted users are rejected here, so downstream handlers never see them.
func (h *Handler) AuthMiddleware(f http.HandlerFunc) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		resParams := &ResParams{W: w, R: r}
		authToken, err := utils.ValidateAuthToken(r)
		if err != nil {
			resParams.Err = err
			resParams.Code = http.StatusUnauthorized
			h.Res(resParams)
			return
		}
		user, err := h.Store.GetUser(r.Context(), authToken.Uid)
		if err != nil {
			resParams.Err = err
			resParams.Code = http.StatusUnauthorized
			if !errors.Is(err, core.ErrNotFound) {
				resParams.Code = http.StatusInternalServerError
			}
			h.Res(resParams)
			return
		}
		if user.IsBanned {
			resParams.Err = errors.New("user is banned")
			resParams.Code = http.StatusUnauthorized
			h.Res(resParams)
			return
		}
		ctx := context.WithValue(r.Context(), userCtxKey, user)
		f(w, r.WithContext(ctx))
	}

}

// AdminMiddleware wraps AuthMiddleware and additionally requires is_admin.
func (h *Handler) AdminMiddleware(f http.HandlerFunc) http.HandlerFunc {

	return h.AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r.Context())
		if user == nil || !user.IsAdmin {
			h.Res(&ResParams{
				W: w, R: r,
				Code: http.StatusForbidden,
				Err:  core.ErrForbidden,
			})
			return
		}
		f(w, r)
	})

}

// CurrentUser returns the authenticated user placed in the context by
// AuthMiddleware, or nil outside it.
func CurrentUser(ctx context.Context) *schemas.User {

	user, _ := ctx.Value(userCtxKey).(*schemas.User)
	return user

}

// StatusForErr maps the core error taxonomy onto HTTP status codes.
func StatusForErr(err error) int {

	switch {
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, core.ErrAlreadyCollected),
		errors.Is(err, core.ErrNotCollected),
		errors.Is(err, core.ErrAlreadyVerified),
		errors.Is(err, core.ErrAlreadyApproved),
		errors.Is(err, core.ErrAlreadyMember),
		errors.Is(err, core.ErrOwnerCannotLeave):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}

}

func (h *Handler) Res(params *ResParams) {

	if params.Err != nil && errors.Is(params.Err, context.Canceled) {
		return
	}

	pc, file, line, ok := runtime.Caller(1)
	var caller string
	if !ok {
		caller = "unknown"
	}
	fn := runtime.FuncForPC(pc)
	caller = fmt.Sprintf("%s:%d (%s)", file, line, fn.Name())

	// handle logging
	if params.Code >= 500 {
		h.Logger.Error("Error at "+caller,
			zap.Error(params.Err),
			zap.Any("request_data", params.ReqData),
		)
	} else if params.Code >= 400 {
		h.Logger.Warn("Warning at "+caller,
			zap.Error(params.Err),
			zap.Any("request_data", params.ReqData),
		)
	}

	render.Status(params.R, params.Code)
	render.JSON(params.W, params.R, params.ResData)

}
