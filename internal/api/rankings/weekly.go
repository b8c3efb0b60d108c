package rankings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"untrashapi/internal/api"
	"untrashapi/internal/store"
	"untrashapi/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	usersCacheKey  = "rankings:weekly:users"
	groupsCacheKey = "rankings:weekly:groups"
)

// WeeklyUsers serves the weekly user leaderboard through a short-lived cache.
// Cache misses fall through to Mongo; cache errors degrade to the database.
func (h *Handler) WeeklyUsers(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	var ranked []store.RankedUser
	if h.cacheGet(ctx, usersCacheKey, &ranked) {
		resParams.Code = http.StatusOK
		resParams.ResData = ranked
		h.Res(resParams)
		return
	}

	ranked, err := h.Store.WeeklyUserRankings(ctx, config.RANKINGS_LIMIT)
	if err != nil {
		resParams.Code = api.StatusForErr(err)
		resParams.Err = err
		h.Res(resParams)
		return
	}
	if ranked == nil {
		ranked = []store.RankedUser{}
	}
	h.cacheSet(ctx, usersCacheKey, ranked)

	resParams.Code = http.StatusOK
	resParams.ResData = ranked
	h.Res(resParams)

}

func (h *Handler) WeeklyGroups(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	var ranked []store.RankedGroup
	if h.cacheGet(ctx, groupsCacheKey, &ranked) {
		resParams.Code = http.StatusOK
		resParams.ResData = ranked
		h.Res(resParams)
		return
	}

	ranked, err := h.Store.WeeklyGroupRankings(ctx, config.RANKINGS_LIMIT)
	if err != nil {
		resParams.Code = api.StatusForErr(err)
		resParams.Err = err
		h.Res(resParams)
		return
	}
	if ranked == nil {
		ranked = []store.RankedGroup{}
	}
	h.cacheSet(ctx, groupsCacheKey, ranked)

	resParams.Code = http.StatusOK
	resParams.ResData = ranked
	h.Res(resParams)

}

func (h *Handler) cacheGet(ctx context.Context, key string, out any) bool {

	if h.RedisCli == nil {
		return false
	}
	raw, err := h.RedisCli.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			h.Logger.Warn("rankings cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		h.Logger.Warn("rankings cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true

}

func (h *Handler) cacheSet(ctx context.Context, key string, value any) {

	if h.RedisCli == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := h.RedisCli.Set(ctx, key, raw, config.RANKINGS_CACHE_TTL).Err(); err != nil {
		h.Logger.Warn("rankings cache write failed", zap.String("key", key), zap.Error(err))
	}

}
