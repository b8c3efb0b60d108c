// One-shot reset for the rolling point counters, run by an external
// scheduler: -weekly every Monday, -monthly on the first of the month. Medals
// are keyed by period and survive resets.
package main

import (
	"context"
	"flag"
	"untrashapi/internal/store/mongostore"
	"untrashapi/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {

	weekly := flag.Bool("weekly", false, "reset weekly counters")
	monthly := flag.Bool("monthly", false, "reset monthly counters")
	flag.Parse()

	ctx := context.Background()

	logger, err := zap.NewDevelopment(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if !*weekly && !*monthly {
		logger.Fatal("nothing to do, pass -weekly and/or -monthly")
	}

	// init mongo
	mongoServerAPI := options.ServerAPI(options.ServerAPIVersion1)
	mongoOpts := options.Client().ApplyURI(config.VAR.MONGO_URI).SetServerAPIOptions(mongoServerAPI)
	mongoCli, err := mongo.Connect(mongoOpts)
	if err != nil {
		logger.Fatal("mongo connect failed", zap.Error(err))
	}
	defer func() {
		if err = mongoCli.Disconnect(ctx); err != nil {
			logger.Error("mongo disconnect failed", zap.Error(err))
		}
	}()
	if err := mongoCli.Ping(ctx, readpref.Primary()); err != nil {
		logger.Fatal("mongo ping failed", zap.Error(err))
	}

	store := mongostore.NewStore(mongoCli.Database(config.MONGO_DB))

	if err := store.ResetUserCounters(ctx, *weekly, *monthly); err != nil {
		logger.Fatal("user counter reset failed", zap.Error(err))
	}
	if *weekly {
		if err := store.ResetGroupCounters(ctx); err != nil {
			logger.Fatal("group counter reset failed", zap.Error(err))
		}
	}

	// drop stale ranking caches
	redisCli := redis.NewClient(&redis.Options{
		Addr:     config.VAR.REDIS_ADDR,
		Username: config.VAR.REDIS_USERNAME,
		Password: config.VAR.REDIS_PASSWORD,
		DB:       0,
	})
	if err := redisCli.Del(ctx, "rankings:weekly:users", "rankings:weekly:groups").Err(); err != nil {
		logger.Warn("ranking cache not dropped", zap.Error(err))
	}

	logger.Info("counters reset",
		zap.Bool("weekly", *weekly),
		zap.Bool("monthly", *monthly),
	)

}
