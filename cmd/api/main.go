package main

import (
	"context"
	"net/http"
	"strings"
	"time"
	"untrashapi/internal/api"
	"untrashapi/internal/api/admin"
	apiareas "untrashapi/internal/api/areas"
	"untrashapi/internal/api/auth"
	"untrashapi/internal/api/groups"
	"untrashapi/internal/api/heatmap"
	"untrashapi/internal/api/images"
	"untrashapi/internal/api/notifications"
	"untrashapi/internal/api/rankings"
	"untrashapi/internal/api/stats"
	"untrashapi/internal/api/trash"
	"untrashapi/internal/api/users"
	"untrashapi/internal/core/areas"
	"untrashapi/internal/core/moderation"
	"untrashapi/internal/core/points"
	"untrashapi/internal/core/reports"
	"untrashapi/internal/notify"
	"untrashapi/internal/store/mongostore"
	"untrashapi/internal/vision"
	"untrashapi/pkg/config"
	"untrashapi/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {

	ctx := context.Background()
	h := &api.Handler{}

	// init logger
	logger, err := zap.NewDevelopment(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)

	if err != nil {
		panic(err)
	}
	logger.Info("Server starting...")
	defer logger.Sync()
	h.Logger = logger

	// init validator
	h.Validate = validator.New()
	h.Validate.RegisterValidation("maxgraphemes", utils.MaxGraphemesValidator)

	h.HttpCli = &http.Client{
		Timeout: 30 * time.Second,
	}

	// init mongo
	mongoServerAPI := options.ServerAPI(options.ServerAPIVersion1)
	mongoOpts := options.Client().ApplyURI(config.VAR.MONGO_URI).SetServerAPIOptions(mongoServerAPI)
	mongoCli, err := mongo.Connect(mongoOpts)
	if err != nil {
		panic(err)
	}
	defer func() {
		if err = mongoCli.Disconnect(ctx); err != nil {
			panic(err)
		}
	}()
	if err := mongoCli.Ping(ctx, readpref.Primary()); err != nil {
		panic(err)
	}
	h.MongoDB = mongoCli.Database(config.MONGO_DB)

	// init redis
	h.RedisCli = redis.NewClient(&redis.Options{
		Addr:     config.VAR.REDIS_ADDR,
		Username: config.VAR.REDIS_USERNAME,
		Password: config.VAR.REDIS_PASSWORD,
		DB:       0,
	})

	// init aws ses
	sesCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(config.VAR.AWS_REGION))
	if err != nil {
		panic(err)
	}
	h.AWSSESCli = ses.NewFromConfig(sesCfg)

	// init r2
	cred := credentials.NewStaticCredentialsProvider(
		config.VAR.CF_R2_ACCESS_KEY,
		config.VAR.CF_R2_SECRET_KEY,
		"",
	)
	h.R2Cli = s3.New(s3.Options{
		Credentials:  cred,
		BaseEndpoint: aws.String(config.VAR.CF_R2_ENDPOINT),
		UsePathStyle: true,
		Region:       "auto",
	})

	// wire storage and services
	mongoStore := mongostore.NewStore(h.MongoDB)
	if err := mongoStore.EnsureIndexes(ctx); err != nil {
		panic(err)
	}
	h.Store = mongoStore

	oracle := &vision.Client{
		HttpCli:  h.HttpCli,
		Endpoint: config.VAR.VISION_API_URL,
		ApiKey:   config.VAR.VISION_API_KEY,
	}

	h.Ledger = points.NewLedger(h.Store, h.Store, logger)
	h.Reports = reports.NewService(h.Store, h.Ledger, oracle, logger)
	h.Areas = areas.NewService(h.Store, h.Ledger, logger)
	h.Moderation = moderation.NewService(h.Store, h.Store, h.Store, h.Ledger, logger)
	h.Notify = notify.NewService(h.Store, h.Store, h.AWSSESCli, h.RedisCli, logger)

	router := chi.NewRouter()

	// Middleware
	allowedOrigins := []string{config.ORIGIN}
	if config.VAR.CORS_ORIGINS != "" {
		allowedOrigins = strings.Split(config.VAR.CORS_ORIGINS, ",")
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Session-ID"},
		AllowCredentials: true,
	}))
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestSize(8 << 20))

	authH := &auth.Handler{Handler: h}
	trashH := &trash.Handler{Handler: h}
	areasH := &apiareas.Handler{Handler: h}
	groupsH := &groups.Handler{Handler: h}
	usersH := &users.Handler{Handler: h}
	rankingsH := &rankings.Handler{Handler: h}
	heatmapH := &heatmap.Handler{Handler: h}
	statsH := &stats.Handler{Handler: h}
	imagesH := &images.Handler{Handler: h}
	notificationsH := &notifications.Handler{Handler: h}
	adminH := &admin.Handler{Handler: h}

	// auth endpoints
	router.Get("/auth/session", authH.Session)
	router.Get("/auth/me", h.AuthMiddleware(authH.Me))
	router.Post("/auth/logout", h.AuthMiddleware(authH.Logout))

	// trash endpoints
	router.Post("/trash/report", h.AuthMiddleware(trashH.Report))
	router.Post("/trash/{reportId}/collect", h.AuthMiddleware(trashH.Collect))
	router.Get("/trash", trashH.List)
	router.Get("/trash/{reportId}", trashH.Get)

	// area endpoints
	router.Post("/areas/clean", h.AuthMiddleware(areasH.Clean))
	router.Get("/areas/active", areasH.Active)

	// group endpoints
	router.Post("/groups", h.AuthMiddleware(groupsH.Create))
	router.Get("/groups", groupsH.List)
	router.Get("/groups/{groupId}", groupsH.Get)
	router.Post("/groups/{groupId}/join", h.AuthMiddleware(groupsH.Join))
	router.Post("/groups/{groupId}/leave", h.AuthMiddleware(groupsH.Leave))
	router.Delete("/groups/{groupId}", h.AuthMiddleware(groupsH.Delete))
	router.Post("/groups/{groupId}/events", h.AuthMiddleware(groupsH.CreateEvent))
	router.Get("/groups/{groupId}/events", groupsH.ListEvents)
	router.Delete("/groups/{groupId}/events/{eventId}", h.AuthMiddleware(groupsH.DeleteEvent))
	router.Get("/events/upcoming", h.AuthMiddleware(groupsH.UpcomingEvents))

	// user endpoints
	router.Put("/users/profile", h.AuthMiddleware(usersH.UpdateProfile))
	router.Get("/users/{userId}", usersH.Get)

	// ranking endpoints
	router.Get("/rankings/users", rankingsH.WeeklyUsers)
	router.Get("/rankings/groups", rankingsH.WeeklyGroups)

	// map and stats endpoints
	router.Get("/heatmap", heatmapH.Get)
	router.Get("/stats/weekly", statsH.Weekly)

	// image endpoints
	router.Post("/images/upload", h.AuthMiddleware(imagesH.Upload))

	// notification endpoints
	router.Get("/notifications", h.AuthMiddleware(notificationsH.List))
	router.Get("/notifications/settings", h.AuthMiddleware(notificationsH.GetSettings))
	router.Put("/notifications/settings", h.AuthMiddleware(notificationsH.UpdateSettings))

	// admin endpoints
	router.Get("/admin/users", h.AdminMiddleware(adminH.ListUsers))
	router.Post("/admin/users/{userId}/ban", h.AdminMiddleware(adminH.BanUser))
	router.Post("/admin/users/{userId}/unban", h.AdminMiddleware(adminH.UnbanUser))
	router.Post("/admin/users/{userId}/reset-points", h.AdminMiddleware(adminH.ResetPoints))
	router.Delete("/admin/trash/{reportId}", h.AdminMiddleware(adminH.DeleteTrash))
	router.Put("/admin/trash/{reportId}", h.AdminMiddleware(adminH.UpdateTrash))
	router.Get("/admin/collections/pending", h.AdminMiddleware(adminH.PendingCollections))
	router.Post("/admin/collections/{reportId}/approve", h.AdminMiddleware(adminH.ApproveCollection))
	router.Post("/admin/collections/{reportId}/reject", h.AdminMiddleware(adminH.RejectCollection))
	router.Get("/admin/areas/pending", h.AdminMiddleware(adminH.PendingAreas))
	router.Post("/admin/areas/{areaId}/approve", h.AdminMiddleware(adminH.ApproveArea))
	router.Post("/admin/areas/{areaId}/reject", h.AdminMiddleware(adminH.RejectArea))
	router.Get("/admin/pending-count", h.AdminMiddleware(adminH.PendingCount))

	logger.Info("Server running on port 8080")
	http.ListenAndServe(":8080", router)

}
