package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ORIGIN   = "http://localhost:3000"
	MONGO_DB = "untrash"

	// point policy
	REPORT_REWARD             = 5
	COLLECT_REWARD_VERIFIED   = 25
	COLLECT_REWARD_UNVERIFIED = 15
	AREA_RATE_PER_100M2       = 2
	AREA_MIN_REWARD           = 10

	// windows
	CLEAN_ZONE_TTL        = 7 * 24 * time.Hour
	COLLECTED_FEED_WINDOW = 7 * 24 * time.Hour
	SESSION_TTL           = 7 * 24 * time.Hour

	ORACLE_TIMEOUT     = 20 * time.Second
	RANKINGS_CACHE_TTL = time.Minute
	EMAIL_COOLDOWN     = 2 * time.Minute

	IMAGE_BUCKET   = "untrash-images"
	SES_SENDER     = "no-reply@untrash.app"
	DEFAULT_LIMIT  = 100
	RANKINGS_LIMIT = 50
)

type EnvVars struct {
	MONGO_URI        string
	REDIS_ADDR       string
	REDIS_USERNAME   string
	REDIS_PASSWORD   string
	JWT_SECRET       string
	IDENTITY_URL     string
	VISION_API_URL   string
	VISION_API_KEY   string
	CF_R2_ACCESS_KEY string
	CF_R2_SECRET_KEY string
	CF_R2_ENDPOINT   string
	IMAGE_CDN_BASE   string
	ADMIN_EMAILS     string
	CORS_ORIGINS     string
	AWS_REGION       string
}

var VAR *EnvVars

func init() {

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded")
	}

	VAR = &EnvVars{
		MONGO_URI:        os.Getenv("MONGO_URI"),
		REDIS_ADDR:       os.Getenv("REDIS_ADDR"),
		REDIS_USERNAME:   os.Getenv("REDIS_USERNAME"),
		REDIS_PASSWORD:   os.Getenv("REDIS_PASSWORD"),
		JWT_SECRET:       os.Getenv("JWT_SECRET"),
		IDENTITY_URL:     os.Getenv("IDENTITY_URL"),
		VISION_API_URL:   os.Getenv("VISION_API_URL"),
		VISION_API_KEY:   os.Getenv("VISION_API_KEY"),
		CF_R2_ACCESS_KEY: os.Getenv("CF_R2_ACCESS_KEY"),
		CF_R2_SECRET_KEY: os.Getenv("CF_R2_SECRET_KEY"),
		CF_R2_ENDPOINT:   os.Getenv("CF_R2_ENDPOINT"),
		IMAGE_CDN_BASE:   os.Getenv("IMAGE_CDN_BASE"),
		ADMIN_EMAILS:     os.Getenv("ADMIN_EMAILS"),
		CORS_ORIGINS:     os.Getenv("CORS_ORIGINS"),
		AWS_REGION:       os.Getenv("AWS_REGION"),
	}

}

// IsAdminEmail reports whether an email is provisioned as an admin through
// the ADMIN_EMAILS env var (comma separated).
func IsAdminEmail(email string) bool {

	for _, e := range strings.Split(VAR.ADMIN_EMAILS, ",") {
		if e != "" && strings.EqualFold(strings.TrimSpace(e), email) {
			return true
		}
	}
	return false

}
