package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPostsPerPage  = 10
	DefaultIndexCacheTTL = 20 * time.Second
	DefaultSessionTTL    = 14 * 24 * time.Hour
)

// Config is the process configuration, read once from the environment.
type Config struct {
	AppEnv string
	Port   string

	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	SQLitePath  string

	RedisURL      string
	RedisAddr     string
	RedisUsername string
	RedisPassword string
	IndexCacheTTL time.Duration

	PostsPerPage int

	APISecret  string
	SessionTTL time.Duration

	MediaRoot string
	MediaURL  string
	S3Bucket  string
	AWSRegion string

	SendgridAPIKey string
	MailFrom       string
	SiteURL        string

	SentryDSN string

	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// FromEnv reads the configuration. Missing values fall back to local
// development defaults.
func FromEnv() Config {
	port := getenv("PORT", "")
	if port == "" {
		port = getenv("API_PORT", "8888")
	}

	bucket := strings.TrimSpace(os.Getenv("S3_BUCKET"))
	// tolerate "bucket/prefix" values
	bucket = strings.SplitN(bucket, "/", 2)[0]

	return Config{
		AppEnv: getenv("APP_ENV", "development"),
		Port:   strings.TrimSpace(port),

		DBDriver:    strings.ToLower(getenv("DB_DRIVER", "postgres")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getenv("DB_HOST", "localhost"),
		DBPort:      getenv("DB_PORT", "5432"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      getenv("DB_NAME", "yatube"),
		SQLitePath:  getenv("SQLITE_PATH", "yatube.db"),

		RedisURL:      os.Getenv("REDIS_URL"),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		IndexCacheTTL: getDuration("INDEX_CACHE_TTL", DefaultIndexCacheTTL),

		PostsPerPage: getInt("POSTS_PER_PAGE", DefaultPostsPerPage),

		APISecret:  os.Getenv("API_SECRET"),
		SessionTTL: getDuration("SESSION_TTL", DefaultSessionTTL),

		MediaRoot: getenv("MEDIA_ROOT", "media"),
		MediaURL:  getenv("MEDIA_URL", "/media/"),
		S3Bucket:  bucket,
		AWSRegion: getenv("AWS_REGION", "us-east-2"),

		SendgridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		MailFrom:       getenv("MAIL_FROM", "noreply@yatube.local"),
		SiteURL:        strings.TrimRight(getenv("SITE_URL", "http://localhost:8888"), "/"),

		SentryDSN: os.Getenv("SENTRY_DSN"),

		AdminUsername: strings.TrimSpace(os.Getenv("ADMIN_USERNAME")),
		AdminEmail:    strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))),
		AdminPassword: strings.TrimSpace(os.Getenv("ADMIN_PASSWORD")),
	}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

// getDuration accepts Go durations ("30s") or a bare number of seconds.
func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
