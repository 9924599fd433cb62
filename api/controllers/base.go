package controllers

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"

	"Yatube/api/auth"
	"Yatube/api/blog"
	"Yatube/api/cache"
	"Yatube/api/config"
	"Yatube/api/mailer"
	"Yatube/api/middlewares"
	"Yatube/api/models"
	"Yatube/api/storage"
	"Yatube/api/templates"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Server struct {
	DB        *gorm.DB
	Router    *gin.Engine
	Config    config.Config
	Blog      *blog.Service
	Cache     *cache.Cache
	Tokens    *auth.Tokens
	Media     storage.Store
	Mailer    *mailer.Mailer
	Templates *template.Template

	limiter      *middlewares.RateLimiter
	loginLimiter *middlewares.RateLimiter
}

// ===============================
// ADMIN SEEDING
// ===============================
func seedAdmin(db *gorm.DB, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("[seedAdmin] ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin creation.")
		return nil
	}
	username := cfg.AdminUsername
	if username == "" {
		username = strings.Split(cfg.AdminEmail, "@")[0]
	}

	var existing models.User
	err := db.Where("username = ?", username).First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("[seedAdmin] Creating initial admin:", username)

		admin := models.User{
			Username: username,
			Email:    cfg.AdminEmail,
			Password: cfg.AdminPassword,
			IsAdmin:  true,
		}
		admin.Prepare()
		if msgs := admin.Validate(""); len(msgs) > 0 {
			log.Printf("[seedAdmin] validation failed: %+v\n", msgs)
			return nil
		}
		if _, err := admin.SaveUser(db); err != nil {
			log.Printf("[seedAdmin] failed to create admin: %v\n", err)
			return err
		}
		return nil
	}

	if err == nil && !existing.IsAdmin {
		log.Println("[seedAdmin] Ensuring admin flag is set for:", username)
		return db.Model(&existing).Update("is_admin", true).Error
	}
	return err
}

// ===============================
// DATABASE
// ===============================
func OpenDB(cfg config.Config) (*gorm.DB, error) {
	if cfg.DBDriver == "sqlite" {
		return gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
	}

	var dsn string
	if cfg.IsProduction() && cfg.DatabaseURL != "" {
		dsn = cfg.DatabaseURL
		if !strings.Contains(dsn, "sslmode=") {
			if strings.Contains(dsn, "?") {
				dsn += "&sslmode=require"
			} else {
				dsn += "?sslmode=require"
			}
		}
	} else {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
		)
	}
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return err
	}
	if db.Dialector.Name() == "postgres" {
		if err := ensureFollowConstraints(db); err != nil {
			log.Printf("warning: follow constraints not ensured: %v", err)
		}
	}
	return nil
}

func ensureFollowConstraints(db *gorm.DB) error {
	var count int64
	if err := db.Raw(
		"SELECT COUNT(1) FROM pg_constraint WHERE conname = ?",
		"follows_no_self_follow",
	).Scan(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		if err := db.Exec(
			"ALTER TABLE follows ADD CONSTRAINT follows_no_self_follow CHECK (user_id <> author_id)",
		).Error; err != nil {
			return err
		}
	}
	return nil
}

// ===============================
// SERVER INITIALIZATION
// ===============================
func (server *Server) Initialize(cfg config.Config) error {
	server.Config = cfg

	db, err := OpenDB(cfg)
	if err != nil {
		return fmt.Errorf("cannot connect to %s: %w", cfg.DBDriver, err)
	}
	server.DB = db

	if err := Migrate(server.DB); err != nil {
		return fmt.Errorf("error migrating database: %w", err)
	}

	// Redis is optional: without it the index page is rendered on every request.
	if c, err := cache.FromConfig(cfg); err != nil {
		log.Printf("warning: could not connect to redis: %v", err)
	} else {
		server.Cache = c
	}

	if err := seedAdmin(server.DB, cfg); err != nil {
		log.Printf("error seeding admin user: %v\n", err)
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN, Environment: cfg.AppEnv}); err != nil {
			log.Printf("warning: sentry disabled: %v", err)
		}
	}

	server.Media = storage.FromConfig(context.Background(), cfg)
	server.Mailer = mailer.New(cfg)

	server.Setup()
	return nil
}

// Setup builds the router around the already assigned DB and collaborators.
func (server *Server) Setup() {
	if server.Config.PostsPerPage == 0 {
		server.Config.PostsPerPage = config.DefaultPostsPerPage
	}
	if server.Config.IndexCacheTTL == 0 {
		server.Config.IndexCacheTTL = config.DefaultIndexCacheTTL
	}
	if server.Config.SessionTTL == 0 {
		server.Config.SessionTTL = config.DefaultSessionTTL
	}
	if server.Config.APISecret == "" {
		log.Println("warning: API_SECRET not set, using an insecure development secret")
		server.Config.APISecret = "yatube-dev-secret"
	}
	if server.Media == nil {
		server.Media = storage.NewLocalStore(server.Config.MediaRoot, server.Config.MediaURL)
	}

	server.Blog = blog.NewService(server.DB, server.Config.PostsPerPage)
	server.Tokens = auth.NewTokens(server.Config.APISecret, server.Config.SessionTTL)
	server.Templates = templates.MustParse()
	server.limiter = middlewares.NewGeneralLimiter()
	server.loginLimiter = middlewares.NewLoginLimiter()

	server.Router = gin.Default()
	server.Router.SetHTMLTemplate(server.Templates)
	server.Router.Use(middlewares.Metrics())
	server.Router.Use(server.limiter.Middleware())
	server.Router.Use(middlewares.Session(server.DB, server.Tokens))
	server.initializeRoutes()
}

func (server *Server) Run(addr string) {
	go server.sweepVisitors(10 * time.Minute)
	log.Printf("Listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, server.Router))
}

func (server *Server) sweepVisitors(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for range ticker.C {
		server.limiter.Cleanup(every)
		server.loginLimiter.Cleanup(every)
	}
}
