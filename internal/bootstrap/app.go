// Package bootstrap loads configuration and assembles the application.
package bootstrap

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	httpHandler "community-board/internal/handler/http"
	gormpersistence "community-board/internal/infra/persistence/gorm"
	memorysession "community-board/internal/infra/session/memory"
	redissession "community-board/internal/infra/session/redis"
	"community-board/internal/infra/setup"
	diskstore "community-board/internal/infra/storage/disk"
	"community-board/internal/middleware"
	"community-board/internal/repository"
	"community-board/internal/service"
	"community-board/internal/tasks"
	"community-board/internal/worker"
)

// Config holds everything loaded from the environment (or a .env file).
type Config struct {
	ServerPort        string
	DBPath            string
	UploadDir         string
	AllowedExtensions []string
	MaxUploadBytes    int64 // 0 disables the size check
	SessionSecret     string
	SessionTTLHours   int
	RedisAddr         string // empty means no redis: memory sessions, no rate limit, no sweep
	RedisPassword     string
	RedisDB           int
	KeyPrefix         string
	LogLevel          string
	AppEnv            string
	RateLimitMax      int
	RateLimitWindow   time.Duration
	SweepInterval     time.Duration
	SweepOlderThan    time.Duration
}

// LoadConfig reads the environment, applying documented defaults. The only
// secret, SESSION_SECRET, is generated when absent: sessions then do not
// survive a restart, which is acceptable for development and logged loudly.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // .env is optional

	cfg := &Config{
		ServerPort:      os.Getenv("SERVER_PORT"),
		DBPath:          os.Getenv("DB_PATH"),
		UploadDir:       os.Getenv("UPLOAD_DIR"),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		KeyPrefix:       os.Getenv("REDIS_KEY_PREFIX"),
		LogLevel:        os.Getenv("LOG_LEVEL"),
		AppEnv:          os.Getenv("APP_ENV"),
		SessionTTLHours: 24,
		RateLimitMax:    100,
		RateLimitWindow: 1 * time.Second,
		SweepInterval:   1 * time.Hour,
		SweepOlderThan:  1 * time.Hour,
	}

	cfg.RedisDB, _ = strconv.Atoi(os.Getenv("REDIS_DB"))

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "community.db"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "static/uploads"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "cb:"
	}

	if ttl := os.Getenv("SESSION_TTL_HOURS"); ttl != "" {
		hours, err := strconv.Atoi(ttl)
		if err != nil || hours <= 0 {
			return nil, fmt.Errorf("invalid SESSION_TTL_HOURS %q", ttl)
		}
		cfg.SessionTTLHours = hours
	}

	cfg.AllowedExtensions = []string{"png", "jpg", "jpeg", "gif", "webp"}
	if exts := os.Getenv("ALLOWED_EXTENSIONS"); exts != "" {
		cfg.AllowedExtensions = strings.Split(exts, ",")
	}

	cfg.MaxUploadBytes = 5 << 20 // 5 MiB
	if raw := os.Getenv("MAX_UPLOAD_MB"); raw != "" {
		mb, err := strconv.Atoi(raw)
		if err != nil || mb < 0 {
			return nil, fmt.Errorf("invalid MAX_UPLOAD_MB %q", raw)
		}
		cfg.MaxUploadBytes = int64(mb) << 20
	}

	if cfg.SessionSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
		cfg.SessionSecret = secret
		logrus.Warn("SESSION_SECRET not set; generated a random per-process secret, sessions will not survive a restart")
	}

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", cfg.LogLevel)
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// App holds the assembled components.
type App struct {
	Config         *Config
	Log            *logrus.Logger
	DB             *gorm.DB
	RedisClient    *redis.Client // nil when redis is not configured
	AsynqClient    *asynq.Client // nil when redis is not configured
	AsynqServer    *worker.WorkerServer
	HttpServer     *http.Server
	redisClientOpt asynq.RedisClientOpt
	scheduler      *asynq.Scheduler
}

// NewApp loads config and wires every component. Redis-backed pieces
// (sessions in redis, rate limiting, the upload sweep) activate only when
// REDIS_ADDR is configured; without it the app is fully self-contained.
func NewApp() (*App, error) {
	// 1. Configuration
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return nil, err
	}

	// 2. Logger
	log := logrus.New()
	if cfg.AppEnv == "production" {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	logLevel, _ := logrus.ParseLevel(cfg.LogLevel)
	log.SetLevel(logLevel)
	log.SetOutput(os.Stdout)
	log.Info("Configuration loaded successfully")

	// 3. Infrastructure
	db, err := setup.InitDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to init DB: %w", err)
	}
	log.Info("Database initialized")

	if err := setup.MigrateDB(db); err != nil {
		return nil, fmt.Errorf("failed to migrate DB: %w", err)
	}
	log.Info("Database migrated")

	fileStore, err := diskstore.NewDiskFileStore(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("failed to init file store: %w", err)
	}
	log.Infof("Upload directory ready at %s", cfg.UploadDir)

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = setup.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("failed to init Redis: %w", err)
		}
		log.Info("Redis client initialized")
	} else {
		log.Info("No REDIS_ADDR configured; using in-memory sessions")
	}

	// 4. Repositories
	userRepo := gormpersistence.NewGormUserRepository(db)
	postRepo := gormpersistence.NewGormPostRepository(db)
	commentRepo := gormpersistence.NewGormCommentRepository(db)
	var sessionRepo repository.SessionRepository
	if redisClient != nil {
		sessionRepo = redissession.NewRedisSessionRepository(redisClient, cfg.KeyPrefix)
	} else {
		sessionRepo = memorysession.NewMemorySessionRepository()
	}
	log.Info("Repositories initialized")

	// 5. Services
	authService, err := service.NewAuthService(userRepo, sessionRepo, cfg.SessionSecret, cfg.SessionTTLHours)
	if err != nil {
		return nil, fmt.Errorf("failed to create AuthService: %w", err)
	}
	uploadPolicy := service.NewUploadPolicy(cfg.AllowedExtensions, cfg.MaxUploadBytes)
	postService := service.NewPostService(postRepo, commentRepo, fileStore, uploadPolicy)
	log.Info("Services initialized")

	// 6. Handlers
	authHandler := httpHandler.NewAuthHandler(authService)
	postHandler := httpHandler.NewPostHandler(postService)
	log.Info("Handlers initialized")

	// 7. Worker (redis only)
	var (
		asynqClient    *asynq.Client
		workerServer   *worker.WorkerServer
		redisClientOpt asynq.RedisClientOpt
	)
	if redisClient != nil {
		redisClientOpt = asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}
		asynqClient = asynq.NewClient(redisClientOpt)
		workerServer = worker.NewWorkerServer(redisClientOpt, postRepo, fileStore, log)
		log.Info("Worker server initialized")
	}

	// 8. Router
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(log))
	if redisClient != nil {
		router.Use(middleware.RateLimit(redisClient, cfg.RateLimitMax, cfg.RateLimitWindow))
	}

	sessionGate := middleware.Auth(authService)

	router.GET("/", authHandler.Entry)
	router.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "pong"}) })

	router.POST("/signup", authHandler.Signup)
	router.POST("/login", authHandler.Login)
	router.GET("/logout", authHandler.Logout)

	// Listings are open; posting requires a session.
	router.GET("/lostfound", postHandler.ListLostFound)
	router.GET("/complaint", postHandler.ListComplaints)
	router.GET("/help", postHandler.ListHelp)
	router.GET("/comments", postHandler.ListComments)
	router.POST("/lostfound", sessionGate, postHandler.CreateLostFound)
	router.POST("/complaint", sessionGate, postHandler.CreateComplaint)
	router.POST("/help", sessionGate, postHandler.CreateHelp)
	router.POST("/comments", sessionGate, postHandler.CreateComment)

	// Stored attachments are served straight from the upload directory.
	router.Static("/uploads", cfg.UploadDir)
	log.Info("Router setup complete")

	// 9. HTTP server
	httpServer := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	app := &App{
		Config:         cfg,
		Log:            log,
		DB:             db,
		RedisClient:    redisClient,
		AsynqClient:    asynqClient,
		AsynqServer:    workerServer,
		HttpServer:     httpServer,
		redisClientOpt: redisClientOpt,
	}
	log.Info("Application assembled successfully")
	return app, nil
}

// Start launches the background routines and the HTTP server.
func (a *App) Start() {
	if a.AsynqServer != nil {
		go a.AsynqServer.Start()
		a.Log.Info("Worker server routine started")
		a.registerPeriodicTasks()
	}

	go func() {
		a.Log.Infof("HTTP server starting to listen on %s", a.HttpServer.Addr)
		if err := a.HttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Log.Fatalf("Failed to start HTTP server: %v", err)
		}
		a.Log.Info("HTTP server stopped listening.")
	}()
}

func (a *App) registerPeriodicTasks() {
	a.scheduler = asynq.NewScheduler(a.redisClientOpt, &asynq.SchedulerOpts{})

	payload, err := tasks.NewUploadSweepTask(a.Config.SweepOlderThan)
	if err != nil {
		a.Log.Errorf("Failed to create upload sweep task payload: %v", err)
		return
	}
	task := asynq.NewTask(tasks.TypeUploadSweep, payload)

	schedule := fmt.Sprintf("@every %s", a.Config.SweepInterval)
	entryID, err := a.scheduler.Register(schedule, task, asynq.Queue("default"))
	if err != nil {
		a.Log.Errorf("Could not register periodic upload sweep task: %v", err)
		return
	}
	a.Log.Infof("Periodic upload sweep registered with schedule '%s' (EntryID: %s)", schedule, entryID)

	go func() {
		a.Log.Info("Asynq scheduler starting...")
		if err := a.scheduler.Run(); err != nil {
			if !errors.Is(err, asynq.ErrServerClosed) {
				a.Log.Errorf("Asynq scheduler Run() failed: %v", err)
			} else {
				a.Log.Info("Asynq scheduler stopped.")
			}
		}
	}()
}

// Shutdown stops every component gracefully.
func (a *App) Shutdown() {
	a.Log.Info("Shutting down application...")

	if a.scheduler != nil {
		a.scheduler.Shutdown()
	}
	if a.AsynqServer != nil {
		a.AsynqServer.Shutdown()
	}

	a.Log.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.HttpServer.Shutdown(ctx); err != nil {
		a.Log.Errorf("Error shutting down HTTP server: %v", err)
	} else {
		a.Log.Info("HTTP server shut down gracefully.")
	}

	if a.AsynqClient != nil {
		if err := a.AsynqClient.Close(); err != nil {
			a.Log.Errorf("Error closing Asynq client: %v", err)
		}
	}
	if a.RedisClient != nil {
		if err := a.RedisClient.Close(); err != nil {
			a.Log.Errorf("Error closing Redis connection: %v", err)
		}
	}

	a.Log.Info("Application shutdown complete.")
}

// LoggerMiddleware logs one structured line per request, levelled by status
// class.
func LoggerMiddleware(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()
		latency := time.Since(startTime)
		statusCode := c.Writer.Status()
		path := c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			path = path + "?" + c.Request.URL.RawQuery
		}
		errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String()

		entry := log.WithFields(logrus.Fields{
			"status_code": statusCode,
			"latency_ms":  latency.Milliseconds(),
			"client_ip":   c.ClientIP(),
			"method":      c.Request.Method,
			"path":        path,
		})

		switch {
		case errorMessage != "":
			entry.Error(errorMessage)
		case statusCode >= 500:
			entry.Error("Server error")
		case statusCode >= 400:
			entry.Warn("Client error")
		default:
			entry.Info("Request handled")
		}
	}
}
