package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/sbilibin2017/eduai-platform/internal/backends"
	"github.com/sbilibin2017/eduai-platform/internal/facades"
	"github.com/sbilibin2017/eduai-platform/internal/handlers"
	"github.com/sbilibin2017/eduai-platform/internal/jwt"
	"github.com/sbilibin2017/eduai-platform/internal/logger"
	"github.com/sbilibin2017/eduai-platform/internal/metrics"
	"github.com/sbilibin2017/eduai-platform/internal/middlewares"
	"github.com/sbilibin2017/eduai-platform/internal/repositories"
	"github.com/sbilibin2017/eduai-platform/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/sbilibin2017/eduai-platform/docs"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// Auth modes
const (
	authModeLocal  = "local"
	authModeHosted = "hosted"
)

// Storage drivers for device-local state
const (
	storageRedis  = "redis"
	storageMemory = "memory"
)

// config is the full service configuration.
type config struct {
	AppHost     string
	AppPort     string
	LogLevel    string
	Env         string
	CORSOrigins []string

	AuthMode       string
	StorageDriver  string
	HostedTimeout  time.Duration
	PendingTTL     time.Duration
	DemoPassword   string
	BcryptCost     int
	DeviceStateTTL time.Duration

	DatabaseDSN    string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int

	KafkaBrokers []string
	KafkaTopic   string

	JWTSecret string
	JWTExp    time.Duration

	OpenRouterURL     string
	OpenRouterAPIKey  string
	OpenRouterModel   string
	OpenRouterReferer string
	OpenRouterTitle   string
	OpenRouterTimeout time.Duration
	OpenRouterRetries int

	HostedAuthURL      string
	HostedAuthKey      string
	HostedAuthRedirect string
}

// @title eduai-platform API
// @version 1.0.0
// @description Backend of the RRC EduAI dashboard: sessions, profiles, progress tracking and AI tools
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the service configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}
	getList := func(key, defaultValue string) []string {
		var out []string
		for _, v := range strings.Split(getEnv(key, defaultValue), ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
		return out
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")
	cfg.Env = getEnv("APP_ENV", "production")
	cfg.CORSOrigins = getList("CORS_ORIGINS", "*")

	// Session config
	cfg.AuthMode = strings.ToLower(getEnv("AUTH_MODE", authModeLocal))
	if cfg.AuthMode != authModeLocal && cfg.AuthMode != authModeHosted {
		return cfg, fmt.Errorf("AUTH_MODE: unsupported value %q", cfg.AuthMode)
	}
	cfg.StorageDriver = strings.ToLower(getEnv("STORAGE_DRIVER", storageMemory))
	if cfg.StorageDriver != storageRedis && cfg.StorageDriver != storageMemory {
		return cfg, fmt.Errorf("STORAGE_DRIVER: unsupported value %q", cfg.StorageDriver)
	}
	hostedTimeoutMS, err := getInt("HOSTED_SESSION_TIMEOUT_MS", "3000")
	if err != nil {
		return cfg, err
	}
	cfg.HostedTimeout = time.Duration(hostedTimeoutMS) * time.Millisecond
	pendingTTLSecond, err := getInt("OAUTH_PENDING_TTL_SECOND", "600")
	if err != nil {
		return cfg, err
	}
	cfg.PendingTTL = time.Duration(pendingTTLSecond) * time.Second
	cfg.DemoPassword = getEnv("DEMO_PASSWORD", "demo123")
	if cfg.BcryptCost, err = getInt("BCRYPT_COST", strconv.Itoa(bcrypt.DefaultCost)); err != nil {
		return cfg, err
	}
	deviceStateTTLSecond, err := getInt("DEVICE_STATE_TTL_SECOND", "0")
	if err != nil {
		return cfg, err
	}
	cfg.DeviceStateTTL = time.Duration(deviceStateTTLSecond) * time.Second

	// PostgreSQL config
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", "")
	if cfg.PGMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return cfg, err
	}
	if cfg.PGMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return cfg, err
	}
	if cfg.AuthMode == authModeHosted && cfg.DatabaseDSN == "" {
		return cfg, errors.New("DATABASE_DSN is required when AUTH_MODE=hosted")
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return cfg, err
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return cfg, err
	}
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return cfg, err
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return cfg, err
	}

	// Kafka config
	cfg.KafkaBrokers = getList("KAFKA_BROKERS", "")
	cfg.KafkaTopic = getEnv("KAFKA_USAGE_TOPIC", "tool-usage")

	// JWT config
	cfg.JWTSecret = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	jwtExpSecond, err := getInt("JWT_EXP_SECOND", strconv.Itoa(int(jwt.DefaultExpiration/time.Second)))
	if err != nil {
		return cfg, err
	}
	cfg.JWTExp = time.Duration(jwtExpSecond) * time.Second

	// LLM config
	cfg.OpenRouterURL = getEnv("OPENROUTER_URL", facades.DefaultOpenRouterURL)
	cfg.OpenRouterAPIKey = getEnv("OPENROUTER_API_KEY", "")
	cfg.OpenRouterModel = getEnv("OPENROUTER_MODEL", facades.DefaultOpenRouterModel)
	cfg.OpenRouterReferer = getEnv("OPENROUTER_REFERER", "http://localhost:3000")
	cfg.OpenRouterTitle = getEnv("OPENROUTER_TITLE", "RRC EduAI Platform")
	llmTimeoutSecond, err := getInt("OPENROUTER_TIMEOUT_SECOND", "60")
	if err != nil {
		return cfg, err
	}
	cfg.OpenRouterTimeout = time.Duration(llmTimeoutSecond) * time.Second
	if cfg.OpenRouterRetries, err = getInt("OPENROUTER_MAX_RETRIES", "2"); err != nil {
		return cfg, err
	}

	// Hosted auth config
	cfg.HostedAuthURL = getEnv("HOSTED_AUTH_URL", "")
	cfg.HostedAuthKey = getEnv("HOSTED_AUTH_KEY", "")
	cfg.HostedAuthRedirect = getEnv("HOSTED_AUTH_REDIRECT_URL", "http://localhost:3000/auth/callback")
	if cfg.AuthMode == authModeHosted && cfg.HostedAuthURL == "" {
		return cfg, errors.New("HOSTED_AUTH_URL is required when AUTH_MODE=hosted")
	}

	return cfg, nil
}

// userStore joins the read and write user repositories.
type userStore struct {
	*repositories.UserReadRepository
	*repositories.UserWriteRepository
}

// run initializes the logger, storage, upstream clients and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel, cfg.Env); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	log := logger.Log
	defer log.Sync()
	log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := metrics.NewProm(reg)

	// Device-local storage
	var device services.DeviceStore
	var kv backends.KeyValueStore
	switch cfg.StorageDriver {
	case storageRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			PoolSize:     cfg.RedisPoolSize,
			MinIdleConns: cfg.RedisMinIdleConns,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis connection error: %w", err)
		}
		defer rdb.Close()
		store := repositories.NewRedisStore(rdb, "eduai:", cfg.DeviceStateTTL)
		device, kv = store, store
	default:
		log.Warn("Using in-memory storage, device state is lost on restart")
		store := repositories.NewMemoryStore()
		device, kv = store, store
	}

	// Connect to PostgreSQL
	var db *sqlx.DB
	if cfg.DatabaseDSN != "" {
		var err error
		db, err = sqlx.ConnectContext(ctx, "pgx", cfg.DatabaseDSN)
		if err != nil {
			return fmt.Errorf("postgres connection error: %w", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(cfg.PGMaxOpenConns)
		db.SetMaxIdleConns(cfg.PGMaxIdleConns)
		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("postgres ping failed: %w", err)
		}
		if err := repositories.EnsureSchema(ctx, db); err != nil {
			return fmt.Errorf("schema setup failed: %w", err)
		}
	}

	// Usage events
	var writer services.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		kw := &kafka.Writer{
			Addr:                   kafka.TCP(cfg.KafkaBrokers...),
			Topic:                  cfg.KafkaTopic,
			Balancer:               &kafka.Hash{},
			Async:                  true,
			AllowAutoTopicCreation: true,
		}
		defer kw.Close()
		writer = kw
	} else {
		log.Warn("KAFKA_BROKERS not set, usage events are not published")
	}
	publisher := services.NewKafkaUsagePublisher(writer)

	demo, err := services.NewDemoDirectory(cfg.DemoPassword, cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("demo directory: %w", err)
	}

	// Repositories and backends
	local := backends.NewLocalBackend(kv)

	var (
		userReadRepo  *repositories.UserReadRepository
		userWriteRepo *repositories.UserWriteRepository
		sqlBackend    *backends.HostedBackend
	)
	if db != nil {
		userReadRepo = repositories.NewUserReadRepository(db)
		userWriteRepo = repositories.NewUserWriteRepository(db, middlewares.GetTxFromContext)
		sqlBackend = backends.NewHostedBackend(
			userStore{userReadRepo, userWriteRepo},
			repositories.NewProgressRepository(db, middlewares.GetTxFromContext),
			repositories.NewUsageRepository(db, middlewares.GetTxFromContext),
		)
	}

	var (
		hosted services.SessionBackend
		auth   services.HostedAuth
	)
	if cfg.AuthMode == authModeHosted {
		hosted = sqlBackend
		auth = facades.NewHostedAuthFacade(facades.HostedAuthConfig{
			BaseURL:     cfg.HostedAuthURL,
			APIKey:      cfg.HostedAuthKey,
			RedirectURL: cfg.HostedAuthRedirect,
		})
	} else {
		log.Info("AUTH_MODE=local, only demo accounts can sign in")
	}

	llm := facades.NewOpenRouterFacade(facades.OpenRouterConfig{
		URL:        cfg.OpenRouterURL,
		APIKey:     cfg.OpenRouterAPIKey,
		Model:      cfg.OpenRouterModel,
		Referer:    cfg.OpenRouterReferer,
		Title:      cfg.OpenRouterTitle,
		Timeout:    cfg.OpenRouterTimeout,
		MaxRetries: cfg.OpenRouterRetries,
	})

	// Initialize JWT service
	tokens := jwt.New(jwt.WithSecretKey(cfg.JWTSecret), jwt.WithExpiration(cfg.JWTExp))

	// Initialize services
	sessionService := services.NewSessionService(device, local, hosted, auth, demo, publisher, prom, services.SessionConfig{
		HostedTimeout: cfg.HostedTimeout,
		PendingTTL:    cfg.PendingTTL,
	})
	toolService := services.NewToolService(llm, sessionService, prom)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)
	r.Use(prom.Middleware)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))

		r.Get("/test", handlers.NewDiagnosticsHandler(map[string]string{
			"DATABASE_DSN": setOrNot(cfg.DatabaseDSN),
			"APP_ENV":      cfg.Env,
			"AUTH_MODE":    cfg.AuthMode,
		}, time.Now))

		r.Route("/session", func(r chi.Router) {
			r.With(middlewares.OptionalDeviceMiddleware(tokens)).
				Post("/device", handlers.NewIssueDeviceHandler(tokens, jwt.NewDeviceID))

			r.Group(func(r chi.Router) {
				r.Use(middlewares.DeviceMiddleware(tokens))
				r.Get("/", handlers.NewResolveSessionHandler(sessionService))
				r.Post("/login", handlers.NewLoginHandler(sessionService))
				r.Post("/register", handlers.NewRegisterHandler(sessionService))
				r.Post("/demo", handlers.NewDemoLoginHandler(sessionService))
				r.Get("/oauth/{provider}", handlers.NewBeginOAuthHandler(sessionService))
				r.Post("/oauth/callback", handlers.NewCompleteOAuthHandler(sessionService))
				r.Post("/logout", handlers.NewLogoutHandler(sessionService))
				r.Put("/profile", handlers.NewUpdateProfileHandler(sessionService))
				r.Get("/progress", handlers.NewGetProgressHandler(sessionService))
				r.Post("/progress", handlers.NewRecordCompletionHandler(sessionService))
				r.Post("/usage", handlers.NewRecordUsageHandler(sessionService))
				r.Get("/stats", handlers.NewGetStatsHandler(sessionService))
			})
		})

		r.Route("/tools", func(r chi.Router) {
			r.Use(middlewares.OptionalDeviceMiddleware(tokens))
			r.Get("/health", handlers.NewToolsHealthHandler(toolService))
			r.Post("/{tool}", handlers.NewRunToolHandler(toolService))
		})

		if db != nil {
			userService := services.NewUserService(userReadRepo, userWriteRepo, services.NewLedger(sqlBackend, publisher, prom))

			r.Get("/user/progress", handlers.NewGetUserProgressHandler(userService))
			r.Get("/user/stats", handlers.NewUserStatsHandler(userService))

			// stats reads run concurrently and stay outside the request transaction
			r.Group(func(r chi.Router) {
				r.Use(middlewares.TxMiddleware(db))
				r.Post("/auth/register", handlers.NewUserRegisterHandler(userService))
				r.Post("/auth/sync-user", handlers.NewSyncUserHandler(userService))
				r.Post("/user/progress", handlers.NewUserProgressHandler(userService))
				r.Post("/user/log-usage", handlers.NewLogUsageHandler(userService))
				r.Put("/user/update-profile", handlers.NewUserUpdateProfileHandler(userService))
			})
		} else {
			log.Warn("DATABASE_DSN not set, /api/auth and /api/user endpoints are disabled")
		}
	})

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	}

	log.Info("HTTP server stopped gracefully")
	return nil
}

func setOrNot(v string) string {
	if v == "" {
		return "Not Set"
	}
	return "Set"
}
