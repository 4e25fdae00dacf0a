package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/medibook/backend/internal/application/auth"
	"github.com/medibook/backend/internal/application/booking"
	"github.com/medibook/backend/internal/config"
	"github.com/medibook/backend/internal/infrastructure/db/postgres"
	"github.com/medibook/backend/internal/infrastructure/memory"
	rabbitmq_pub "github.com/medibook/backend/internal/infrastructure/messaging/rabbitmq"
	"github.com/medibook/backend/internal/infrastructure/redis"
	"github.com/medibook/backend/internal/infrastructure/security"
	"github.com/medibook/backend/internal/logger"
	http_handlers "github.com/medibook/backend/internal/transport/http/handlers"
	"github.com/medibook/backend/internal/transport/http/middleware"
	"github.com/medibook/backend/internal/transport/http/response"
	"github.com/medibook/backend/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing.
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(addr string) (DBCloser, error)

	NewRedis func(addr, password string, db int) RedisClient

	NewPublisher func(rabbitURL string) (Publisher, error)

	NewRouter func(router.Deps) (http.Handler, error)
}

type DBCloser interface {
	Close() error
}

type RedisClient interface {
	Ping(ctx context.Context) error
	Close() error
}

type Publisher interface{}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 1) db
	db, err := deps.NewDB(cfg.DBAddr)
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = db.Close() },
	}

	sqlDB, ok := db.(*sql.DB)
	if !ok {
		runCleanup(cleanupFns)
		return nil, nil, errors.New("bootstrap: NewDB did not return *sql.DB")
	}

	if err := postgres.EnsureSchema(context.Background(), sqlDB); err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 2) repos
	userRepo := postgres.NewUserRepo(sqlDB)
	doctorRepo := postgres.NewDoctorRepo(sqlDB)
	apptRepo := postgres.NewAppointmentRepo(sqlDB)

	// 3) redis (best-effort)
	var redisCli RedisClient
	if deps.NewRedis != nil && cfg.RedisAddr != "" {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; cache disabled")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			redisCli = c
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}

	// wrap repo with the token-version cache
	var users auth.UserRepo = userRepo
	if rc, ok := redisCli.(*redis.Client); ok {
		users = redis.NewCachedUserRepo(userRepo, rc, cfg.TokenVersionCacheTTL)
	}

	// 4) publisher
	pub, err := deps.NewPublisher(cfg.RabbitURL)
	if err != nil {
		if cfg.Env == "dev" {
			logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using noop publisher")
			pub = memory.NewNoopPublisher()
		} else {
			runCleanup(cleanupFns)
			return nil, nil, err
		}
	}

	eventPub, ok := pub.(booking.EventPublisher)
	if !ok {
		runCleanup(cleanupFns)
		return nil, nil, errors.New("bootstrap: publisher does not implement booking.EventPublisher")
	}

	if c, ok := pub.(interface{ Close() error }); ok {
		cleanupFns = append(cleanupFns, func() { _ = c.Close() })
	}

	// 5) security
	logger.Logger.Info().Str("issuer", cfg.JWTIssuer).Msg("initializing jwt signer")
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	signer := security.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer)

	// seed: doctor catalog always, dev accounts only in dev
	if err := postgres.SeedDoctors(context.Background(), doctorRepo); err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}
	if cfg.Env == "dev" {
		postgres.SeedUsers(context.Background(), userRepo, hasher)
	}

	// 6) services
	authSvc := auth.NewService(users, hasher, signer, auth.Config{
		AccessTTL: cfg.AccessTokenTTL,
	})

	authSvc = authSvc.WithAudit(func(action string, fields map[string]string) {
		evt := logger.Logger.Info().
			Bool("audit", true).
			Str("action", action)
		for k, v := range fields {
			evt = evt.Str(k, v)
		}
		evt.Msg("audit")
	})

	bookingSvc := booking.NewService(doctorRepo, apptRepo, eventPub)

	// 7) handlers + middleware
	authH := http_handlers.NewAuthHandler(authSvc)
	usersH := http_handlers.NewUsersHandler(authSvc)
	doctorsH := http_handlers.NewDoctorsHandler(bookingSvc)
	apptsH := http_handlers.NewAppointmentsHandler(bookingSvc)
	healthH := http_handlers.NewHealthHandler(sqlDB)

	authMW := middleware.Auth(signer, users, response.WriteError)
	adminMW := middleware.RequireAtLeast("admin", response.WriteError)

	// rate limit (fail-open)
	var fwLimiter *redis.FixedWindowLimiter
	if rc, ok := redisCli.(*redis.Client); ok {
		fwLimiter = redis.NewFixedWindowLimiter(rc)
	}

	rl := func(key string, limit int, window time.Duration) func(http.Handler) http.Handler {
		if fwLimiter == nil {
			return nil
		}
		return middleware.RateLimitFixedWindow(
			fwLimiter,
			middleware.FixedWindowConfig{
				RouteKey: key,
				Limit:    limit,
				Window:   window,
			},
			response.WriteError,
		)
	}

	// 8) router
	mux, err := deps.NewRouter(router.Deps{
		Health:       healthH,
		Auth:         authH,
		Users:        usersH,
		Doctors:      doctorsH,
		Appointments: apptsH,

		AuthMW:  authMW,
		AdminMW: adminMW,

		Global: []func(http.Handler) http.Handler{
			middleware.RequestID,
			middleware.Metrics,
			middleware.CORS(cfg.CORSAllowedOrigins),
		},

		SignupRL: rl("auth.signup", 3, time.Minute),
		LoginRL:  rl("auth.login", 5, time.Minute),
		BookRL:   rl("booking.book", 30, time.Minute),
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 9) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB: func(addr string) (DBCloser, error) {
			return config.NewDB(addr)
		},
		NewRedis: func(addr, password string, db int) RedisClient {
			return redis.New(addr, password, db)
		},
		NewPublisher: func(url string) (Publisher, error) {
			return rabbitmq_pub.NewPublisher(url)
		},
		NewRouter: func(d router.Deps) (http.Handler, error) {
			return router.New(d)
		},
	}
}

// runCleanup runs cleanup functions LIFO, mirroring defer semantics.
func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
