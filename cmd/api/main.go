// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

// Command api is the entry point for the Books API HTTP server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration (.env, environment variables, validation).
//  3. Open the store: PostgreSQL (pool + migrations) or in-memory.
//  4. Connect to Redis when configured; pick the rate limiter.
//  5. Wire services and HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/taligrayzel/BooksAPI/internal/api"
	"github.com/taligrayzel/BooksAPI/internal/auth"
	"github.com/taligrayzel/BooksAPI/internal/core/author"
	"github.com/taligrayzel/BooksAPI/internal/core/book"
	"github.com/taligrayzel/BooksAPI/internal/core/genre"
	"github.com/taligrayzel/BooksAPI/internal/platform/config"
	"github.com/taligrayzel/BooksAPI/internal/platform/constants"
	"github.com/taligrayzel/BooksAPI/internal/platform/memstore"
	"github.com/taligrayzel/BooksAPI/internal/platform/middleware"
	"github.com/taligrayzel/BooksAPI/internal/platform/migration"
	pgstore "github.com/taligrayzel/BooksAPI/internal/platform/postgres"
	redisstore "github.com/taligrayzel/BooksAPI/internal/platform/redis"
	"github.com/taligrayzel/BooksAPI/internal/platform/sec"
	"github.com/taligrayzel/BooksAPI/internal/platform/txscope"
)

// backend is the set of repositories and the scope behind every service.
type backend struct {
	name    string
	users   auth.UserRepository
	authors author.Repository
	books   book.Repository
	genres  genre.Repository
	scope   txscope.Scope
	ping    func(ctx context.Context) error
	close   func()
}

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("store", cfg.StoreDriver),
	)

	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	startupCtx, startupCancel := context.WithTimeout(appCtx, constants.StartupTimeout)
	defer startupCancel()

	// ── 3. Store ──────────────────────────────────────────────────────────
	store, err := openBackend(startupCtx, cfg, log)
	must(log, err, "open store")
	defer store.close()

	// ── 4. Redis & Rate Limiting ──────────────────────────────────────────
	health := api.HealthDependencies{StoreName: store.name, CheckStore: store.ping}

	var limiter middleware.Limiter
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		limiter = redisstore.NewWindowLimiter(rdb, cfg.RateLimitBurst, constants.RateLimitWindow)
		health.CheckCache = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
	} else {
		local := middleware.NewLocalLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		go local.Cleanup(appCtx)
		limiter = local
	}

	// ── 5. Credentials ────────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(sec.TokenConfig{
		Algorithm:      cfg.JWTAlgorithm,
		Secret:         cfg.JWTSecret,
		PrivateKeyPath: cfg.JWTPrivKeyPath,
		PublicKeyPath:  cfg.JWTPubKeyPath,
		Issuer:         constants.AuthIssuer,
		TTL:            cfg.TokenTTL,
	})
	must(log, err, "initialize token service")

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	authService := auth.NewService(store.users, store.scope, sec.PasswordHasher{}, tokens, log)
	requireAuth := middleware.RequireAuth(authService)

	genreService := genre.NewService(store.genres, log)
	bookService := book.NewService(store.books, store.authors, genreService, store.scope, log)
	authorService := author.NewService(store.authors, store.books, store.scope, log)

	liveness, readiness := api.NewHealthHandlers(health, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(cfg, log, limiter, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, requireAuth),
		Author:    author.NewHandler(authorService, requireAuth),
		Book:      book.NewHandler(bookService, requireAuth),
	})

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// openBackend connects the configured store. PostgreSQL is migrated first
// when AUTO_MIGRATE is set.
func openBackend(ctx context.Context, cfg *config.Config, log *slog.Logger) (*backend, error) {
	if cfg.UsesMemoryStore() {
		log.Warn("using in-memory store; data is lost on restart")
		store := memstore.New()
		return &backend{
			name:    config.StoreDriverMemory,
			users:   store.Users(),
			authors: store.Authors(),
			books:   store.Books(),
			genres:  store.Genres(),
			scope:   store,
			ping:    store.Ping,
			close:   func() {},
		}, nil
	}

	if cfg.AutoMigrate {
		if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
			return nil, err
		}
	}

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return nil, err
	}

	return &backend{
		name:    config.StoreDriverPostgres,
		users:   auth.NewPostgresRepository(pool),
		authors: author.NewPostgresRepository(pool),
		books:   book.NewPostgresRepository(pool),
		genres:  genre.NewPostgresRepository(pool),
		scope:   pgstore.NewTxScope(pool),
		ping:    func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		close: func() {
			log.Info("closing postgres pool")
			pool.Close()
		},
	}, nil
}

func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
