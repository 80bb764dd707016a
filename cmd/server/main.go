package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/moderndash/dashboard/internal/api"
	"github.com/moderndash/dashboard/internal/api/handler"
	"github.com/moderndash/dashboard/internal/api/metrics"
	"github.com/moderndash/dashboard/internal/core/ports"
	"github.com/moderndash/dashboard/internal/core/service"
	"github.com/moderndash/dashboard/internal/infrastructure/db/memory"
	mongostore "github.com/moderndash/dashboard/internal/infrastructure/db/mongo"
	redisstore "github.com/moderndash/dashboard/internal/infrastructure/db/redis"
	"github.com/moderndash/dashboard/internal/infrastructure/queue"
	"github.com/moderndash/dashboard/internal/pkg/config"
	"github.com/moderndash/dashboard/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        ModernDash API
// @version      1.0
// @description  Role-based admin dashboard backend.
// @BasePath     /
// @securityDefinitions.apikey  SessionCookie
// @in                          header
// @name                        moderndash_session
func main() {
	cfg := config.Load()
	log := logger.Init(logger.ForEnv(cfg.Env, cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	secret := cfg.JWTSecret
	if secret == "" {
		secret = randomSecret()
		log.Warn().Msg("JWT_SECRET not set, using a random secret; sessions will not survive a restart")
	}

	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	users := mongostore.NewUserRepository(db)
	projects := mongostore.NewProjectRepository(db)
	if err := mongostore.EnsureIndexes(ctx, users, projects); err != nil {
		log.Warn().Err(err).Msg("index creation failed")
	}

	health := map[string]handler.Pinger{"mongodb": handler.MongoPinger(db)}

	var store ports.SnapshotStore
	switch cfg.Session.Store {
	case config.SessionStoreMemory:
		mem := memory.NewSnapshotStore()
		go mem.Run(ctx, cfg.Session.SweepInterval, log)
		store = mem
		log.Warn().Msg("using in-memory session store; sessions will not survive a restart")
	default:
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()
		store = redisstore.NewSnapshotStore(rdb)
		health["redis"] = handler.RedisPinger(rdb)
	}

	directory, err := service.NewDemoDirectory(cfg.Auth.DemoSecret, bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	recorder := metrics.NewRecorder()
	sessions := service.NewSessionManager(store, cfg.Session.TTL, recorder, log)
	go sessions.Run(ctx, cfg.Session.SweepInterval)
	tokens := service.NewTokenManager(secret, cfg.Session.TTL)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Auth.LoginWorkers, service.NewLoginRecorder(users, log), log)
	dispatcher.Start(workerCtx)
	defer func() {
		stopWorkers()
		dispatcher.Wait()
	}()

	auth := service.NewAuthService(directory, sessions, tokens, dispatcher, recorder, service.AuthOptions{
		Delay:   cfg.Auth.Delay,
		Timeout: cfg.Auth.Timeout,
	}, log)

	e := api.NewRouter(api.Deps{
		Auth:       auth,
		Tokens:     tokens,
		Sessions:   sessions,
		Admin:      service.NewAdminService(users, projects, recorder, log),
		Accounts:   directory.Accounts(),
		DemoSecret: cfg.Auth.DemoSecret,
		Cookie:     handler.CookieOptions{Secure: cfg.Session.CookieSecure, TTL: cfg.Session.TTL},
		Health:     health,
		Logger:     log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
