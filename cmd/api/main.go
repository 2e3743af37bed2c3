package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/citylibrary/lending-system/internal/api"
	"github.com/citylibrary/lending-system/internal/core/ports"
	"github.com/citylibrary/lending-system/internal/core/service"
	"github.com/citylibrary/lending-system/internal/infrastructure/audit"
	mongodb "github.com/citylibrary/lending-system/internal/infrastructure/db/mongo"
	redisdb "github.com/citylibrary/lending-system/internal/infrastructure/db/redis"
	"github.com/citylibrary/lending-system/internal/pkg/config"
	"github.com/citylibrary/lending-system/internal/pkg/hash"
	"github.com/citylibrary/lending-system/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	bookRepo := mongodb.NewBookRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	loanRepo := mongodb.NewLoanRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	for name, ensure := range map[string]func(context.Context) error{
		"books": bookRepo.EnsureIndexes,
		"users": userRepo.EnsureIndexes,
		"loans": loanRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()
	sessions := redisdb.NewSessionStore(rdb)

	// --- Capabilities ---
	var hasher ports.PasswordHasher
	switch cfg.PasswordHasher {
	case "bcrypt":
		hasher = hash.NewBcryptHasher(0)
	default:
		hasher = hash.NewSHA256Hasher()
	}

	// --- Audit trail ---
	dispatcher := audit.NewDispatcher(cfg.AuditWorkers, auditRepo, log)
	dispatcher.Start(ctx)

	// --- Services ---
	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	catalog := service.NewCatalogService(bookRepo, log)
	directory := service.NewDirectoryService(userRepo, loanRepo, hasher, sessions, cfg.JWTSecret, sessionTTL, log)
	lending := service.NewLendingService(bookRepo, userRepo, loanRepo, dispatcher, cfg.MaxBorrowLimit, log)

	e := api.NewRouter(api.Deps{
		Catalog:   catalog,
		Directory: directory,
		Lending:   lending,
		Sessions:  sessions,
		JWTSecret: cfg.JWTSecret,
		Mongo:     db,
		Redis:     rdb,
		Logger:    log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("lending service listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
