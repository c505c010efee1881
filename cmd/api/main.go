package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/parsianclinic/postop-api/internal/config"
	authHandler "github.com/parsianclinic/postop-api/internal/handler/auth"
	patientHandler "github.com/parsianclinic/postop-api/internal/handler/patient"
	"github.com/parsianclinic/postop-api/internal/i18n"
	"github.com/parsianclinic/postop-api/internal/instructions"
	"github.com/parsianclinic/postop-api/internal/middleware"
	"github.com/parsianclinic/postop-api/internal/model"
	"github.com/parsianclinic/postop-api/internal/repository/postgres"
	"github.com/parsianclinic/postop-api/internal/router"
	authService "github.com/parsianclinic/postop-api/internal/service/auth"
	patientService "github.com/parsianclinic/postop-api/internal/service/patient"
	"github.com/parsianclinic/postop-api/pkg/auth"
	"github.com/parsianclinic/postop-api/pkg/messaging/redis"
	"github.com/parsianclinic/postop-api/pkg/metrics"
	"github.com/parsianclinic/postop-api/pkg/security"
	"github.com/parsianclinic/postop-api/pkg/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	translator := i18n.New(cfg.Locale)
	catalog := buildCatalog(cfg, translator)

	patientRepo := postgres.NewPatientRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	m := metrics.New("postop")
	hasher := security.NewBcryptHasher(12)
	instrCache := cache.New(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	logger := log.Logger

	patientSvc := patientService.NewService(patientRepo, outboxRepo, catalog, hasher, instrCache, &logger)
	jwtSvc := auth.NewJWTService(cfg.JWT)
	authSvc := authService.NewService(patientRepo, jwtSvc)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)
	authH := authHandler.NewHandler(authSvc, translator, m)
	patientH := patientHandler.NewHandler(patientSvc)

	r := router.NewRouter(authMiddleware, authH, patientH, m)
	r.Setup()

	broker, err := redis.NewBroker(cfg.Redis, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	outboxProcessor := worker.NewOutboxProcessor(outboxRepo, broker, cfg.Outbox, &logger, m)
	go outboxProcessor.Start(workerCtx)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Server.Port).Str("locale", cfg.Locale).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGrace)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

// buildCatalog layers config-file overrides over the built-in default
// instruction table and localizes the result once, up front.
func buildCatalog(cfg *config.Config, tr *i18n.Translator) instructions.Catalog {
	overrides := make(instructions.Catalog, len(cfg.Instructions))
	for surgeryType, set := range cfg.Instructions {
		overrides[model.SurgeryType(surgeryType)] = set
	}
	return instructions.Builtin().Localized(tr.T).Merge(overrides)
}
