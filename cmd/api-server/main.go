package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dondi-c/church-finder/database"
	"github.com/dondi-c/church-finder/internal/cache"
	"github.com/dondi-c/church-finder/internal/config"
	"github.com/dondi-c/church-finder/internal/google"
	"github.com/dondi-c/church-finder/internal/logger"
	httpapi "github.com/dondi-c/church-finder/internal/microservices/http-api"
	"github.com/dondi-c/church-finder/internal/microservices/http-api/handler"
	"github.com/dondi-c/church-finder/internal/microservices/http-api/repository"
	"github.com/dondi-c/church-finder/internal/microservices/http-api/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("api server exited")
	}
}

// run owns every resource it opens, so the deferred closes always execute
// before main decides the exit status.
func run() error {
	// Load config, a missing Google credential stops the process here
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	logger.Setup(cfg)

	if err := database.RunMigrations(cfg.DatabaseURL, log.Logger); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}

	db, err := database.OpenGorm(cfg.DatabaseURL, log.Logger)
	if err != nil {
		return fmt.Errorf("database unavailable: %w", err)
	}
	defer database.Close(db)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("database handle unavailable: %w", err)
	}
	checks := map[string]httpapi.Pinger{"database": sqlDB}

	var photoCache cache.Provider = cache.Noop{}
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisProvider(context.Background(), cfg.RedisURL)
		if err != nil {
			// the cache is optional, photos are fetched upstream every time
			log.Warn().Err(err).Msg("redis unavailable, photo cache disabled")
		} else {
			defer redisCache.Close()
			photoCache = redisCache
			checks["redis"] = httpapi.PingFunc(redisCache.Ping)
		}
	}

	googleClient := google.NewClient(google.Options{
		MapsAPIKey:     cfg.GoogleMapsAPIKey,
		SearchAPIKey:   cfg.GoogleSearchAPIKey,
		SearchEngineID: cfg.GoogleSearchEngineID,
		RateLimit:      cfg.GoogleRateLimit,
	})

	// Repositories
	churchRepo := repository.NewChurchRepository(db)
	serviceTimeRepo := repository.NewServiceTimeRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// Services
	churchService := service.NewChurchService(churchRepo, reviewRepo)
	serviceTimeService := service.NewServiceTimeService(serviceTimeRepo)
	reviewService := service.NewReviewService(reviewRepo)
	mapsService := service.NewMapsService(googleClient, photoCache, cfg.PhotoCacheTTL)

	router, err := httpapi.NewRouter(cfg, log.Logger, httpapi.Handlers{
		Church:      handler.NewChurchHandler(churchService),
		Review:      handler.NewReviewHandler(reviewService),
		ServiceTime: handler.NewServiceTimeHandler(serviceTimeService),
		Maps:        handler.NewMapsHandler(mapsService),
	}, checks)
	if err != nil {
		return fmt.Errorf("could not build router: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.GoEnv).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	var serveErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("received shutdown signal")
	case serveErr = <-errChan:
		log.Error().Err(serveErr).Msg("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")

	if serveErr != nil {
		return fmt.Errorf("http server: %w", serveErr)
	}
	return nil
}
