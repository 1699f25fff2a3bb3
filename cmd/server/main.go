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

	"github.com/anonto42/curious/backend/internal/llm"
	"github.com/anonto42/curious/backend/internal/middleware"
	"github.com/anonto42/curious/backend/internal/models"
	"github.com/anonto42/curious/backend/internal/repositories"
	"github.com/anonto42/curious/backend/internal/router"
	"github.com/anonto42/curious/backend/internal/search"
	"github.com/anonto42/curious/backend/internal/services"
	"github.com/anonto42/curious/backend/internal/subjects"
	"github.com/anonto42/curious/backend/internal/validators"
	"github.com/anonto42/curious/backend/pkg/cache"
	"github.com/anonto42/curious/backend/pkg/config"
	"github.com/anonto42/curious/backend/pkg/firebase"
	"github.com/anonto42/curious/backend/pkg/logging"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.InitDB(cfg, logger)
	if err != nil {
		return err
	}
	defer db.CloseDB()

	if err := db.Migrate(
		&models.User{},
		&models.Follow{},
		&models.Notification{},
		&models.Prompt{},
		&models.Content{},
		&models.ResponseLink{},
	); err != nil {
		return err
	}

	subjectCache, err := newCache(ctx, cfg, db)
	if err != nil {
		return err
	}
	defer func() {
		if err := subjectCache.Close(); err != nil {
			logger.Warn("Error closing subject cache", zap.Error(err))
		}
	}()
	logger.Info("Subject cache ready", zap.String("backend", cfg.Cache.Backend))

	primary, repair, err := newCompleters(cfg, logger)
	if err != nil {
		return err
	}
	resolver := subjects.NewResolver(primary, repair, subjectCache, cfg.LLM.Timeout, logger)

	provider, err := search.NewCustomSearch(ctx, cfg.Search.APIKey, cfg.Search.Endpoint, cfg.Search.ResultsPerQuery)
	if err != nil {
		return err
	}
	gateway := search.NewGateway(provider, []search.Source{
		{Name: "youtube", EngineID: cfg.Search.YoutubeEngineID},
		{Name: "reddit", EngineID: cfg.Search.RedditEngineID},
		{Name: "twitter", EngineID: cfg.Search.TwitterEngineID},
	}, cfg.Search.Timeout, logger)

	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	followRepo := repositories.NewPostgresFollowRepository(db.Postgres)
	notificationRepo := repositories.NewPostgresNotificationRepository(db.Postgres)
	promptRepo := repositories.NewPostgresPromptRepository(db.Postgres)
	contentRepo := repositories.NewPostgresContentRepository(db.Postgres)
	linkRepo := repositories.NewPostgresResponseLinkRepository(db.Postgres)

	resources := services.NewResourceService(resolver, gateway, promptRepo, linkRepo, contentRepo, userRepo, followRepo, logger)
	social := services.NewSocialService(userRepo, followRepo, notificationRepo, logger)

	var firebaseAuth middleware.IDTokenVerifier
	if cfg.FirebaseCredentialsPath != "" {
		app, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, logger)
		if err != nil {
			return err
		}
		firebaseAuth = app.AuthClient
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	config.SetupMiddleware(e, logger)
	router.SetupRoutes(e, router.Dependencies{
		Users:         userRepo,
		Contents:      contentRepo,
		Notifications: notificationRepo,
		Resources:     resources,
		Social:        social,
		FirebaseAuth:  firebaseAuth,
		JWTSecret:     cfg.Auth.JWTSecret,
		TokenTTL:      cfg.Auth.TokenTTL,
		Logger:        logger,
	})

	metricsServer := &http.Server{
		Addr:              ":" + cfg.MetricsPort,
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("Starting API server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("api server: %w", err)
		}
	}()
	go func() {
		logger.Info("Starting metrics server", zap.String("port", cfg.MetricsPort))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("metrics server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("API server shutdown failed", zap.Error(err))
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Metrics server shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
	return nil
}

func newCache(ctx context.Context, cfg *config.Config, db *config.DB) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case "redis":
		return cache.NewRedis(ctx, cfg.Cache.RedisURL, cfg.Cache.TTL)
	case "mongo":
		if db.Mongo == nil {
			return nil, errors.New("mongo cache backend requires a MongoDB connection")
		}
		return cache.NewMongo(ctx, db.Mongo.Database(cfg.MongoDatabase), cfg.Cache.TTL)
	default:
		return cache.NewMemory(cfg.Cache.TTL), nil
	}
}

// newCompleters returns the primary model and the model used to repair
// malformed output. Anthropic repairs when a key is configured, otherwise
// the larger OpenAI model does.
func newCompleters(cfg *config.Config, logger *zap.Logger) (llm.Completer, llm.Completer, error) {
	primary, err := llm.NewOpenAIClient(llm.OpenAIConfig{
		APIKey:      cfg.LLM.OpenAIAPIKey,
		BaseURL:     cfg.LLM.OpenAIBaseURL,
		Model:       cfg.LLM.OpenAIModel,
		Temperature: cfg.LLM.Temperature,
	}, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.LLM.AnthropicAPIKey != "" {
		repair, err := llm.NewAnthropicClient(llm.AnthropicConfig{
			APIKey:  cfg.LLM.AnthropicAPIKey,
			BaseURL: cfg.LLM.AnthropicBaseURL,
			Model:   cfg.LLM.AnthropicModel,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return primary, repair, nil
	}

	repair, err := llm.NewOpenAIClient(llm.OpenAIConfig{
		APIKey:      cfg.LLM.OpenAIAPIKey,
		BaseURL:     cfg.LLM.OpenAIBaseURL,
		Model:       cfg.LLM.OpenAIRepairModel,
		Temperature: 0,
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	return primary, repair, nil
}
