package router

import (
	"time"

	"github.com/anonto42/curious/backend/internal/handlers"
	"github.com/anonto42/curious/backend/internal/middleware"
	"github.com/anonto42/curious/backend/internal/repositories"
	"github.com/anonto42/curious/backend/internal/services"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Dependencies are the collaborators the HTTP layer needs
type Dependencies struct {
	Users         repositories.UserRepository
	Contents      repositories.ContentRepository
	Notifications repositories.NotificationRepository
	Resources     services.ResourceService
	Social        services.SocialService

	// FirebaseAuth is nil when firebase login is disabled
	FirebaseAuth middleware.IDTokenVerifier
	JWTSecret    string
	TokenTTL     time.Duration
	Logger       *zap.Logger
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	logger := deps.Logger.Named("router")

	e.GET("/health", handlers.HealthCheck)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(deps.Users, deps.FirebaseAuth, deps.JWTSecret, deps.TokenTTL, deps.Logger)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes ---
	parsers := []middleware.TokenParser{middleware.LocalTokenParser(deps.JWTSecret)}
	if deps.FirebaseAuth != nil {
		parsers = append(parsers, middleware.FirebaseTokenParser(deps.FirebaseAuth, deps.Users))
	}
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(parsers...))

	handlers.NewUserHandler(deps.Users, deps.Social).RegisterUserRoutes(api)
	handlers.NewFollowHandler(deps.Social).RegisterFollowRoutes(api)
	handlers.NewPromptHandler(deps.Resources, deps.Logger).RegisterPromptRoutes(api)
	handlers.NewContentHandler(deps.Contents).RegisterContentRoutes(api)
	handlers.NewFeedHandler(deps.Resources).RegisterFeedRoutes(api)
	handlers.NewNotificationHandler(deps.Notifications, deps.Users).RegisterNotificationRoutes(api)

	logger.Info("All routes configured",
		zap.Int("routes", len(e.Routes())),
		zap.Bool("firebase_login", deps.FirebaseAuth != nil))
}
