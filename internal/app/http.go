package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kevish-is-building/Startup-co/internal/account"
	"github.com/kevish-is-building/Startup-co/internal/auth"
	"github.com/kevish-is-building/Startup-co/internal/auth/credentials"
	"github.com/kevish-is-building/Startup-co/internal/auth/handler"
	"github.com/kevish-is-building/Startup-co/internal/auth/linker"
	"github.com/kevish-is-building/Startup-co/internal/auth/provider"
	"github.com/kevish-is-building/Startup-co/internal/auth/provider/google"
	"github.com/kevish-is-building/Startup-co/internal/config"
	"github.com/kevish-is-building/Startup-co/internal/logger"
	"github.com/kevish-is-building/Startup-co/internal/metrics"
	"github.com/kevish-is-building/Startup-co/internal/middleware"
	"github.com/kevish-is-building/Startup-co/internal/session"
	"github.com/kevish-is-building/Startup-co/internal/token"
	"github.com/kevish-is-building/Startup-co/internal/user"
)

// oauthProviders assembles the configured external providers. An
// unconfigured provider is left out entirely: a concrete-typed nil
// assigned into the OAuthProvider interface would not compare equal to
// nil in the registry, so the slice only ever holds live providers.
func oauthProviders(ctx context.Context, cfg config.Config) ([]provider.OAuthProvider, error) {
	var providers []provider.OAuthProvider

	googleProvider, err := google.New(
		ctx,
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
	)
	switch {
	case errors.Is(err, auth.ErrProviderNotConfigured):
		// Come up without Google: the endpoints answer with the
		// config-missing responses instead of refusing to boot.
		logger.Warn("google oauth not configured", nil)
	case err != nil:
		return nil, err
	default:
		providers = append(providers, googleProvider)
	}

	return providers, nil
}

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	userStore := user.NewPostgresStore(infra.DB)
	accountStore := account.NewPostgresStore(infra.DB)

	var sessionStore session.Store
	if cfg.SessionBackend == "redis" {
		sessionStore = session.NewRedisStore(infra.Redis.Client)
	} else {
		sessionStore = session.NewPostgresStore(infra.DB)
	}

	codec := token.New(cfg.JWTSecret, nil)
	sessions := session.NewService(codec, sessionStore, userStore, nil)
	identityLinker := linker.New(userStore, accountStore, sessions)
	credentialService := credentials.NewService(infra.DB)

	providers, err := oauthProviders(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	registry := provider.NewRegistry(providers...)

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(promRegistry)

	authHandler := handler.NewHandler(
		registry,
		sessions,
		identityLinker,
		credentialService,
		collector,
		cfg.Production(),
	)

	authMiddleware := middleware.NewAuthMiddleware(sessions)
	gate := middleware.NewGate(sessions, cfg.ProtectedPaths, cfg.AuthOnlyPaths, cfg.Production())
	limiter := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())

	sweeper := session.NewSweeper(sessionStore, cfg.SessionSweepInterval, collector.RecordSessionsSwept)
	go sweeper.Run(ctx)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.GinGate(gate))

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router, limiter.Middleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/metrics", gin.WrapH(
		promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}),
	))

	// ----------------------------
	// Protected API Routes
	// ----------------------------

	api := router.Group("/api")
	api.Use(middleware.GinRequireAuth(authMiddleware))

	api.GET("/me", func(c *gin.Context) {
		sess, ok := middleware.SessionFromContext(c.Request.Context())
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user": gin.H{
				"id":            sess.User.ID,
				"email":         sess.User.Email,
				"name":          sess.User.Name,
				"image":         sess.User.Image,
				"emailVerified": sess.User.EmailVerified,
			},
		})
	})

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		limiter.Stop()
		return infra.Close()
	}, nil
}
