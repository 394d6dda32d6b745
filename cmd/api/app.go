package main

import (
	"fmt"
	"log/slog"

	"photomap/internal/browser"
	"photomap/internal/config"
	"photomap/internal/mapview"
	"photomap/internal/providers/openstreetmap"
	"photomap/internal/session"

	"github.com/gin-gonic/gin"

	_ "photomap/docs" // Ensure docs are imported
)

// App encapsulates application dependencies
type App struct {
	router  *gin.Engine
	logger  *slog.Logger
	cfg     *config.Config
	session *session.Session
	backend mapview.Backend
	bridge  *mapview.Bridge
}

// NewApp creates a new application with injected dependencies
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	geocoder := openstreetmap.NewClient(logger, cfg.UserAgent(),
		openstreetmap.WithBaseURL(cfg.Nominatim.BaseURL),
		openstreetmap.WithTimeout(cfg.Nominatim.Timeout),
		openstreetmap.WithRateLimit(cfg.Nominatim.RateLimit),
	)
	return NewAppWithProviders(cfg, logger, geocoder, browser.NewOpener(logger))
}

// NewAppWithProviders creates an application with custom geocoder and browser
// launcher. This is useful for testing with fakes.
func NewAppWithProviders(
	cfg *config.Config,
	logger *slog.Logger,
	geocoder mapview.Geocoder,
	opener mapview.URLOpener,
) (*App, error) {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())

	sess := session.New()
	base := mapview.NewBase(cfg.App.Backend, mapview.Deps{
		Host:   sess,
		Images: sess,
		Script: sess,
		Busy:   &mapview.Busy{OnChange: sess.SetBusy},
		Opener: opener,
		Logger: logger,
	})

	locale := cfg.App.Locale
	if locale == "" {
		locale = mapview.DefaultLocale()
	}
	backend, err := mapview.NewBackend(cfg.App.Backend, base, mapview.Options{
		TestMode: cfg.App.TestMode,
		Locale:   locale,
		Keys:     cfg,
		Geocoder: geocoder,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create map backend: %w", err)
	}

	app := &App{
		router:  router,
		logger:  logger,
		cfg:     cfg,
		session: sess,
		backend: backend,
		bridge:  mapview.NewBridgeFor(backend),
	}

	logger.Info("application initialized",
		"backend", backend.Name(),
		"locale", locale,
		"test_mode", cfg.App.TestMode,
	)

	// Register routes
	app.registerRoutes()

	return app, nil
}

// Run starts the HTTP server
func (app *App) Run(addr string) error {
	return app.router.Run(addr)
}
