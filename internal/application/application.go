package application

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/seqtools/ngsconf/internal/api"
	"github.com/seqtools/ngsconf/internal/config"
)

// Settings holds the runtime options for the inspection server. They are
// deliberately separate from the resolved configuration document the server
// exposes.
type Settings struct {
	Port                 string
	ReadHeaderTimeout    time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	ShutdownGracePeriod  time.Duration
	EnableRequestLogging bool
	RateLimitRPS         float64
	RateLimitBurst       int
}

// DefaultSettings returns the server settings used when no flags override
// them.
func DefaultSettings() Settings {
	return Settings{
		Port:                 "8080",
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		ShutdownGracePeriod:  10 * time.Second,
		EnableRequestLogging: true,
		RateLimitRPS:         25,
		RateLimitBurst:       50,
	}
}

// App encapsulates the inspection server dependencies.
type App struct {
	store    *config.Store
	handler  *api.Handler
	router   http.Handler
	logger   *zap.Logger
	server   *http.Server
	settings Settings
}

// New wires the configuration store into the HTTP stack.
func New(settings Settings, store *config.Store, logger *zap.Logger) *App {
	handler := api.NewHandler(store)
	router := api.NewRouter(handler, logger,
		api.WithLogging(settings.EnableRequestLogging),
		api.WithRateLimit(settings.RateLimitRPS, settings.RateLimitBurst),
	)

	addr := settings.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: settings.ReadHeaderTimeout,
		WriteTimeout:      settings.WriteTimeout,
		IdleTimeout:       settings.IdleTimeout,
	}

	return &App{
		store:    store,
		handler:  handler,
		router:   router,
		logger:   logger,
		server:   server,
		settings: settings,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("configuration server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}
