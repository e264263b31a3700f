package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wirraway/authgate/internal/authgate/credentials"
	"github.com/wirraway/authgate/internal/authgate/directory"
	"github.com/wirraway/authgate/internal/authgate/gate"
	httpapi "github.com/wirraway/authgate/internal/authgate/http"
	"github.com/wirraway/authgate/internal/authgate/provider"
	"github.com/wirraway/authgate/internal/authgate/service"
	"github.com/wirraway/authgate/pkg/jwtx"
	"github.com/wirraway/authgate/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application wires the whole service: directory store, providers, token
// signing, the gate, and the HTTP server.
type Application struct {
	cfg    Config
	logger *slog.Logger

	store     *directory.SQLiteStore
	providers *provider.Registry

	loginService       *service.LoginService
	credentialsService *credentials.Service

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "authgate",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	signer, err := jwtx.NewSignerHS256([]byte(cfg.JWTSecret))
	if err != nil {
		_ = app.store.Close()
		return nil, fmt.Errorf("init token signer: %w", err)
	}
	verifier := jwtx.NewVerifierHS256([]byte(cfg.JWTSecret), cfg.Issuer)

	if err := app.initProviders(); err != nil {
		_ = app.store.Close()
		return nil, err
	}

	app.initServices(signer)
	app.initHTTP(verifier)

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("authgate starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"providers", app.providers.Names(),
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests, then closes the directory store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down authgate...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.store.Close(); err != nil {
		app.logger.Error("error closing directory store", "error", err)
		return err
	}

	app.logger.Info("authgate stopped")
	return nil
}

func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	store, err := directory.NewSQLiteStore(dsn)
	if err != nil {
		return fmt.Errorf("init directory store: %w", err)
	}
	app.store = store

	if err := store.ApplyMigrations(); err != nil {
		_ = store.Close()
		return fmt.Errorf("apply directory migrations: %w", err)
	}

	app.logger.Info("directory migrations applied")
	return nil
}

// initProviders builds the registry from whatever is configured. Running
// with zero providers is allowed; credentials login still works.
func (app *Application) initProviders() error {
	// One shared client for all provider calls; the exchange has two
	// sequential upstream requests, each bounded by this timeout.
	client := &http.Client{Timeout: app.cfg.ProviderTimeout}

	var list []provider.Provider

	if app.cfg.googleEnabled() {
		list = append(list, provider.NewGoogle(
			app.cfg.GoogleClientID,
			app.cfg.GoogleClientSecret,
			app.cfg.GoogleCallbackURL,
			client,
		))
	}

	if app.cfg.githubEnabled() {
		list = append(list, provider.NewGitHub(
			app.cfg.GitHubClientID,
			app.cfg.GitHubClientSecret,
			app.cfg.GitHubCallbackURL,
			client,
		))
	}

	if app.cfg.oidcEnabled() {
		// OIDC discovery happens at startup; a dead issuer fails boot
		// rather than the first login.
		ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ProviderTimeout)
		defer cancel()

		oidcProvider, err := provider.NewOIDC(
			ctx,
			app.cfg.OIDCIssuer,
			app.cfg.OIDCClientID,
			app.cfg.OIDCClientSecret,
			app.cfg.OIDCCallbackURL,
			client,
		)
		if err != nil {
			return fmt.Errorf("init oidc provider: %w", err)
		}
		list = append(list, oidcProvider)
	}

	app.providers = provider.NewRegistry(list...)
	return nil
}

func (app *Application) initServices(signer jwtx.Signer) {
	tokens := &service.TokenService{
		Signer: signer,
		Issuer: app.cfg.Issuer,
		TTL:    app.cfg.TokenTTL,
	}

	app.loginService = &service.LoginService{
		Providers: app.providers,
		Directory: app.store,
		Tokens:    tokens,
	}
	app.credentialsService = &credentials.Service{
		Users:  app.store,
		Tokens: tokens,
	}
}

func (app *Application) initHTTP(verifier jwtx.Verifier) {
	router := httpapi.NewRouter(
		verifier,
		gate.New(verifier, gate.DefaultPolicies(), gate.Options{}),
		BuildVersion,
		app.store,
		app.logger,
	)

	router.LoginService = app.loginService
	router.CredentialsService = app.credentialsService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
