// Package server wires configuration, storage, services and transports
// together and runs them until the process is signalled to stop.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/speechauth/internal/logging"
	"github.com/dmitrijs2005/speechauth/internal/observability"
	"github.com/dmitrijs2005/speechauth/internal/server/config"
	"github.com/dmitrijs2005/speechauth/internal/server/httpserver"
	"github.com/dmitrijs2005/speechauth/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/speechauth/internal/server/services"
	"github.com/dmitrijs2005/speechauth/internal/server/translator"

	gs "github.com/dmitrijs2005/speechauth/internal/server/grpc"
)

type App struct {
	config             *config.Config
	logger             logging.Logger
	metrics            *observability.Metrics
	accountService     *services.AccountService
	translationService *services.TranslationService
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	generated, err := c.EnsureSecretKey()
	if err != nil {
		return nil, fmt.Errorf("secret key init error: %w", err)
	}
	if generated {
		logger.Warn(context.Background(), "no secret key configured, generated a random one; tokens will not survive a restart")
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	repo := accounts.NewInMemoryRepository()
	as := services.NewAccountService(repo, logger, c)

	// a typed nil *translator.Client must not reach the service as a non-nil interface
	var tr services.Translator
	if c.TranslatorURL != "" {
		tr = translator.NewClient(c.TranslatorURL, c.TranslatorAPIKey, c.TranslatorTimeout, c.TranslatorMaxRetries)
	} else {
		logger.Warn(context.Background(), "no translator URL configured, /translate only echoes same-language requests")
	}
	ts := services.NewTranslationService(tr, logger)

	return &App{
		config:             c,
		logger:             logger,
		metrics:            observability.NewMetrics(),
		accountService:     as,
		translationService: ts,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpserver.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.accountService,
		app.translationService, app.metrics, app.config.TranslateRequiresAuth)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until a signal arrives, ctx is cancelled, or one of the
// servers fails to start.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.EndpointAddrGRPC != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
}
