// Package server wires configuration, storage, services and the HTTP
// endpoint together, and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/josuelns/authapi/internal/logging"
	"github.com/josuelns/authapi/internal/server/config"
	"github.com/josuelns/authapi/internal/server/httpapi"
	"github.com/josuelns/authapi/internal/server/services"
	"github.com/josuelns/authapi/internal/server/shared/db"
)

type App struct {
	config        *config.Config
	logger        logging.Logger
	manager       db.RepositoryManager
	userService   *services.UserService
	avatarService *services.AvatarService
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewJSONLogger()

	manager, err := db.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us := services.NewUserService(manager.Users(), logger, cfg)
	as := services.NewAvatarService(manager.Users(), cfg)

	return &App{
		config:        cfg,
		logger:        logger,
		manager:       manager,
		userService:   us,
		avatarService: as,
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

	router := httpapi.NewRouter(&httpapi.RouterDeps{
		Logger:    app.logger,
		Users:     app.userService,
		Avatars:   app.avatarService,
		JWTSecret: []byte(app.config.SecretKey),
		Metrics:   httpapi.NewMetricsCollector(),
		Pinger:    app.manager.Conn(),
	})

	s := httpapi.NewHTTPServer(app.config.EndpointAddr, router, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if err := app.manager.RunMigrations(ctx); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.manager.Close(); err != nil {
		app.logger.Error(ctx, "error closing db", "error", err)
	}

	return nil
}
