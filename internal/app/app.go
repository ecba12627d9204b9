package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/kitkatcodeskitty/lms-migrate/internal/config"
	"github.com/kitkatcodeskitty/lms-migrate/internal/metrics"
	"github.com/kitkatcodeskitty/lms-migrate/internal/usecase"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newAdminFacade,
		newHTTPServer,
		newCommandRunner,
	),
	fx.Invoke(registerLifecycle),
)

type facadeParams struct {
	fx.In

	Config     *config.Config
	Auth       *usecase.OperatorAuthUseCase
	Migrations *usecase.MigrationUseCase
	Store      HealthChecker
}

func newAdminFacade(p facadeParams) *AdminFacade {
	return NewAdminFacade(p.Auth, p.Migrations, p.Store, p.Config.MigrationTimeout)
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type commandParams struct {
	fx.In

	Config     *config.Config
	Migrations *usecase.MigrationUseCase
	Metrics    *metrics.Metrics
	Logger     *slog.Logger
}

func newCommandRunner(p commandParams) *CommandRunner {
	return NewCommandRunner(p.Config, p.Migrations, p.Metrics, p.Logger)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Commands   *CommandRunner
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	if p.Config.Command == config.CommandServe {
		registerServer(p)
		return
	}
	registerCommand(p)
}

func registerServer(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting admin api", slog.String("addr", p.Server.Addr))
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("admin api stopped")
			return nil
		},
	})
}

// registerCommand runs the command in the background. A running migration is
// never cancelled by OnStop; stopping waits for it until ctx expires.
func registerCommand(p lifecycleParams) {
	var done chan struct{}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			p.Logger.Info("running command", slog.String("command", p.Config.Command))
			done = make(chan struct{})
			go func() {
				defer close(done)
				code := p.Commands.Run(context.Background())
				_ = p.Shutdowner.Shutdown(fx.ExitCode(code))
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if done == nil {
				return nil
			}
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}
