package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/fx"

	"github.com/kitkatcodeskitty/lms-migrate/internal/di"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	app := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return ctx }),
		di.Module(),
	)

	code := run(ctx, app)
	stop()
	os.Exit(code)
}
