package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/fx"
)

// run starts app and blocks until a signal or a shutdown request. The exit
// code comes from the shutdown request, so a failed migration exits 1.
func run(ctx context.Context, app *fx.App) int {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start application: %v\n", err)
		return 1
	}

	code := 0
	select {
	case <-ctx.Done():
	case sig := <-app.Wait():
		code = sig.ExitCode
	}

	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop application: %v\n", err)
		return 1
	}
	return code
}
