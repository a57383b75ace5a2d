package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/fx"
)

// run starts the app, blocks until a signal or a shutdown request, and
// returns the process exit code.
func run(ctx context.Context, app *fx.App) int {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "shop: start: %v\n", err)
		return 1
	}

	code := 0
	select {
	case <-ctx.Done():
	case sig := <-app.Wait():
		code = sig.ExitCode
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		fmt.Fprintf(os.Stderr, "shop: stop: %v\n", err)
		return 1
	}
	return code
}
