package main

import (
	"context"
	"fmt"
	"os"
	"time"
)

type application interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Done() <-chan os.Signal
	StopTimeout() time.Duration
}

// run starts the application and blocks until ctx is cancelled or fx
// requests shutdown.
func run(ctx context.Context, app application) error {
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("start application: %w", err)
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancel()

	if err := app.Stop(stopCtx); err != nil {
		return fmt.Errorf("stop application: %w", err)
	}
	return nil
}
