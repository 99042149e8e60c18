// Command server runs the goal achievement dashboard API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/runtime"
	"github.com/palisadeengineering/goal-achievement-dashboard/pkg/logger"
)

func main() {
	// Local development convenience; production sets real env vars.
	_ = godotenv.Load()

	application, err := runtime.NewApplication()
	if err != nil {
		logger.NewDefault("server").WithError(err).Fatal("failed to initialise application")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		logger.NewDefault("server").WithError(err).Fatal("server exited with error")
	}
}
