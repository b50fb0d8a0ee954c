// Command pumpdrive-worker runs a Temporal worker serving the
// recommendation workflows and activities.
package main

import (
	"context"
	"log/slog"
	"os"

	"go.temporal.io/sdk/client"
	sdkworker "go.temporal.io/sdk/worker"

	"github.com/RakeshEPC/tshla-medical-sub000/internal/configuration"
	"github.com/RakeshEPC/tshla-medical-sub000/internal/worker"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := configuration.Load()
	if err != nil {
		logger.Error("configuration load failed", "error", err)
		os.Exit(1)
	}

	engine, cleanup, err := worker.InitializeEngine(context.Background(), cfg)
	if err != nil {
		logger.Error("engine initialization failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	temporalClient, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
	})
	if err != nil {
		logger.Error("temporal connection failed", "error", err)
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := sdkworker.New(temporalClient, cfg.Temporal.TaskQueue, sdkworker.Options{})
	worker.RegisterAll(w, engine)

	logger.Info("worker starting", "taskQueue", cfg.Temporal.TaskQueue)
	if err := w.Run(sdkworker.InterruptCh()); err != nil {
		logger.Error("worker stopped", "error", err)
		os.Exit(1)
	}
}
