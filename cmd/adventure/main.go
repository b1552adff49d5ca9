package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pixil98/go-adventure/cmd/adventure/command"
	"github.com/pixil98/go-service"
)

func main() {
	args, cleanup, err := command.WithDefaultConfig(os.Args)
	if err != nil {
		slog.Error("preparing config", "error", err)
		os.Exit(1)
	}
	os.Args = args

	err = run()
	cleanup()
	if err != nil {
		slog.Error("running application", "error", err)
		os.Exit(1)
	}

	slog.Info("exiting")
}

func run() error {
	app, err := service.NewApp(&command.Config{}, command.BuildWorkers)
	if err != nil {
		return fmt.Errorf("creating application: %w", err)
	}

	return app.Run(context.Background())
}
