package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/onehealthportal/client-go/internal/buildinfo"
	"github.com/onehealthportal/client-go/internal/cli"
	"github.com/onehealthportal/client-go/internal/config"
	"github.com/onehealthportal/client-go/internal/logging"
)

func main() {
	buildinfo.Print(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	log := logging.New(os.Stderr, slog.LevelInfo)

	app, err := cli.NewApp(cfg, log)
	if err != nil {
		log.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)
}
