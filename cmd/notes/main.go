package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/simplenotes/internal/buildinfo"
	"github.com/dmitrijs2005/simplenotes/internal/cli"
	"github.com/dmitrijs2005/simplenotes/internal/config"
	"github.com/dmitrijs2005/simplenotes/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stderr)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger, err := logging.NewTextLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
