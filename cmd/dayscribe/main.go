package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/dayscribe/internal/buildinfo"
	"github.com/dmitrijs2005/dayscribe/internal/client/cli"
	"github.com/dmitrijs2005/dayscribe/internal/client/config"
	"github.com/dmitrijs2005/dayscribe/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger, err := logging.NewConsoleLogger(os.Stderr, logging.ConsoleOptions{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Prefix: "dayscribe",
	})
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Run(ctx)
}
