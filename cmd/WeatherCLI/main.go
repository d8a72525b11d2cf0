package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Nazarious-ucu/weather-cli/internal/app"
	"github.com/Nazarious-ucu/weather-cli/internal/config"
	"github.com/Nazarious-ucu/weather-cli/pkg/logger"
)

const serviceName = "weather_cli"

func main() {
	envErr := godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	opts := []logger.Option{logger.WithLevel(cfg.Logs.Level)}
	if cfg.Logs.Console {
		opts = append(opts, logger.WithConsole(os.Stderr))
	}

	l, err := logger.NewLogger(cfg.Logs.Path, serviceName, opts...)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	if envErr != nil {
		l.Debug().Err(envErr).Msg("no .env file loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.New(*cfg, l, os.Stdin, os.Stdout)

	if err := application.Start(ctx); err != nil {
		l.Error().Err(err).Msg("weather CLI exited with error")
		stop()
		os.Exit(1)
	}
}
