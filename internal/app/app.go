package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/zap"

	"github.com/Nazarious-ucu/weather-cli/internal/config"
	"github.com/Nazarious-ucu/weather-cli/internal/handlers/console"
	loggerT "github.com/Nazarious-ucu/weather-cli/internal/services/logger"
	metricsSvc "github.com/Nazarious-ucu/weather-cli/internal/services/metrics"
	serviceWeather "github.com/Nazarious-ucu/weather-cli/internal/services/weather"
	fLogger "github.com/Nazarious-ucu/weather-cli/pkg/logger"
)

const pushTimeout = 5 * time.Second

// ServiceContainer holds initialized dependencies for one session.
type ServiceContainer struct {
	Handler *console.Handler
	Metrics *metricsSvc.PromCollector

	fileLogger *zap.Logger
}

// App ties together config, logger and the console streams.
type App struct {
	cfg config.Config
	l   zerolog.Logger
	in  io.Reader
	out io.Writer
}

func New(cfg config.Config, logger zerolog.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		cfg: cfg,
		l:   logger,
		in:  in,
		out: out,
	}
}

// Start runs the query loop until the user leaves, then flushes logs and metrics.
func (a *App) Start(ctx context.Context) error {
	srvContainer := a.init()

	a.l.Info().Msg("weather CLI started")

	runErr := srvContainer.Handler.Run(ctx)
	if runErr != nil {
		a.l.Error().Err(runErr).Msg("query loop stopped with error")
	}

	return errors.Join(runErr, a.Shutdown(srvContainer))
}

// Shutdown syncs the HTTP trace logger and pushes session metrics when a gateway is set.
func (a *App) Shutdown(srvContainer ServiceContainer) error {
	var errs []error

	if err := srvContainer.fileLogger.Sync(); err != nil {
		a.l.Error().Err(err).Msg("failed to sync file logger")
		errs = append(errs, err)
	}

	if a.cfg.Metrics.PushURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
		defer cancel()

		if err := srvContainer.Metrics.Push(ctx, a.cfg.Metrics.PushURL, a.cfg.Metrics.Job); err != nil {
			a.l.Error().Err(err).Msg("failed to push metrics")
			errs = append(errs, err)
		} else {
			a.l.Info().Str("gateway", a.cfg.Metrics.PushURL).Msg("metrics pushed")
		}
	}

	a.l.Info().Msg("shutdown complete")
	return errors.Join(errs...)
}

// init wires the HTTP client, weather service and console handler without running anything.
func (a *App) init() ServiceContainer {
	a.l.Info().Msgf("initializing weather CLI with config: %s", a.cfg)

	fileLogger := fLogger.NewFileLogger(a.cfg.Logs.HTTPPath)

	httpLogClient := &http.Client{
		Transport: loggerT.NewRoundTripper(fileLogger, nil),
		Timeout:   a.cfg.HTTPTimeout(),
	}

	collector := metricsSvc.NewPromCollector()

	weatherAPI := serviceWeather.NewMetricsClient(
		serviceWeather.NewClientWeatherAPI(a.cfg.Weather.APIKey, a.cfg.Weather.APIURL, httpLogClient, a.l),
		collector,
	)
	weatherService := serviceWeather.NewService(a.l, weatherAPI)

	handler := console.NewHandler(weatherService, a.in, a.out, a.l)

	return ServiceContainer{
		Handler:    handler,
		Metrics:    collector,
		fileLogger: fileLogger,
	}
}
