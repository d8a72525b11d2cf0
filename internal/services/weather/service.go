package weather

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-cli/internal/models"
	tracelog "github.com/Nazarious-ucu/weather-cli/internal/services/logger"
)

type client interface {
	Fetch(ctx context.Context, city string) (models.WeatherReport, error)
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type ServiceProvider struct {
	logger zerolog.Logger
	client client
}

func NewService(logger zerolog.Logger, cl client) *ServiceProvider {
	return &ServiceProvider{client: cl, logger: logger}
}

// GetByCity runs one lookup. It never panics: a panic in the client is turned into a
// generic FetchError so the caller's loop keeps control.
func (s *ServiceProvider) GetByCity(ctx context.Context, query models.WeatherQuery) (report models.WeatherReport, err error) {
	ctx = tracelog.WithQueryID(ctx, query.ID.String())
	logger := s.logger.With().
		Str("query_id", query.ID.String()).
		Str("city", query.City).
		Logger()

	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Ctx(ctx).
				Interface("panic", r).
				Msg("weather lookup panicked")
			report = models.WeatherReport{}
			err = &FetchError{Kind: KindGeneric, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	logger.Info().Ctx(ctx).Msg("calling Fetch")

	report, err = s.client.Fetch(ctx, query.City)
	if err != nil {
		logger.Error().
			Ctx(ctx).
			Err(err).
			Stringer("kind", KindOf(err)).
			Msg("fetch failed")
		return models.WeatherReport{}, asFetchError(err)
	}

	logger.Info().Ctx(ctx).Msg("fetch succeeded")
	return report, nil
}

func asFetchError(err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return &FetchError{Kind: KindGeneric, Err: err}
}
