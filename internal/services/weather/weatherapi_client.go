package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-cli/internal/models"
	"github.com/Nazarious-ucu/weather-cli/internal/services/logger"
)

const maxBodySize = 1 << 20

// ClientWeatherAPI queries the WeatherAPI.com current conditions endpoint.
type ClientWeatherAPI struct {
	APIKey string
	apiURL string
	client HTTPClient
	logger zerolog.Logger
}

func NewClientWeatherAPI(apiKey, apiURL string, httpClient HTTPClient, logger zerolog.Logger) *ClientWeatherAPI {
	return &ClientWeatherAPI{APIKey: apiKey, apiURL: apiURL, client: httpClient, logger: logger}
}

// Fetch sends a single GET for city. Every failure comes back as a *FetchError.
func (s *ClientWeatherAPI) Fetch(ctx context.Context, city string) (models.WeatherReport, error) {
	start := time.Now()

	if strings.TrimSpace(city) == "" {
		return models.WeatherReport{}, &FetchError{Kind: KindClientRequest, Message: "city name cannot be empty"}
	}

	reqURL, err := s.buildURL(city)
	if err != nil {
		return models.WeatherReport{}, &FetchError{Kind: KindGeneric, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		s.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("city", city).
			Msg("failed to create HTTP request")
		return models.WeatherReport{}, &FetchError{Kind: KindGeneric, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	s.logger.Debug().
		Ctx(ctx).
		Str("city", city).
		Msg("starting WeatherAPI request")

	resp, err := s.client.Do(req)
	if err != nil {
		fErr := classifyTransportError(redactURLError(err))
		s.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("city", city).
			Stringer("kind", fErr.Kind).
			Dur("duration", time.Since(start)).
			Msg("WeatherAPI request failed")
		return models.WeatherReport{}, fErr
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			s.logger.Warn().Ctx(ctx).Err(err).Msg("failed to close response body")
		}
	}(resp.Body)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		fErr := classifyTransportError(err)
		s.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("city", city).
			Stringer("kind", fErr.Kind).
			Msg("failed to read response body")
		return models.WeatherReport{}, fErr
	}

	s.logger.Debug().
		Ctx(ctx).
		Str("city", city).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("received WeatherAPI response")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return models.WeatherReport{}, statusError(resp.StatusCode, body)
	}

	var report models.WeatherReport
	if err := json.Unmarshal(body, &report); err != nil {
		s.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("city", city).
			Msg("failed to decode WeatherAPI response")
		return models.WeatherReport{}, &FetchError{Kind: KindDecode, Err: err}
	}

	return report, nil
}

func (s *ClientWeatherAPI) buildURL(city string) (string, error) {
	u, err := url.Parse(s.apiURL)
	if err != nil {
		return "", fmt.Errorf("parse weather API URL: %w", err)
	}

	q := u.Query()
	q.Set("key", s.APIKey)
	q.Set("q", city)
	q.Set("aqi", "no")
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func statusError(status int, body []byte) *FetchError {
	var apiErr models.APIError
	message := ""
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != nil {
		message = apiErr.Error.Message
	}

	if status == http.StatusBadRequest {
		if message == "" {
			message = defaultBadRequestMessage
		}
		return &FetchError{Kind: KindClientRequest, StatusCode: status, Message: message}
	}

	return &FetchError{Kind: KindHTTP, StatusCode: status, Message: message}
}

// redactURLError drops the credential from the URL net/http embeds in transport errors.
func redactURLError(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	u, parseErr := url.Parse(urlErr.URL)
	if parseErr != nil {
		return &url.Error{Op: urlErr.Op, URL: "", Err: urlErr.Err}
	}
	return &url.Error{Op: urlErr.Op, URL: logger.RedactURL(u), Err: urlErr.Err}
}

func classifyTransportError(err error) *FetchError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &FetchError{Kind: KindTimeout, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &FetchError{Kind: KindTimeout, Err: err}
	}

	if errors.Is(err, context.Canceled) {
		return &FetchError{Kind: KindGeneric, Err: err}
	}

	var (
		opErr  *net.OpError
		dnsErr *net.DNSError
	)
	if errors.As(err, &opErr) ||
		errors.As(err, &dnsErr) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return &FetchError{Kind: KindConnection, Err: err}
	}

	return &FetchError{Kind: KindGeneric, Err: err}
}
