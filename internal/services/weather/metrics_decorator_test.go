package weather_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Nazarious-ucu/weather-cli/internal/models"
	"github.com/Nazarious-ucu/weather-cli/internal/services/weather"
)

type mockWrapped struct {
	mock.Mock
}

func (m *mockWrapped) Fetch(ctx context.Context, city string) (models.WeatherReport, error) {
	args := m.Called(ctx, city)
	data, ok := args.Get(0).(models.WeatherReport)
	if !ok {
		return models.WeatherReport{}, args.Error(1)
	}
	return data, args.Error(1)
}

type mockCollector struct {
	mock.Mock
}

func (m *mockCollector) ObserveLatency(operation string, duration time.Duration) {
	m.Called(operation, duration)
}

func (m *mockCollector) IncrementCounter(operation string, labels ...string) {
	m.Called(operation, labels)
}

func TestMetricsClient_Success(t *testing.T) {
	wrapped := new(mockWrapped)
	collector := new(mockCollector)
	expected := models.WeatherReport{Location: &models.Location{}, Current: &models.Current{}}

	wrapped.On("Fetch", mock.Anything, "Lviv").Return(expected, nil).Once()
	collector.On("ObserveLatency", "fetch", mock.AnythingOfType("time.Duration")).Once()
	collector.On("IncrementCounter", "fetch", []string{"ok"}).Once()

	data, err := weather.NewMetricsClient(wrapped, collector).Fetch(context.Background(), "Lviv")

	assert.NoError(t, err)
	assert.Equal(t, expected, data)
	wrapped.AssertExpectations(t)
	collector.AssertExpectations(t)
}

func TestMetricsClient_FailureLabelledByKind(t *testing.T) {
	wrapped := new(mockWrapped)
	collector := new(mockCollector)
	fetchErr := &weather.FetchError{Kind: weather.KindClientRequest, StatusCode: 400, Message: "No matching location found."}

	wrapped.On("Fetch", mock.Anything, "Atlantis").Return(models.WeatherReport{}, fetchErr).Once()
	collector.On("ObserveLatency", "fetch", mock.AnythingOfType("time.Duration")).Once()
	collector.On("IncrementCounter", "fetch", []string{"client_request"}).Once()

	_, err := weather.NewMetricsClient(wrapped, collector).Fetch(context.Background(), "Atlantis")

	assert.ErrorIs(t, err, weather.ErrClientRequest)
	wrapped.AssertExpectations(t)
	collector.AssertExpectations(t)
}
