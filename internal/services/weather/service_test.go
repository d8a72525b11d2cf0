package weather

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/weather-cli/internal/models"
	tracelog "github.com/Nazarious-ucu/weather-cli/internal/services/logger"
	"github.com/Nazarious-ucu/weather-cli/pkg/logger"
)

type mockAPIClient struct {
	mock.Mock
}

func (m *mockAPIClient) Fetch(
	ctx context.Context,
	city string,
) (models.WeatherReport, error) {
	args := m.Called(ctx, city)
	data, ok := args.Get(0).(models.WeatherReport)

	if !ok {
		return models.WeatherReport{}, args.Error(1)
	}

	return data, args.Error(1)
}

func TestServiceProvider_GetByCity(t *testing.T) {
	ctx := context.Background()
	successReport := models.WeatherReport{
		Location: &models.Location{Name: models.Text("Lviv")},
		Current:  &models.Current{},
	}
	query := models.NewWeatherQuery("Lviv")

	l, err := logger.NewLogger("", "weather_test")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		cl := &mockAPIClient{}
		cl.On("Fetch", mock.Anything, "Lviv").Return(successReport, nil).Once()

		t.Cleanup(func() {
			cl.AssertExpectations(t)
		})

		result, err := NewService(l, cl).GetByCity(ctx, query)

		require.NoError(t, err)
		assert.Equal(t, successReport, result)
	})

	t.Run("QueryIDReachesClient", func(t *testing.T) {
		cl := &mockAPIClient{}
		carriesID := mock.MatchedBy(func(c context.Context) bool {
			return tracelog.QueryID(c) == query.ID.String()
		})
		cl.On("Fetch", carriesID, "Lviv").Return(successReport, nil).Once()

		_, err := NewService(l, cl).GetByCity(ctx, query)

		require.NoError(t, err)
		cl.AssertExpectations(t)
	})

	t.Run("FetchErrorKeepsKind", func(t *testing.T) {
		cl := &mockAPIClient{}
		cl.On("Fetch", mock.Anything, "Lviv").
			Return(models.WeatherReport{}, &FetchError{Kind: KindTimeout, Err: context.DeadlineExceeded}).
			Once()

		result, err := NewService(l, cl).GetByCity(ctx, query)

		require.Error(t, err)
		assert.Equal(t, KindTimeout, KindOf(err))
		assert.ErrorIs(t, err, ErrTimeout)
		assert.Equal(t, models.WeatherReport{}, result)
	})

	t.Run("PlainErrorBecomesGeneric", func(t *testing.T) {
		cl := &mockAPIClient{}
		cause := errors.New("error")
		cl.On("Fetch", mock.Anything, "Lviv").Return(models.WeatherReport{}, cause).Once()

		_, err := NewService(l, cl).GetByCity(ctx, query)

		var fErr *FetchError
		require.ErrorAs(t, err, &fErr)
		assert.Equal(t, KindGeneric, fErr.Kind)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("PanicIsRecovered", func(t *testing.T) {
		cl := &mockAPIClient{}
		cl.On("Fetch", mock.Anything, "Lviv").Panic("nil map write").Once()

		var (
			result models.WeatherReport
			err    error
		)
		assert.NotPanics(t, func() {
			result, err = NewService(l, cl).GetByCity(ctx, query)
		})

		require.Error(t, err)
		assert.Equal(t, KindGeneric, KindOf(err))
		assert.Contains(t, err.Error(), "nil map write")
		assert.Equal(t, models.WeatherReport{}, result)
	})
}
