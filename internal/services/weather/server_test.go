package weather_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/weather-cli/internal/services/weather"
)

const stubKey = "secret-key-weatherapi"

func newWeatherAPIStub(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/v1/current.json", func(c *gin.Context) {
		if c.Query("key") != stubKey {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"code": 2006, "message": "API key is invalid."}})
			return
		}
		if c.Query("aqi") != "no" {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": 9999, "message": "aqi flag missing"}})
			return
		}

		switch c.Query("q") {
		case "London":
			c.JSON(http.StatusOK, gin.H{
				"location": gin.H{"name": "London", "region": "City of London, Greater London",
					"country": "United Kingdom", "localtime": "2025-07-23 14:00"},
				"current": gin.H{"temp_c": 15, "temp_f": 59, "condition": gin.H{"text": "Cloudy"},
					"humidity": 80, "wind_kph": 13.0, "wind_dir": "WSW", "pressure_mb": 1012,
					"feelslike_c": 14.1, "feelslike_f": 57.4},
			})
		case "Slowtown":
			select {
			case <-c.Request.Context().Done():
			case <-time.After(2 * time.Second):
			}
			c.JSON(http.StatusOK, gin.H{})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": 1006, "message": "No matching location found."}})
		}
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientWeatherAPI_StubServer(t *testing.T) {
	srv := newWeatherAPIStub(t)
	apiURL := srv.URL + "/v1/current.json"
	httpClient := &http.Client{Timeout: time.Second}

	t.Run("London", func(t *testing.T) {
		cl := weather.NewClientWeatherAPI(stubKey, apiURL, httpClient, zerolog.Nop())

		report, err := cl.Fetch(context.Background(), "London")
		require.NoError(t, err)

		assert.Equal(t, "London", report.Location.Name.String())
		assert.Equal(t, "15", report.Current.TempC.String())
		assert.Equal(t, "Cloudy", report.Current.Condition.Text.String())
		assert.Equal(t, "80", report.Current.Humidity.String())
	})

	t.Run("NoMatchingLocation", func(t *testing.T) {
		cl := weather.NewClientWeatherAPI(stubKey, apiURL, httpClient, zerolog.Nop())

		_, err := cl.Fetch(context.Background(), "Qwertyuiop")

		fErr := requireFetchError(t, err)
		assert.Equal(t, weather.KindClientRequest, fErr.Kind)
		assert.Equal(t, "No matching location found.", fErr.Message)
	})

	t.Run("InvalidKey", func(t *testing.T) {
		cl := weather.NewClientWeatherAPI("wrong", apiURL, httpClient, zerolog.Nop())

		_, err := cl.Fetch(context.Background(), "London")

		fErr := requireFetchError(t, err)
		assert.Equal(t, weather.KindHTTP, fErr.Kind)
		assert.Equal(t, http.StatusUnauthorized, fErr.StatusCode)
		assert.Equal(t, "API key is invalid.", fErr.Message)
	})

	t.Run("Timeout", func(t *testing.T) {
		short := &http.Client{Timeout: 50 * time.Millisecond}
		cl := weather.NewClientWeatherAPI(stubKey, apiURL, short, zerolog.Nop())

		_, err := cl.Fetch(context.Background(), "Slowtown")

		fErr := requireFetchError(t, err)
		assert.Equal(t, weather.KindTimeout, fErr.Kind)
	})
}

func TestClientWeatherAPI_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	apiURL := srv.URL + "/v1/current.json"
	srv.Close()

	cl := weather.NewClientWeatherAPI(stubKey, apiURL, &http.Client{Timeout: time.Second}, zerolog.Nop())

	_, err := cl.Fetch(context.Background(), "London")

	fErr := requireFetchError(t, err)
	assert.Equal(t, weather.KindConnection, fErr.Kind)
	assert.ErrorIs(t, err, weather.ErrConnection)
}
