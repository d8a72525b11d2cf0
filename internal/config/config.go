package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	configFileEnv = "WEATHER_CONFIG_FILE"

	defaultAPIURL      = "http://api.weatherapi.com/v1/current.json"
	defaultHTTPTimeout = 10
	defaultMetricsJob  = "weather_cli"
)

var (
	ErrMissingAPIKey  = errors.New("WEATHER_API_KEY is not set")
	ErrInvalidURL     = errors.New("WEATHER_API_URL is not a valid absolute URL")
	ErrInvalidTimeout = errors.New("WEATHER_HTTP_TIMEOUT must be positive")
)

type Weather struct {
	APIKey      string `envconfig:"WEATHER_API_KEY" yaml:"api_key"`
	APIURL      string `envconfig:"WEATHER_API_URL" yaml:"api_url"`
	HTTPTimeout int    `envconfig:"WEATHER_HTTP_TIMEOUT" yaml:"http_timeout"`
}

type Logs struct {
	Path     string `envconfig:"LOGS_PATH" yaml:"path"`
	HTTPPath string `envconfig:"HTTP_LOGS_PATH" yaml:"http_path"`
	Level    string `envconfig:"LOG_LEVEL" yaml:"level"`
	Console  bool   `envconfig:"LOG_CONSOLE" yaml:"console"`
}

type Metrics struct {
	PushURL string `envconfig:"METRICS_PUSH_URL" yaml:"push_url"`
	Job     string `envconfig:"METRICS_JOB" yaml:"job"`
}

type Config struct {
	Weather Weather `yaml:"weather"`
	Logs    Logs    `yaml:"logs"`
	Metrics Metrics `yaml:"metrics"`
}

// NewConfig builds the configuration from defaults, the optional YAML file named by
// WEATHER_CONFIG_FILE and finally the process environment, later sources winning.
func NewConfig() (*Config, error) {
	return Load(os.Getenv(configFileEnv))
}

func Load(filePath string) (*Config, error) {
	cfg := defaults()

	if filePath != "" {
		if err := readFile(filePath, &cfg); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	if c.Weather.APIKey == "" {
		return ErrMissingAPIKey
	}
	u, err := url.Parse(c.Weather.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURL, c.Weather.APIURL)
	}
	if c.Weather.HTTPTimeout <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}

func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.Weather.HTTPTimeout) * time.Second
}

// String hides the credential so the config can be logged as a whole.
func (c Config) String() string {
	masked := c
	if masked.Weather.APIKey != "" {
		masked.Weather.APIKey = "***"
	}
	type plain Config
	return fmt.Sprintf("%+v", plain(masked))
}

func defaults() Config {
	return Config{
		Weather: Weather{
			APIURL:      defaultAPIURL,
			HTTPTimeout: defaultHTTPTimeout,
		},
		Logs: Logs{
			Path:     "./log/weather-cli.log",
			HTTPPath: "./log/weather-cli-http.log",
			Level:    "info",
		},
		Metrics: Metrics{
			Job: defaultMetricsJob,
		},
	}
}

func readFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filepath.Clean(filePath))
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", filePath, err)
	}
	return nil
}
