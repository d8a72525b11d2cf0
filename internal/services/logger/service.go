package logger

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const (
	redacted       = "REDACTED"
	maxBodySnippet = 512
	// MaxBodySize caps how much of a response body is buffered for tracing.
	MaxBodySize = 1 << 20
)

// secretParams are query parameters that must never reach the trace log.
var secretParams = []string{"key"}

type RoundTripper struct {
	Logger *zap.Logger
	Proxy  http.RoundTripper
}

func NewRoundTripper(logger *zap.Logger, proxy http.RoundTripper) *RoundTripper {
	if proxy == nil {
		proxy = http.DefaultTransport
	}
	return &RoundTripper{
		Logger: logger,
		Proxy:  proxy,
	}
}

func (l *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := l.Proxy.RoundTrip(req)
	duration := time.Since(start)

	queryID := zap.String("query_id", QueryID(req.Context()))

	if err != nil {
		l.Logger.Error("HTTP request failed",
			queryID,
			zap.String("method", req.Method),
			zap.String("url", RedactURL(req.URL)),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if cErr := resp.Body.Close(); cErr != nil {
		l.Logger.Warn("failed to close response body", queryID, zap.Error(cErr))
	}
	if err != nil {
		l.Logger.Error("Failed to read response body",
			queryID,
			zap.String("method", req.Method),
			zap.String("url", RedactURL(req.URL)),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	resp.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	snippet := bodyBytes
	if len(snippet) > maxBodySnippet {
		snippet = snippet[:maxBodySnippet]
	}

	l.Logger.Info("HTTP request completed",
		queryID,
		zap.String("method", req.Method),
		zap.String("url", RedactURL(req.URL)),
		zap.ByteString("body_snipped", snippet),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	return resp, nil
}

// RedactURL renders u with credential query parameters masked.
func RedactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	masked := *u
	q := masked.Query()
	for _, p := range secretParams {
		if q.Has(p) {
			q.Set(p, redacted)
		}
	}
	masked.RawQuery = q.Encode()
	return masked.String()
}
