package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-cli/internal/models"
	"github.com/Nazarious-ucu/weather-cli/internal/services/weather"
)

const (
	welcomeText     = "Welcome to the Go Weather App!"
	exitHintText    = "Type 'exit' or 'quit' to close the application."
	promptText      = "\nEnter city name (e.g., London, New York, Tokyo): "
	goodbyeText     = "Exiting Weather App. Goodbye!"
	emptyCityText   = "City name cannot be empty. Please try again."
	notFetchedText  = "Could not retrieve weather data for the specified city."
	loopFailureText = "An unexpected error occurred in the main loop: %v\n"
)

// State of the query loop.
type State int

const (
	AwaitingInput State = iota
	Terminated
)

type weatherGetterService interface {
	GetByCity(ctx context.Context, query models.WeatherQuery) (models.WeatherReport, error)
}

type Handler struct {
	service weatherGetterService
	in      *bufio.Reader
	out     io.Writer
	logger  zerolog.Logger
}

func NewHandler(svc weatherGetterService, in io.Reader, out io.Writer, logger zerolog.Logger) *Handler {
	return &Handler{
		service: svc,
		in:      bufio.NewReader(in),
		out:     out,
		logger:  logger,
	}
}

// Run prompts for cities until the user types an exit word, input ends or ctx is cancelled.
// Lookup failures never stop the loop; only an unreadable input does.
func (h *Handler) Run(ctx context.Context) error {
	h.println(welcomeText)
	h.println(exitHintText)

	for {
		state, err := h.Step(ctx)
		if err != nil {
			return err
		}
		if state == Terminated {
			return nil
		}
	}
}

// Step performs one prompt, read and lookup cycle and reports the next state.
func (h *Handler) Step(ctx context.Context) (state State, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error().Ctx(ctx).Interface("panic", r).Msg("query loop iteration panicked")
			h.printf(loopFailureText, r)
			state, err = AwaitingInput, nil
		}
	}()

	h.print(promptText)

	raw, readErr := h.readLine(ctx)
	switch {
	case errors.Is(readErr, context.Canceled), errors.Is(readErr, context.DeadlineExceeded):
		h.println("\n" + goodbyeText)
		return Terminated, nil
	case readErr != nil && !errors.Is(readErr, io.EOF):
		h.logger.Error().Ctx(ctx).Err(readErr).Msg("failed to read input")
		h.printf(loopFailureText, readErr)
		return Terminated, fmt.Errorf("read input: %w", readErr)
	case errors.Is(readErr, io.EOF) && raw == "":
		h.println("\n" + goodbyeText)
		return Terminated, nil
	}

	city := strings.TrimSpace(raw)
	if isExitWord(city) {
		h.println(goodbyeText)
		return Terminated, nil
	}

	if city == "" {
		h.println(emptyCityText)
		return AwaitingInput, nil
	}

	h.lookup(ctx, city)
	return AwaitingInput, nil
}

func (h *Handler) lookup(ctx context.Context, city string) {
	query := models.NewWeatherQuery(city)
	h.printf("Fetching weather for %s...\n", city)

	report, err := h.service.GetByCity(ctx, query)
	if err != nil {
		h.println(FailureMessage(err))
		h.println(notFetchedText)
		return
	}

	if err := Render(h.out, report); err != nil {
		h.logger.Error().Ctx(ctx).Err(err).Str("query_id", query.ID.String()).Msg("failed to render report")
	}
}

// FailureMessage turns a lookup error into the line shown to the user.
func FailureMessage(err error) string {
	var fErr *weather.FetchError
	if !errors.As(err, &fErr) {
		return fmt.Sprintf("An unexpected error occurred: %v", err)
	}

	switch fErr.Kind {
	case weather.KindClientRequest:
		return "Error: Invalid city or request. " + fErr.Message
	case weather.KindHTTP:
		msg := fmt.Sprintf("HTTP error occurred: %d %s - Status Code: %d",
			fErr.StatusCode, http.StatusText(fErr.StatusCode), fErr.StatusCode)
		if fErr.Message != "" {
			msg += ". " + fErr.Message
		}
		return msg
	case weather.KindConnection:
		return fmt.Sprintf("Connection error occurred: %v. Please check your internet connection.", cause(fErr))
	case weather.KindTimeout:
		return fmt.Sprintf("Request timed out: %v. The server took too long to respond.", cause(fErr))
	case weather.KindDecode:
		return "Error: Could not decode JSON response from the API."
	default:
		return fmt.Sprintf("An unexpected error occurred: %v", cause(fErr))
	}
}

func cause(fErr *weather.FetchError) error {
	if fErr.Err != nil {
		return fErr.Err
	}
	return fErr
}

func isExitWord(s string) bool {
	return strings.EqualFold(s, "exit") || strings.EqualFold(s, "quit")
}

type readResult struct {
	line string
	err  error
}

// readLine blocks on the next line of input but gives up as soon as ctx is done.
func (h *Handler) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ch := make(chan readResult, 1)
	go func() {
		line, err := h.in.ReadString('\n')
		ch <- readResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		return res.line, res.err
	}
}

func (h *Handler) print(s string) {
	if _, err := io.WriteString(h.out, s); err != nil {
		h.logger.Warn().Err(err).Msg("failed to write output")
	}
}

func (h *Handler) println(s string) {
	h.print(s + "\n")
}

func (h *Handler) printf(format string, args ...any) {
	h.print(fmt.Sprintf(format, args...))
}
