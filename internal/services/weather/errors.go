package weather

import (
	"errors"
	"fmt"
)

// Kind classifies why a lookup did not produce a report.
type Kind int

const (
	KindGeneric Kind = iota
	KindClientRequest
	KindHTTP
	KindConnection
	KindTimeout
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindClientRequest:
		return "client_request"
	case KindHTTP:
		return "http"
	case KindConnection:
		return "connection"
	case KindTimeout:
		return "timeout"
	case KindDecode:
		return "decode"
	default:
		return "generic"
	}
}

var (
	ErrClientRequest = errors.New("invalid city or request")
	ErrHTTP          = errors.New("weather API returned an error status")
	ErrConnection    = errors.New("connection to weather API failed")
	ErrTimeout       = errors.New("weather API request timed out")
	ErrDecode        = errors.New("could not decode weather API response")
	ErrGeneric       = errors.New("unexpected weather lookup failure")
)

const defaultBadRequestMessage = "Bad request, check city name."

// FetchError is the only error type returned by a lookup.
type FetchError struct {
	Kind       Kind
	StatusCode int
	// Message is the API supplied explanation, if any.
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	switch {
	case e.Message != "" && e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d: %s", e.sentinel(), e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d", e.sentinel(), e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.sentinel(), e.Err)
	default:
		return e.sentinel().Error()
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match a FetchError against the sentinel of its kind.
func (e *FetchError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *FetchError) sentinel() error {
	switch e.Kind {
	case KindClientRequest:
		return ErrClientRequest
	case KindHTTP:
		return ErrHTTP
	case KindConnection:
		return ErrConnection
	case KindTimeout:
		return ErrTimeout
	case KindDecode:
		return ErrDecode
	default:
		return ErrGeneric
	}
}

// KindOf reports the failure kind carried by err. Errors that are not a FetchError are generic.
func KindOf(err error) Kind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindGeneric
}
