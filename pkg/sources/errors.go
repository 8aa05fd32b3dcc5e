package sources

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Code classifies a fetch failure.
type Code string

const (
	CodeNetwork  Code = "network"
	CodeStatus   Code = "status"
	CodeDecode   Code = "decode"
	CodeTimeout  Code = "timeout"
	CodeCanceled Code = "canceled"
	CodeConfig   Code = "config"
	CodeInternal Code = "internal"
)

// FetchError is the typed error every fetch failure is reported as. It is
// local to one widget and retained for display until the next success.
type FetchError struct {
	Code    Code
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is matches another *FetchError with the same code and no message, so the
// sentinels below can be used with errors.Is.
func (e *FetchError) Is(target error) bool {
	t, ok := target.(*FetchError)
	return ok && t.Message == "" && t.Err == nil && t.Code == e.Code
}

// Sentinels for errors.Is comparisons.
var (
	ErrTimeout  = &FetchError{Code: CodeTimeout}
	ErrCanceled = &FetchError{Code: CodeCanceled}
	ErrStatus   = &FetchError{Code: CodeStatus}
	ErrDecode   = &FetchError{Code: CodeDecode}
	ErrNetwork  = &FetchError{Code: CodeNetwork}
)

// ErrNoSource is returned by Registry.Build for kinds that are rendered
// from local state and never fetched (the creature pane).
var ErrNoSource = errors.New("widget kind has no source")

// Errorf builds a FetchError with a formatted message.
func Errorf(code Code, format string, args ...any) *FetchError {
	return &FetchError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// AsFetchError converts any error returned by an adapter into a
// *FetchError. Context errors become timeout or canceled; anything else
// untyped is treated as a network failure.
func AsFetchError(err error) *FetchError {
	if err == nil {
		return nil
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	var ne net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &ne) && ne.Timeout():
		return &FetchError{Code: CodeTimeout, Message: "request timed out", Err: err}
	case errors.Is(err, context.Canceled):
		return &FetchError{Code: CodeCanceled, Message: "request canceled", Err: err}
	default:
		return &FetchError{Code: CodeNetwork, Message: err.Error(), Err: err}
	}
}
