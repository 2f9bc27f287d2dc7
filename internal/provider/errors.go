package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// an inline image stream produced zero bytes
	ErrEmptyStream = errors.New("image stream ended without data")

	// the provider call succeeded but yielded no usable images
	ErrNoImages = errors.New("no images were generated")
)

// Kind is a coarse, user-facing category for upstream failures. The mapping
// is advisory only: it selects a friendlier message, never different control
// flow.
type Kind string

const (
	KindInvalidParameters Kind = "invalid_parameters"
	KindRateLimited       Kind = "rate_limited_upstream"
	KindUnavailable       Kind = "upstream_unavailable"
	KindTimeout           Kind = "timeout"
	KindUnknown           Kind = "unknown"
)

// Error wraps an upstream provider failure with its classified kind.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider error (%s): %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wraps an upstream error with a kind inferred from embedded HTTP-like
// status indicators in its text
func Classify(err error) *Error {
	var provErr *Error
	if errors.As(err, &provErr) {
		return provErr
	}

	kind := KindUnknown

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
	case strings.Contains(err.Error(), "422"):
		kind = KindInvalidParameters
	case strings.Contains(err.Error(), "429"):
		kind = KindRateLimited
	case strings.Contains(err.Error(), "503"):
		kind = KindUnavailable
	}

	return &Error{Kind: kind, Err: err}
}

// returns a short human-readable message for a generation failure; the
// original error detail is for logs only and never reaches the client
func FriendlyMessage(err error) string {
	var provErr *Error
	if !errors.As(err, &provErr) {
		return "Failed to generate image. Please try again."
	}

	switch provErr.Kind {
	case KindInvalidParameters:
		return "Invalid generation parameters. Please try different settings."
	case KindRateLimited:
		return "Too many requests. Please wait a moment and try again."
	case KindUnavailable:
		return "Service temporarily unavailable. Please try again later."
	case KindTimeout:
		return "The image service took too long to respond. Please try again."
	default:
		return "Failed to generate image. Please try again."
	}
}
