package provider

import "context"

// Generator produces images from a text prompt via an external service.
// Implementations return raw outputs; callers run them through Normalize
// to get displayable URLs.
type Generator interface {
	Generate(ctx context.Context, req Request) ([]Output, error)
}
