// Package llm defines the small provider abstraction the advisor talks to,
// so that analysis code never depends on a concrete model SDK.
package llm

import "context"

// Provider generates text from a prompt. Implementations live in
// subpackages (currently Gemini).
type Provider interface {
	Generate(ctx context.Context, prompt string, opts ...Option) (*Response, error)
}

// Response is the provider-agnostic result of one generation call.
type Response struct {
	Content string
	Model   string
}

// Options carries per-call generation settings.
type Options struct {
	Temperature *float64
	MaxTokens   int
}

// Option mutates Options.
type Option func(*Options)

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(o *Options) { o.Temperature = &t }
}

// WithMaxTokens caps the length of the generated reply.
func WithMaxTokens(n int) Option {
	return func(o *Options) { o.MaxTokens = n }
}

// ApplyOptions folds opts into an Options value.
func ApplyOptions(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
