// Package options holds the functional-option type shared by the façade
// decode/encode entry points.
package options

import (
	"github.com/bgrewell/marc-kit/pkg/logging"
	"github.com/go-logr/logr"
)

// Options represents the options for a decode or encode call.
type Options struct {
	Logger           *logging.Logger
	LenientDirectory bool
}

// Option represents a function that modifies the Options.
type Option func(*Options)

// Default returns the baseline Options: a discarding logger and strict
// directory-terminator checking.
func Default() Options {
	return Options{
		Logger:           logging.DefaultLogger(),
		LenientDirectory: false,
	}
}

// WithLogger sets the logr.Logger used for Trace/Debug diagnostics during
// decode/encode.
func WithLogger(logger logr.Logger) Option {
	return func(o *Options) {
		o.Logger = logging.NewLogger(logger)
	}
}

// WithLenientDirectory allows the ISO 2709 parser to accept a record whose
// directory is missing its field-terminator byte immediately before the
// data area, per spec.md §4.3 step 2.
func WithLenientDirectory(enabled bool) Option {
	return func(o *Options) {
		o.LenientDirectory = enabled
	}
}

// Apply folds a list of Option over the default Options.
func Apply(opts ...Option) Options {
	o := Default()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
