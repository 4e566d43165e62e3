package config

import (
	"context"
	"errors"
)

// ErrOptionsNotFound is returned by FromContext when no Options were stored.
var ErrOptionsNotFound = errors.New("config: options not found in context")

type contextKey int

var optionsKey contextKey

// NewContext returns a new Context carrying opts.
func NewContext(ctx context.Context, opts *Options) context.Context {
	return context.WithValue(ctx, optionsKey, opts)
}

// FromContext returns the Options value stored in ctx, if any.
func FromContext(ctx context.Context) (*Options, bool) {
	opts, ok := ctx.Value(optionsKey).(*Options)
	return opts, ok
}
