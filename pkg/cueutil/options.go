// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize bounds user-supplied CUE input. Manifests and
// configuration files are tiny; anything near this limit is malformed or
// hostile.
const DefaultMaxFileSize int64 = 1 << 20

type options struct {
	filename    string
	maxFileSize int64
	concrete    bool
}

func defaultOptions() options {
	return options{
		maxFileSize: DefaultMaxFileSize,
		concrete:    true,
	}
}

// Option adjusts a parse operation.
type Option func(*options)

// WithFilename names the input in error messages.
func WithFilename(name string) Option {
	return func(o *options) { o.filename = name }
}

// WithMaxFileSize overrides the input size limit.
func WithMaxFileSize(n int64) Option {
	return func(o *options) { o.maxFileSize = n }
}

// WithConcrete controls whether validation requires concrete values.
// Schemas with optional fields validated against partial data want this
// off.
func WithConcrete(concrete bool) Option {
	return func(o *options) { o.concrete = concrete }
}
