// SPDX-License-Identifier: MPL-2.0

package vfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
)

// ErrUnknownScheme is the sentinel error wrapped by UnknownSchemeError.
var ErrUnknownScheme = errors.New("unknown filesystem scheme")

// DefaultRegistry is the global registry consulted by package-level helpers.
// The built-in providers are registered during package initialization.
var DefaultRegistry = NewRegistry(NewFileProvider(), NewHTTPProvider("http"), NewHTTPProvider("https"))

type (
	// Provider resolves references for a single URL scheme.
	Provider interface {
		// Scheme returns the URL scheme this provider serves (e.g. "file").
		Scheme() string
		// Open returns the content behind ref. The caller closes the reader.
		Open(ctx context.Context, ref string) (io.ReadCloser, error)
	}

	// Registry maps URL schemes to providers. It preserves registration
	// order and is safe for concurrent use.
	Registry struct {
		mu        sync.RWMutex
		order     []string
		providers map[string]Provider
	}

	// UnknownSchemeError is returned when no provider serves a scheme.
	UnknownSchemeError struct {
		Scheme string
	}
)

// Error implements the error interface.
func (e *UnknownSchemeError) Error() string {
	return fmt.Sprintf("unknown filesystem scheme %q", e.Scheme)
}

// Unwrap returns ErrUnknownScheme so callers can use errors.Is for programmatic detection.
func (e *UnknownSchemeError) Unwrap() error { return ErrUnknownScheme }

// NewRegistry creates a Registry preloaded with the given providers, in order.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider)}
	for _, p := range providers {
		r.Register(p)
	}
	return r
}

// Register adds a provider to the registry.
// Panics if the scheme is empty or already registered.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	scheme := p.Scheme()
	if scheme == "" {
		panic("vfs: cannot register provider with empty scheme")
	}
	if _, exists := r.providers[scheme]; exists {
		panic(fmt.Sprintf("vfs: scheme %q already registered", scheme))
	}
	r.providers[scheme] = p
	r.order = append(r.order, scheme)
}

// Lookup retrieves the provider for a scheme.
// Returns nil, false if the scheme is not registered.
func (r *Registry) Lookup(scheme string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[scheme]
	return p, ok
}

// Schemes returns the registered scheme names in registration order.
func (r *Registry) Schemes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Open resolves ref through the provider matching its URL scheme.
// References without a scheme are served by the "file" provider.
func (r *Registry) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	scheme := schemeOf(ref)

	p, ok := r.Lookup(scheme)
	if !ok {
		return nil, &UnknownSchemeError{Scheme: scheme}
	}

	return p.Open(ctx, ref)
}

// Schemes returns the scheme names of the default registry in registration order.
func Schemes() []string { return DefaultRegistry.Schemes() }

// Open resolves ref through the default registry.
func Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	return DefaultRegistry.Open(ctx, ref)
}

// schemeOf extracts the URL scheme from ref, defaulting to "file".
// Windows drive letters (e.g. "C:\data") are not treated as schemes.
func schemeOf(ref string) string {
	u, err := url.Parse(ref)
	if err != nil || u.Scheme == "" {
		return "file"
	}
	if len(u.Scheme) == 1 && !strings.Contains(ref, "://") {
		return "file"
	}
	return u.Scheme
}
