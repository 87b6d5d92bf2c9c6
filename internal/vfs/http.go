// SPDX-License-Identifier: MPL-2.0

package vfs

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// maxRemoteBytes is the upper bound on remote content size (10 MB).
// Prevents unbounded memory consumption from misbehaving servers.
const maxRemoteBytes = 10 << 20

// HTTPProvider serves http:// and https:// references.
type HTTPProvider struct {
	scheme string
	client *http.Client
}

// NewHTTPProvider creates an HTTP provider for the given scheme
// ("http" or "https").
func NewHTTPProvider(scheme string) *HTTPProvider {
	return &HTTPProvider{scheme: scheme, client: http.DefaultClient}
}

// NewHTTPProviderWithClient creates an HTTP provider with a custom client,
// useful for tests or proxy configurations.
func NewHTTPProviderWithClient(scheme string, client *http.Client) *HTTPProvider {
	return &HTTPProvider{scheme: scheme, client: client}
}

// Scheme returns the provider's URL scheme.
func (p *HTTPProvider) Scheme() string { return p.scheme }

// Open fetches ref and returns the response body, bounded at maxRemoteBytes.
// The caller closes the returned reader.
func (p *HTTPProvider) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", ref, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", ref, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetching %s: unexpected status %d", ref, resp.StatusCode)
	}

	return &limitedBody{r: io.LimitReader(resp.Body, maxRemoteBytes), body: resp.Body}, nil
}

// limitedBody couples a size-bounded reader with the underlying body's Close.
type limitedBody struct {
	r    io.Reader
	body io.ReadCloser
}

func (b *limitedBody) Read(p []byte) (int, error) { return b.r.Read(p) }

func (b *limitedBody) Close() error { return b.body.Close() }
