// SPDX-License-Identifier: MPL-2.0

package vfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// FileProvider serves references on the local filesystem.
type FileProvider struct{}

// NewFileProvider creates the local filesystem provider.
func NewFileProvider() *FileProvider { return &FileProvider{} }

// Scheme returns "file".
func (*FileProvider) Scheme() string { return "file" }

// Open opens the local file behind ref. Both bare paths and file:// URLs
// are accepted.
func (*FileProvider) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("open %s: %w", ref, ctx.Err())
	default:
	}

	path := strings.TrimPrefix(ref, "file://")

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
