// SPDX-License-Identifier: MPL-2.0

package assets

import (
	"errors"
	"fmt"
)

// ErrUnknownPipeline reports a pipeline reference that resolves to nothing.
var ErrUnknownPipeline = errors.New("unknown pipeline")

// ErrManifestInvalid reports a pipeline manifest that exists but cannot be
// decoded.
var ErrManifestInvalid = errors.New("invalid pipeline manifest")

// UnknownPipelineError carries the reference that failed to resolve and,
// for remote references, the underlying transport failure.
type UnknownPipelineError struct {
	Name string
	Err  error
}

func (e *UnknownPipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unknown pipeline %q: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("unknown pipeline %q", e.Name)
}

func (e *UnknownPipelineError) Unwrap() error { return ErrUnknownPipeline }

// ManifestError carries the manifest location and the decode failure.
type ManifestError struct {
	Name string
	Path string
	Err  error
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("pipeline %q: invalid manifest %s: %v", e.Name, e.Path, e.Err)
}

func (e *ManifestError) Unwrap() error { return ErrManifestInvalid }
