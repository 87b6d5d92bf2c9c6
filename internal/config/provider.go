// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/pipewalk/pipewalk/pkg/types"
)

// ErrInvalidLoadOptions is the sentinel error wrapped by InvalidLoadOptionsError.
var ErrInvalidLoadOptions = errors.New("invalid load options")

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config file when set.
	ConfigFilePath types.FilesystemPath
	// ConfigDirPath overrides the config directory lookup when set.
	ConfigDirPath types.FilesystemPath
}

// InvalidLoadOptionsError is returned when LoadOptions carry invalid paths.
// It wraps ErrInvalidLoadOptions for errors.Is() compatibility.
type InvalidLoadOptionsError struct {
	FieldErrors []error
}

// Error implements the error interface for InvalidLoadOptionsError.
func (e *InvalidLoadOptionsError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("invalid load options: %v", e.FieldErrors[0])
	}
	return fmt.Sprintf("invalid load options: %d field errors", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidLoadOptions for errors.Is() compatibility.
func (e *InvalidLoadOptionsError) Unwrap() error { return ErrInvalidLoadOptions }

// Validate checks that every set path is usable. Empty fields are valid;
// the zero value means "use the default lookup".
func (o LoadOptions) Validate() error {
	var fieldErrs []error
	if o.ConfigFilePath != "" {
		if valid, errs := o.ConfigFilePath.IsValid(); !valid {
			fieldErrs = append(fieldErrs, errs...)
		}
	}
	if o.ConfigDirPath != "" {
		if valid, errs := o.ConfigDirPath.IsValid(); !valid {
			fieldErrs = append(fieldErrs, errs...)
		}
	}
	if len(fieldErrs) > 0 {
		return &InvalidLoadOptionsError{FieldErrors: fieldErrs}
	}
	return nil
}

// Provider loads configuration from explicit options.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
}

type fileProvider struct{}

// NewProvider creates a configuration provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadWithPath reads configuration and also reports which file it came
// from; the path is empty when only defaults applied.
func LoadWithPath(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	return loadWithOptions(ctx, opts)
}
