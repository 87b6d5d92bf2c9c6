// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidAssetsDirPath is returned when an AssetsDirPath value is whitespace-only.
	ErrInvalidAssetsDirPath = errors.New("invalid assets dir path")
	// ErrInvalidHubEndpoint is returned when a HubEndpoint value is not an absolute HTTP URL.
	ErrInvalidHubEndpoint = errors.New("invalid hub endpoint")
	// ErrInvalidHubToken is returned when a HubToken value is whitespace-only.
	ErrInvalidHubToken = errors.New("invalid hub token")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidAssetsConfig is the sentinel error wrapped by InvalidAssetsConfigError.
	ErrInvalidAssetsConfig = errors.New("invalid assets config")
	// ErrInvalidHubConfig is the sentinel error wrapped by InvalidHubConfigError.
	ErrInvalidHubConfig = errors.New("invalid hub config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// AssetsDirPath represents a filesystem path to the pipeline assets root.
	// The zero value ("") is valid and means "use the per-user default root".
	AssetsDirPath string

	// InvalidAssetsDirPathError is returned when an AssetsDirPath value is
	// non-empty but whitespace-only.
	InvalidAssetsDirPathError struct {
		Value AssetsDirPath
	}

	// HubEndpoint represents the release hub API base URL.
	// The zero value ("") is valid and means "use the canonical hub".
	HubEndpoint string

	// InvalidHubEndpointError is returned when a HubEndpoint value does not
	// parse as an absolute http(s) URL.
	InvalidHubEndpointError struct {
		Value HubEndpoint
	}

	// HubToken represents a bearer token for authenticated hub requests.
	// The zero value ("") is valid and means anonymous access.
	HubToken string

	// InvalidHubTokenError is returned when a HubToken value is non-empty
	// but whitespace-only. The token itself never appears in the message.
	InvalidHubTokenError struct{}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidAssetsConfigError is returned when an AssetsConfig has invalid fields.
	// It wraps ErrInvalidAssetsConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidAssetsConfigError struct {
		FieldErrors []error
	}

	// InvalidHubConfigError is returned when a HubConfig has invalid fields.
	// It wraps ErrInvalidHubConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidHubConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Assets configures where pipeline projects live.
		Assets AssetsConfig `json:"assets" mapstructure:"assets"`
		// Hub configures release hub access.
		Hub HubConfig `json:"hub" mapstructure:"hub"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// AssetsConfig configures the pipeline assets root.
	AssetsConfig struct {
		// Dir overrides the assets root directory.
		Dir AssetsDirPath `json:"dir,omitempty" mapstructure:"dir"`
	}

	// HubConfig configures release hub access.
	HubConfig struct {
		// Endpoint overrides the hub API base URL.
		Endpoint HubEndpoint `json:"endpoint,omitempty" mapstructure:"endpoint"`
		// Token authenticates hub requests when set.
		Token HubToken `json:"token,omitempty" mapstructure:"token"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the AssetsDirPath.
func (p AssetsDirPath) String() string { return string(p) }

// IsValid returns whether the AssetsDirPath is valid.
// The zero value ("") is valid (means "use the per-user default root").
// Non-zero values must not be whitespace-only.
func (p AssetsDirPath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidAssetsDirPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidAssetsDirPathError.
func (e *InvalidAssetsDirPathError) Error() string {
	return fmt.Sprintf("invalid assets dir path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidAssetsDirPath for errors.Is() compatibility.
func (e *InvalidAssetsDirPathError) Unwrap() error { return ErrInvalidAssetsDirPath }

// String returns the string representation of the HubEndpoint.
func (h HubEndpoint) String() string { return string(h) }

// IsValid returns whether the HubEndpoint is valid.
// The zero value ("") is valid (means "use the canonical hub").
// Non-zero values must parse as absolute http or https URLs.
func (h HubEndpoint) IsValid() (bool, []error) {
	if h == "" {
		return true, nil
	}
	u, err := url.Parse(string(h))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return false, []error{&InvalidHubEndpointError{Value: h}}
	}
	return true, nil
}

// Error implements the error interface for InvalidHubEndpointError.
func (e *InvalidHubEndpointError) Error() string {
	return fmt.Sprintf("invalid hub endpoint %q: must be an absolute http(s) URL", e.Value)
}

// Unwrap returns ErrInvalidHubEndpoint for errors.Is() compatibility.
func (e *InvalidHubEndpointError) Unwrap() error { return ErrInvalidHubEndpoint }

// String returns "(set)" or "(unset)" so tokens never leak through logging.
func (t HubToken) String() string {
	if t == "" {
		return "(unset)"
	}
	return "(set)"
}

// IsValid returns whether the HubToken is valid.
// The zero value ("") is valid (means anonymous access).
// Non-zero values must not be whitespace-only.
func (t HubToken) IsValid() (bool, []error) {
	if t == "" {
		return true, nil
	}
	if strings.TrimSpace(string(t)) == "" {
		return false, []error{&InvalidHubTokenError{}}
	}
	return true, nil
}

// Error implements the error interface for InvalidHubTokenError.
func (e *InvalidHubTokenError) Error() string {
	return "invalid hub token: non-empty value must not be whitespace-only"
}

// Unwrap returns ErrInvalidHubToken for errors.Is() compatibility.
func (e *InvalidHubTokenError) Unwrap() error { return ErrInvalidHubToken }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the AssetsConfig has valid fields.
// It delegates to Dir.IsValid().
func (c AssetsConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Dir.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidAssetsConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidAssetsConfigError.
func (e *InvalidAssetsConfigError) Error() string {
	return fmt.Sprintf("invalid assets config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidAssetsConfig for errors.Is() compatibility.
func (e *InvalidAssetsConfigError) Unwrap() error { return ErrInvalidAssetsConfig }

// IsValid returns whether the HubConfig has valid fields.
// It delegates to Endpoint.IsValid() and Token.IsValid().
func (c HubConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Endpoint.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Token.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidHubConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidHubConfigError.
func (e *InvalidHubConfigError) Error() string {
	return fmt.Sprintf("invalid hub config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidHubConfig for errors.Is() compatibility.
func (e *InvalidHubConfigError) Unwrap() error { return ErrInvalidHubConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to Assets.IsValid(), Hub.IsValid(), and UI.IsValid().
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Assets.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Hub.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Assets: AssetsConfig{
			Dir: "", // Will use the per-user default root if empty
		},
		Hub: HubConfig{
			Endpoint: "", // Will use the canonical hub if empty
			Token:    "",
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
