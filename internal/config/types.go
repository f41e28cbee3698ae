// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// RuntimeNative runs actions in the host system shell.
	RuntimeNative RuntimeMode = "native"
	// RuntimeVirtual runs actions in the embedded mvdan/sh interpreter.
	RuntimeVirtual RuntimeMode = "virtual"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultProfile is the profile selected when none is configured.
	DefaultProfile = "main"
	// DefaultEncryptionCost is the default scrypt cost exponent.
	DefaultEncryptionCost = 15

	minEncryptionCost = 10
	maxEncryptionCost = 20
)

var (
	// ErrInvalidConfigRuntimeMode is returned when a RuntimeMode value is not recognized.
	ErrInvalidConfigRuntimeMode = errors.New("invalid runtime mode")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// RuntimeMode specifies the execution runtime for actions.
	RuntimeMode string

	// InvalidConfigRuntimeModeError is returned when a RuntimeMode value is not recognized.
	InvalidConfigRuntimeModeError struct {
		Value RuntimeMode
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidConfigError collects every invalid field of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// DefaultProfile is the profile active when prun starts.
		DefaultProfile string `json:"default_profile" mapstructure:"default_profile"`
		// DefaultRuntime runs actions unless --runtime says otherwise.
		DefaultRuntime RuntimeMode `json:"default_runtime" mapstructure:"default_runtime"`
		// Includes are extra profile files, loaded before the discovered ones.
		Includes []string `json:"includes" mapstructure:"includes"`
		// Shell overrides the shell of the native runtime.
		Shell string `json:"shell" mapstructure:"shell"`
		// UI configures terminal output.
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Encryption configures encrypted parameters.
		Encryption EncryptionConfig `json:"encryption" mapstructure:"encryption"`
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		// Verbose enables debug logging of every action.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// ColorScheme selects the help rendering style.
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
	}

	// EncryptionConfig configures encrypted parameters.
	EncryptionConfig struct {
		// Enabled wires the decrypter; when false encrypted<Name> parameters are ignored.
		Enabled bool `json:"enabled" mapstructure:"enabled"`
		// Cost is the scrypt work factor exponent used by `prun encrypt`.
		Cost int `json:"cost" mapstructure:"cost"`
	}
)

// Error implements the error interface.
func (e *InvalidConfigRuntimeModeError) Error() string {
	return fmt.Sprintf("invalid runtime mode %q (valid: %s, %s)", e.Value, RuntimeNative, RuntimeVirtual)
}

// Unwrap returns ErrInvalidConfigRuntimeMode.
func (e *InvalidConfigRuntimeModeError) Unwrap() error { return ErrInvalidConfigRuntimeMode }

// Validate returns nil for a known runtime mode.
func (m RuntimeMode) Validate() error {
	switch m {
	case RuntimeNative, RuntimeVirtual:
		return nil
	default:
		return &InvalidConfigRuntimeModeError{Value: m}
	}
}

// String returns the string representation of the RuntimeMode.
func (m RuntimeMode) String() string { return string(m) }

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: %s, %s, %s)", e.Value, ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight)
}

// Unwrap returns ErrInvalidColorScheme.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Validate returns nil for a known color scheme.
func (c ColorScheme) Validate() error {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: c}
	}
}

// String returns the string representation of the ColorScheme.
func (c ColorScheme) String() string { return string(c) }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidConfig followed by the field errors, so both the
// sentinel and each field error match errors.Is and errors.As.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// Validate checks the values CUE cannot see, such as environment overrides.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DefaultProfile) == "" {
		errs = append(errs, errors.New("default_profile must not be empty"))
	}
	if err := c.DefaultRuntime.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Encryption.Cost < minEncryptionCost || c.Encryption.Cost > maxEncryptionCost {
		errs = append(errs, fmt.Errorf("encryption.cost %d out of range %d..%d", c.Encryption.Cost, minEncryptionCost, maxEncryptionCost))
	}
	for i, inc := range c.Includes {
		if strings.TrimSpace(inc) == "" {
			errs = append(errs, fmt.Errorf("includes[%d] must not be empty", i))
		}
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultProfile: DefaultProfile,
		DefaultRuntime: RuntimeNative,
		Includes:       []string{},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
		Encryption: EncryptionConfig{
			Enabled: true,
			Cost:    DefaultEncryptionCost,
		},
	}
}
