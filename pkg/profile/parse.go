// SPDX-License-Identifier: MPL-2.0

package profile

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/invowk/prun/pkg/cueutil"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Profile file formats, keyed by file extension.
const (
	FormatCUE  Format = "cue"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

//go:embed profile_schema.cue
var profileSchema []byte

// ErrUnsupportedFormat is returned for files whose extension is not a known format.
var ErrUnsupportedFormat = errors.New("unsupported profile file format")

type (
	// Format is the serialization of a profile file.
	Format string

	// File is one parsed profile file.
	File struct {
		Path     string     `json:"-"`
		Profiles []*Profile `json:"profiles"`
	}

	// ValidationError reports a definition the schema cannot rule out, such
	// as duplicate names.
	ValidationError struct {
		Path    string
		Field   string
		Message string
	}
)

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Path, e.Field, e.Message)
}

// FormatOf maps a file name to its format.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return FormatCUE, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Parse reads and parses the profile file at path.
func Parse(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file %s: %w", path, err)
	}
	return ParseBytes(data, path, format)
}

// ParseBytes parses a profile document of the given format. path is only
// used in error messages and recorded on the returned File.
func ParseBytes(data []byte, path string, format Format) (*File, error) {
	doc := data
	switch format {
	case FormatCUE, FormatJSON:
	case FormatTOML:
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		converted, err := json.Marshal(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		doc = converted
	case FormatYAML:
		var m map[string]any
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		converted, err := json.Marshal(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		doc = converted
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	f, err := cueutil.Decode[File](profileSchema, doc, "#ProfileFile", cueutil.WithFilename(path))
	if err != nil {
		return nil, err
	}
	f.Path = path

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks name uniqueness of profiles, commands and variables.
func (f *File) Validate() error {
	var errs []error
	seenProfiles := make(map[string]bool)
	for i, p := range f.Profiles {
		field := fmt.Sprintf("profiles[%d]", i)
		if seenProfiles[p.Name] {
			errs = append(errs, &ValidationError{Path: f.Path, Field: field, Message: fmt.Sprintf("duplicate profile %q", p.Name)})
		}
		seenProfiles[p.Name] = true

		seenCommands := make(map[string]bool)
		for j, c := range p.Commands {
			cmdField := fmt.Sprintf("%s.commands[%d]", field, j)
			if seenCommands[c.Name] {
				errs = append(errs, &ValidationError{Path: f.Path, Field: cmdField, Message: fmt.Sprintf("duplicate command %q in profile %q", c.Name, p.Name)})
			}
			seenCommands[c.Name] = true

			seenVars := make(map[string]bool)
			for k, v := range c.Variables() {
				if seenVars[v.Name] {
					errs = append(errs, &ValidationError{
						Path:    f.Path,
						Field:   fmt.Sprintf("%s.help.variables[%d]", cmdField, k),
						Message: fmt.Sprintf("duplicate variable %q", v.Name),
					})
				}
				seenVars[v.Name] = true
			}
		}
	}
	return errors.Join(errs...)
}
