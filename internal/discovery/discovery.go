// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/invowk/prun/internal/config"
	"github.com/invowk/prun/internal/issue"
	"github.com/invowk/prun/pkg/profile"
)

// FileBaseName is the base name of discovered profile files.
const FileBaseName = "prun"

// Source represents where a profile file was found.
const (
	// SourceInclude indicates the file was listed in the config includes.
	SourceInclude Source = iota
	// SourceUserDir indicates the file was found in the user config directory.
	SourceUserDir
	// SourceCurrentDir indicates the file was found in the working directory.
	SourceCurrentDir
)

// Extensions lists the recognized profile file extensions in lookup order.
var Extensions = []string{".cue", ".toml", ".yaml", ".yml", ".json"}

type (
	// Source represents where a profile file was found.
	Source int

	// DiscoveredFile is a located profile file.
	DiscoveredFile struct {
		// Path is the absolute path to the file.
		Path   string
		Source Source
		// File is the parsed content, nil until Load parses it.
		File *profile.File
	}

	// Result bundles the merged profiles with the files they came from and
	// any diagnostics produced along the way.
	Result struct {
		Set         *profile.Set
		Files       []*DiscoveredFile
		Diagnostics []Diagnostic
	}

	// Discovery finds profile files.
	Discovery struct {
		includes []string
		baseDir  string
		userDir  string
		workDir  string
		noUser   bool
	}

	// Option configures a Discovery.
	Option func(*Discovery)
)

// String returns a human-readable source name.
func (s Source) String() string {
	switch s {
	case SourceInclude:
		return "configured include"
	case SourceUserDir:
		return "user configuration directory"
	case SourceCurrentDir:
		return "current directory"
	default:
		return "unknown"
	}
}

// WithBaseDir sets the directory relative includes are resolved against.
// It defaults to the working directory.
func WithBaseDir(dir string) Option {
	return func(d *Discovery) { d.baseDir = dir }
}

// WithUserDir overrides the user configuration directory.
func WithUserDir(dir string) Option {
	return func(d *Discovery) { d.userDir = dir }
}

// WithoutUserDir skips the user configuration directory.
func WithoutUserDir() Option {
	return func(d *Discovery) { d.noUser = true }
}

// WithWorkDir overrides the working directory.
func WithWorkDir(dir string) Option {
	return func(d *Discovery) { d.workDir = dir }
}

// New creates a Discovery for cfg. A nil cfg means no includes.
func New(cfg *config.Config, opts ...Option) *Discovery {
	d := &Discovery{}
	if cfg != nil {
		d.includes = append(d.includes, cfg.Includes...)
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscoverAll finds all profile files in increasing order of precedence.
// A missing include is an error; missing default locations are not.
func (d *Discovery) DiscoverAll() ([]*DiscoveredFile, []Diagnostic, error) {
	workDir, err := d.resolveWorkDir()
	if err != nil {
		return nil, nil, err
	}
	baseDir := d.baseDir
	if baseDir == "" {
		baseDir = workDir
	}

	var (
		files []*DiscoveredFile
		diags []Diagnostic
		seen  = make(map[string]bool)
	)
	add := func(f *DiscoveredFile) {
		if seen[f.Path] {
			return
		}
		seen[f.Path] = true
		files = append(files, f)
	}

	for _, inc := range d.includes {
		path := inc
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		if !isFile(path) {
			return nil, nil, includeNotFound(inc)
		}
		add(&DiscoveredFile{Path: filepath.Clean(path), Source: SourceInclude})
	}

	if !d.noUser {
		userDir := d.userDir
		if userDir == "" {
			userDir, err = config.ConfigDir()
		}
		if err != nil {
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Code:     CodeUserDirUnavailable,
				Message:  "skipping user profile files",
				Cause:    err,
			})
		} else if f, shadowed := discoverInDir(userDir, SourceUserDir); f != nil {
			add(f)
			diags = append(diags, shadowed...)
		}
	}

	if f, shadowed := discoverInDir(workDir, SourceCurrentDir); f != nil {
		add(f)
		diags = append(diags, shadowed...)
	}

	return files, diags, nil
}

// Load discovers and parses every profile file and merges them into a set.
func (d *Discovery) Load() (*Result, error) {
	files, diags, err := d.DiscoverAll()
	if err != nil {
		return nil, err
	}

	parsed := make([]*profile.File, 0, len(files))
	for _, df := range files {
		f, err := profile.Parse(df.Path)
		if err != nil {
			return nil, parseFailed(df, err)
		}
		df.File = f
		parsed = append(parsed, f)
	}

	return &Result{Set: profile.NewSet(parsed...), Files: files, Diagnostics: diags}, nil
}

func (d *Discovery) resolveWorkDir() (string, error) {
	if d.workDir != "" {
		return d.workDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return wd, nil
}

// discoverInDir returns the first profile file in dir by extension order.
// Any other candidates are reported as shadowed.
func discoverInDir(dir string, source Source) (*DiscoveredFile, []Diagnostic) {
	var (
		found *DiscoveredFile
		diags []Diagnostic
	)
	for _, ext := range Extensions {
		path := filepath.Join(dir, FileBaseName+ext)
		if !isFile(path) {
			continue
		}
		if found == nil {
			found = &DiscoveredFile{Path: path, Source: source}
			continue
		}
		diags = append(diags, Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeShadowedFile,
			Message:  fmt.Sprintf("ignored in favor of %s", filepath.Base(found.Path)),
			Path:     path,
		})
	}
	return found, diags
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func includeNotFound(path string) error {
	return issue.NewErrorContext().
		WithOperation("load profiles").
		WithResource(path).
		WithSuggestion("Check the 'includes' list in your prun configuration").
		WithSuggestion("Use 'prun config show' to see the effective configuration").
		Wrap(fmt.Errorf("profile file not found: %w", fs.ErrNotExist)).
		BuildError()
}

func parseFailed(df *DiscoveredFile, err error) error {
	ctx := issue.NewErrorContext().
		WithOperation("parse profile file").
		WithResource(df.Path)
	var verr *profile.ValidationError
	if errors.As(err, &verr) {
		ctx = ctx.WithSuggestion("Rename the duplicate entry: names must be unique within a file")
	} else {
		ctx = ctx.WithSuggestion("Check the file against the profile schema")
	}
	return ctx.Wrap(err).BuildError()
}
