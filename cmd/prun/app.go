// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/invowk/prun/internal/config"
	"github.com/invowk/prun/internal/discovery"
	"github.com/invowk/prun/internal/executor"
	"github.com/invowk/prun/internal/help"
	"github.com/invowk/prun/internal/interpreter"
	"github.com/invowk/prun/internal/issue"
	"github.com/invowk/prun/internal/params"
	"github.com/invowk/prun/internal/runtime"
	"github.com/invowk/prun/internal/secret"
	"github.com/invowk/prun/pkg/profile"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer; all cobra command handlers receive an App.
	App struct {
		Config  config.Provider
		stdout  io.Writer
		stderr  io.Writer
		stdin   io.Reader
		workDir string
		userDir string
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Stdout io.Writer
		Stderr io.Writer
		Stdin  io.Reader
		// WorkDir is where prun.* profile files are looked up and actions
		// run. Empty means the process working directory.
		WorkDir string
		// UserDir overrides the user configuration directory searched for
		// profile files.
		UserDir string
	}

	// SessionOptions are the per-invocation CLI options.
	SessionOptions struct {
		ConfigPath string
		Runtime    string
		Profile    string
		Verbose    bool
	}

	// session is everything one invocation needs, built from configuration
	// and the discovered profile files.
	session struct {
		app      *App
		cfg      *config.Loaded
		logger   *log.Logger
		crypto   *secret.Crypto
		files    []*discovery.DiscoveredFile
		executor *executor.Executor
		verbose  bool
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{
		Config:  deps.Config,
		stdout:  deps.Stdout,
		stderr:  deps.Stderr,
		stdin:   deps.Stdin,
		workDir: deps.WorkDir,
		userDir: deps.UserDir,
	}
}

func (a *App) loadConfig(ctx context.Context, path string) (*config.Loaded, error) {
	return a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: path})
}

func (a *App) newLogger(verbose bool) *log.Logger {
	logger := log.NewWithOptions(a.stderr, log.Options{Prefix: "prun"})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger.With("invocation", uuid.NewString())
}

// newSession loads configuration and profile files and wires the executor.
func (a *App) newSession(ctx context.Context, opts SessionOptions) (*session, error) {
	cfg, err := a.loadConfig(ctx, opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	s := &session{app: a, cfg: cfg, verbose: opts.Verbose || cfg.UI.Verbose}
	s.logger = a.newLogger(s.verbose)
	s.crypto = secret.New(secret.WithCost(uint8(cfg.Encryption.Cost)))

	rtType, err := s.runtimeType(opts.Runtime)
	if err != nil {
		return nil, err
	}

	set, err := s.discover()
	if err != nil {
		return nil, err
	}
	set.Ensure(profile.DefaultProfile)
	s.addBuiltins(set)

	var dec secret.Decrypter
	if cfg.Encryption.Enabled {
		dec = s.crypto
	}
	chain := executor.NewChain(interpreter.New(), params.DefaultChain(dec), executor.WithLogger(s.logger))

	profileName := opts.Profile
	if profileName == "" {
		profileName = cfg.DefaultProfile
	}
	ex, err := executor.New(set, chain,
		executor.WithDefaultProfile(profileName),
		executor.WithHelp(help.NewPrinter(a.stdout, help.WithStyle(helpStyle(cfg.UI.ColorScheme)))),
		executor.WithSuggester(help.NewSuggester(a.stderr)),
	)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("select profile").
			WithResource(profileName).
			WithSuggestion("Run 'prun profiles' to list the defined profiles").
			WithSuggestion("Check 'default_profile' in your configuration").
			Wrap(err).
			BuildError()
	}

	runner := &executor.RuntimeRunner{
		Registry: runtime.NewDefaultRegistry(cfg.Shell),
		Type:     rtType,
		WorkDir:  a.workDir,
		Stdout:   a.stdout,
		Stderr:   a.stderr,
		Stdin:    a.stdin,
	}
	for _, link := range executor.DefaultLinks(ex, runner) {
		chain.Register(link)
	}
	s.executor = ex

	s.logger.Debug("session ready",
		"config", cfg.Path,
		"profile", profileName,
		"runtime", rtType,
		"files", len(s.files),
		"decrypt", dec != nil)
	return s, nil
}

func (s *session) runtimeType(override string) (runtime.RuntimeType, error) {
	mode := override
	if mode == "" {
		mode = string(s.cfg.DefaultRuntime)
	}
	typ, err := runtime.ParseRuntimeType(mode)
	if err != nil {
		return "", issue.NewErrorContext().
			WithOperation("select runtime").
			WithResource(mode).
			WithSuggestion(fmt.Sprintf("Use one of: %s, %s", runtime.RuntimeTypeNative, runtime.RuntimeTypeVirtual)).
			Wrap(err).
			BuildError()
	}
	return typ, nil
}

func (s *session) discover() (*profile.Set, error) {
	opts := []discovery.Option{discovery.WithWorkDir(s.app.workDir)}
	if s.cfg.Path != "" {
		opts = append(opts, discovery.WithBaseDir(filepath.Dir(s.cfg.Path)))
	}
	if s.app.userDir != "" {
		opts = append(opts, discovery.WithUserDir(s.app.userDir))
	}

	res, err := discovery.New(s.cfg.Config, opts...).Load()
	if err != nil {
		return nil, err
	}
	for _, d := range res.Diagnostics {
		s.logger.Warn(d.Message, "code", d.Code, "path", d.Path, "err", d.Cause)
	}
	for _, f := range res.Files {
		s.logger.Debug("loaded profile file", "path", f.Path, "source", f.Source)
	}
	s.files = res.Files
	return res.Set, nil
}

func helpStyle(scheme config.ColorScheme) string {
	switch scheme {
	case config.ColorSchemeDark, config.ColorSchemeLight:
		return string(scheme)
	default:
		return help.StyleAuto
	}
}
