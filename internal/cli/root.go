// Package cli is the todo command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/auth"
	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/ui"
)

// Exit codes: 0 ok, 1 error, 2 usage.
const (
	ExitError = 1
	ExitUsage = 2
)

// App is shared by every command.
type App struct {
	ConfigPath string
	BaseURL    string
	Theme      string
	LogLevel   string

	Config config.Config
	Auth   auth.Store
	Logger zerolog.Logger

	logCloser io.Closer
}

// usageError marks errors caused by bad invocation.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

// usageArgs marks argument-count failures as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usagef("%v\nusage: %s", err, cmd.UseLine())
		}
		return nil
	}
}

// ExitCode maps an Execute error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ue usageError
	if errors.As(err, &ue) {
		return ExitUsage
	}
	return ExitError
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "todo",
		Short:         "Edit a remote todo list from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Interactive list (a add, e edit, d delete, r refresh, q quit)
  todo

  # Scriptable commands
  todo add "Buy milk"
  todo ls
  todo rename 2 "Buy oat milk"
  todo rm 3

  # Run a local collection server on :5000
  todo serve
`),
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err: err}
	})

	flags := cmd.PersistentFlags()
	flags.StringVar(&app.ConfigPath, "config", "", "config file (default ~/.tada/config.yaml)")
	flags.StringVar(&app.BaseURL, "base-url", "", "collection server root URL")
	flags.StringVar(&app.Theme, "theme", "", "classic, neon or mono")
	flags.StringVar(&app.LogLevel, "log-level", "", "trace, debug, info, warn, error")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.load(cmd)
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.close()
	}

	cmd.AddCommand(
		newListCmd(app),
		newAddCmd(app),
		newRenameCmd(app),
		newRemoveCmd(app),
		newRenderCmd(app),
		newServeCmd(app),
		newAuthCmd(app),
	)
	return cmd
}

func (a *App) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.ConfigPath)
	if err != nil {
		return err
	}
	if a.BaseURL != "" {
		cfg.BaseURL = a.BaseURL
	}
	if a.Theme != "" {
		cfg.Theme = a.Theme
	}
	if a.LogLevel != "" {
		cfg.LogLevel = a.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return usageError{err: err}
	}
	a.Config = cfg
	ui.SetTheme(cfg.Theme)

	if a.Auth.Dir == "" {
		st, err := auth.DefaultStore()
		if err != nil {
			return err
		}
		a.Auth = st
	}

	// The TUI owns the terminal, so it logs to a file.
	toFile := cmd.Root() == cmd
	logger, closer, err := setupLogging(cfg, cmd.ErrOrStderr(), toFile)
	if err != nil {
		return err
	}
	a.Logger = logger
	a.logCloser = closer
	return nil
}

func (a *App) close() error {
	if a.logCloser == nil {
		return nil
	}
	err := a.logCloser.Close()
	a.logCloser = nil
	return err
}
