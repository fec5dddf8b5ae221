package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/provisioner/internal/adapters/logging"
	"github.com/felixgeelhaar/provisioner/internal/app"
	"github.com/felixgeelhaar/provisioner/internal/domain/manifest"
	"github.com/felixgeelhaar/provisioner/internal/ports"
)

var (
	// Global flags
	logLevel string
	logJSON  bool
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "provisioner",
	Short: "Compile provisioning steps into cloud-init and shell",
	Long: `Provisioner compiles a declarative manifest of provisioning steps into
target representations without restating intent:

  render cloud-init   a #cloud-config document
  render shell        an idempotent POSIX shell script
  render checks       read-only predicates proving each step is applied`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (env PROVISIONER_LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "emit logs as JSON lines (env PROVISIONER_LOG_JSON)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose error output")

	rootCmd.AddCommand(versionCmd)
}

// settings are process defaults read from the environment; flags win.
type settings struct {
	LogLevel string `env:"PROVISIONER_LOG_LEVEL" envDefault:"warn"`
	LogJSON  bool   `env:"PROVISIONER_LOG_JSON" envDefault:"false"`
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	var s settings
	if err := env.Parse(&s); err != nil {
		return s, fmt.Errorf("invalid environment: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		s.LogLevel = logLevel
	}
	if flags.Changed("log-json") {
		s.LogJSON = logJSON
	}
	return s, nil
}

func newLogger(cmd *cobra.Command) (ports.Logger, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}

	level, err := ports.ParseLevel(s.LogLevel)
	if err != nil {
		return nil, err
	}

	return logging.NewConsoleLogger(
		logging.WithOutput(cmd.ErrOrStderr()),
		logging.WithLevel(level),
		logging.WithJSONFormat(s.LogJSON),
	), nil
}

// newProvisioner is replaced in tests.
var newProvisioner = func(out io.Writer) *app.Provisioner {
	return app.New(out)
}

func provisionerFor(cmd *cobra.Command) (*app.Provisioner, error) {
	logger, err := newLogger(cmd)
	if err != nil {
		return nil, err
	}
	cmd.SetContext(ports.ContextWithLogger(cmd.Context(), logger))
	return newProvisioner(cmd.OutOrStdout()).WithLogger(logger), nil
}

// formatError returns a user-friendly error message.
// With verbose=false: shows only the user message and suggestion.
// With verbose=true: also shows the underlying technical error.
func formatError(err error) string {
	var list *manifest.ErrorList
	if errors.As(err, &list) && list.Len() > 1 {
		parts := make([]string, 0, list.Len())
		for _, e := range list.Errors() {
			parts = append(parts, "  - "+formatUserError(e))
		}
		return fmt.Sprintf("%d problems in manifest:\n%s", list.Len(), strings.Join(parts, "\n"))
	}

	var userErr *manifest.UserError
	if errors.As(err, &userErr) {
		return formatUserError(userErr)
	}
	return err.Error()
}

func formatUserError(e *manifest.UserError) string {
	msg := e.Error()
	if e.Suggestion != "" {
		msg += fmt.Sprintf("\n\nSuggestion: %s", e.Suggestion)
	}
	if verbose && e.Underlying != nil {
		msg += fmt.Sprintf("\n\nTechnical details: %v", e.Underlying)
	}
	return msg
}

// printError prints an error message to stderr with proper formatting.
func printError(err error) {
	printErrorTo(os.Stderr, err)
}

// printErrorTo prints an error message to the given writer.
func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", formatError(err))
}
