// Package cli implements the cobra-based CLI for the weatherdash launcher.
//
// The root command itself is the launcher: invoked with no arguments it
// prepares the dashboard's virtual environment and execs the dashboard.
// The status and config subcommands are read-only helpers. This file
// defines the root command, global flags, and exit code handling.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/weatherdash/internal/config"
	"github.com/shinji-kodama/weatherdash/internal/launcher"
	"github.com/shinji-kodama/weatherdash/internal/logging"
	"github.com/shinji-kodama/weatherdash/internal/model"
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	// configFile overrides the config file search.
	configFile string

	// jsonOutput switches command output and errors to JSON.
	jsonOutput bool

	// verbose enables debug logging on stderr.
	verbose bool
}

// app carries what every command needs once the persistent flags have
// been parsed: the flags themselves, the loaded config, and the options
// used to build the launcher.
type app struct {
	flags        globalFlags
	cfg          *config.Config
	launcherOpts []launcher.Option
}

// NewRootCommand creates and configures the root cobra command.
func NewRootCommand() *cobra.Command {
	return newRootCommand()
}

// newRootCommand builds the command tree. Tests pass launcher options to
// replace the process handoff.
func newRootCommand(opts ...launcher.Option) *cobra.Command {
	a := &app{launcherOpts: opts}

	rootCmd := &cobra.Command{
		Use:   "weatherdash",
		Short: "Bootstrap and launch the weather dashboard",
		Long: `weatherdash makes sure the weather dashboard has a Python virtual
environment, installs its dependencies the first time, and then replaces
itself with the dashboard process.

The interpreter is located through the package manager (brew --prefix
python@<version>). An existing <app>/.venv/bin/python is reused as is.`,

		// The launcher takes no positional arguments.
		Args: cobra.NoArgs,

		// Errors are printed by Execute so the folder-not-found message
		// comes out verbatim and --json can reformat them.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			return a.newLauncher(cmd).Run(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.flags.configFile, "config", "",
		"Config file (default: <config dir>/weatherdash/launcher.{yaml,json,jsonc})")
	rootCmd.PersistentFlags().BoolVar(&a.flags.jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(newStatusCommand(a))
	rootCmd.AddCommand(newConfigCommand(a))

	return rootCmd
}

// setup loads and validates the configuration and installs the logger in
// the command's context. It runs before every command.
func (a *app) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.New(cmd.ErrOrStderr(), a.flags.verbose)
	cmd.SetContext(logging.WithLogger(ctx, logger))

	cfg, err := config.Load(a.flags.configFile)
	if err != nil {
		return model.WrapCLIError(model.ExitConfigInvalid, "cannot load configuration", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.File != "" {
		logger.Debug().Str("file", cfg.File).Msg("loaded config")
	}

	a.cfg = cfg
	return nil
}

// newLauncher creates a launcher whose child processes share the
// command's output streams.
func (a *app) newLauncher(cmd *cobra.Command) *launcher.Launcher {
	return launcher.New(a.cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), a.launcherOpts...)
}

// Execute runs the root command and exits the process with the
// appropriate exit code. On a successful launch it never returns on
// unix, since the process has become the dashboard.
func Execute(rootCmd *cobra.Command) {
	os.Exit(Run(rootCmd))
}

// Run executes rootCmd, prints any error, and returns the exit code.
// CLIError values carry their own code (including a failed child's exit
// status); other errors map to ExitGeneralError.
func Run(rootCmd *cobra.Command) int {
	err := rootCmd.Execute()
	if err == nil {
		return int(model.ExitSuccess)
	}

	jsonOutput, _ := rootCmd.PersistentFlags().GetBool("json")
	printError(rootCmd.ErrOrStderr(), err, jsonOutput)
	return int(model.ExitCodeOf(err))
}

// printError outputs an error message in the appropriate format.
//
// Text output is the error message alone, so the missing-folder case
// prints exactly "Folder not found: <path>". JSON output splits the
// message and the underlying cause.
func printError(w io.Writer, err error, jsonOutput bool) {
	if !jsonOutput {
		fmt.Fprintln(w, err.Error())
		return
	}

	errObj := map[string]interface{}{
		"message": err.Error(),
		"code":    int(model.ExitCodeOf(err)),
	}
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		errObj["message"] = cliErr.Message
		if cliErr.Err != nil {
			errObj["detail"] = cliErr.Err.Error()
		}
	}

	// stdout is reserved for successful command output, so JSON errors
	// also go to stderr.
	data, _ := json.MarshalIndent(map[string]interface{}{"error": errObj}, "", "  ")
	fmt.Fprintln(w, string(data))
}
