// status.go implements the "weatherdash status" command.
//
// The status command reports the paths the launcher would use and whether
// each one is in place, without creating, installing, or launching
// anything. Output is a text summary or, with --json, the model.EnvStatus
// snapshot.

package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/weatherdash/internal/model"
)

// newStatusCommand creates the "status" cobra command.
func newStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the dashboard environment without launching",
		Long: `Show the application directory, the interpreter the package manager
provides, the virtual environment, and the dashboard entry point.

Nothing is created or installed.

Examples:
  weatherdash status
  weatherdash status --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := a.newLauncher(cmd).Status(cmd.Context())
			if err != nil {
				return err
			}
			if a.flags.jsonOutput {
				return printStatusJSON(cmd.OutOrStdout(), status)
			}
			printStatusText(cmd.OutOrStdout(), status)
			return nil
		},
	}
}

// printStatusJSON writes the snapshot as indented JSON, with a derived
// "ready" field.
func printStatusJSON(w io.Writer, status *model.EnvStatus) error {
	type statusJSON struct {
		*model.EnvStatus
		Ready bool `json:"ready"`
	}

	data, err := json.MarshalIndent(statusJSON{EnvStatus: status, Ready: status.Ready()}, "", "  ")
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "cannot encode status", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// printStatusText writes the snapshot as aligned lines:
//
//	App directory:  /home/me/weather_dashboard   ok
//	Interpreter:    /opt/homebrew/.../python3.12 ok
//	Virtual env:    /home/me/weather_dashboard/.venv/bin/python missing
//	Entry point:    /home/me/weather_dashboard/weather_dashboard.py ok
func printStatusText(w io.Writer, status *model.EnvStatus) {
	interpreter := status.BasePython
	if interpreter == "" {
		interpreter = "python@" + status.PythonVersion
	}

	fmt.Fprintf(w, "%-16s%s %s\n", "App directory:", status.AppDir, FormatState(status.AppDirExists))
	fmt.Fprintf(w, "%-16s%s %s\n", "Interpreter:", interpreter, FormatState(status.BasePython != ""))
	if status.InterpreterError != "" {
		fmt.Fprintf(w, "%-16s%s\n", "", status.InterpreterError)
	}
	fmt.Fprintf(w, "%-16s%s %s\n", "Virtual env:", status.VenvPython, FormatState(status.VenvReady))
	fmt.Fprintf(w, "%-16s%s %s\n", "Entry point:", status.EntryPoint, FormatState(status.EntryPointExists))

	if status.Ready() {
		fmt.Fprintln(w, "\nReady to launch.")
	} else if status.AppDirExists && !status.VenvReady {
		fmt.Fprintln(w, "\nThe virtual environment will be created on the next launch.")
	}
}

// FormatState renders a presence flag for the text status output.
func FormatState(ok bool) string {
	if ok {
		return "ok"
	}
	return "missing"
}
