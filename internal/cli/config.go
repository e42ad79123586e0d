// config.go implements the "weatherdash config" command,
// which prints the effective configuration after defaults, the config
// file, and WEATHERDASH_* environment variables have been merged.

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/weatherdash/internal/model"
)

// newConfigCommand creates the "config" cobra command.
func newConfigCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration the launcher would use, as YAML (or JSON with
--json). The config file that was read, if any, is reported on stderr.`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.File != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "# config file: %s\n", a.cfg.File)
			}

			if a.flags.jsonOutput {
				data, err := json.MarshalIndent(a.cfg, "", "  ")
				if err != nil {
					return model.WrapCLIError(model.ExitGeneralError, "cannot encode config", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			data, err := a.cfg.YAML()
			if err != nil {
				return model.WrapCLIError(model.ExitGeneralError, "cannot encode config", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
