package cli

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vnupipe/vnupipe/internal/adapters/outbound/config"
	"github.com/vnupipe/vnupipe/internal/adapters/outbound/vnu"
	"github.com/vnupipe/vnupipe/internal/application"
	"github.com/vnupipe/vnupipe/internal/domain"
)

func newDoctorCmd() *cobra.Command {
	var showConfig bool

	cmd := &cobra.Command{
		Use:   "doctor [path]",
		Short: "Check that java and vnu.jar are usable",
		Long:  "Resolve the validator settings for a project and verify that the java binary and vnu.jar can be found.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg, err := config.New().Load(absPath)
			if err != nil {
				return err
			}
			user, err := config.LoadUserSettings(config.UserConfigDir())
			if err != nil {
				return fmt.Errorf("loading user settings: %w", err)
			}

			inv := application.NewInvoker(cfg.ResolvedOptions(), cfg.ApplySettings(user))
			settings := inv.Settings()
			out := cmd.OutOrStdout()

			if showConfig {
				data, err := config.Render(cfg)
				if err != nil {
					return fmt.Errorf("rendering config: %w", err)
				}
				fmt.Fprintf(out, "%s", data)
			}

			fmt.Fprintf(out, "java:    %s\n", settings.Java)
			fmt.Fprintf(out, "jar:     %s\n", settings.Jar)
			fmt.Fprintf(out, "command: %s\n", vnu.CommandLine(inv.Invocation(&domain.File{})))

			if err := vnu.New().Available(settings); err != nil {
				printStatus(out, "✗", "validator unavailable", color.FgRed)
				return err
			}

			printStatus(out, "✓", "validator ready", color.FgGreen)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showConfig, "config", false, "Print the project configuration")

	return cmd
}
