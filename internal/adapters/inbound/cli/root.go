package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	logLevel  string
	logFormat string
	logger    *slog.Logger
}

// diag returns the diagnostics logger, discarding output before the
// persistent flags are parsed.
func (g *globalOptions) diag() *slog.Logger {
	if g.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return g.logger
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "vnupipe",
		Short: "Validate HTML with the Nu Html Checker",
		Long:  "vnupipe runs the vnu.jar HTML validator over your files one at a time and reports every message it finds.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			g.logger = newLogger(g.logLevel, g.logFormat, cmd.ErrOrStderr())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "Diagnostics level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&g.logFormat, "log-format", "text", "Diagnostics format (text, json)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newValidateCmd(g))
	cmd.AddCommand(newWatchCmd(g))
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newMCPCmd(g))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
