package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vnupipe/vnupipe/internal/adapters/outbound/config"
	"github.com/vnupipe/vnupipe/internal/adapters/outbound/tui"
	"github.com/vnupipe/vnupipe/internal/adapters/outbound/watcher"
	"github.com/vnupipe/vnupipe/internal/app"
	"github.com/vnupipe/vnupipe/internal/application"
	"github.com/vnupipe/vnupipe/internal/domain"
)

func newWatchCmd(g *globalOptions) *cobra.Command {
	var (
		flags    validateFlags
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Re-validate HTML files as they change",
		Long:  "Watch a directory and run the validator over every file that is created or modified. Stops on Ctrl+C.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(flags.projectPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			root := absPath
			if len(args) > 0 {
				if root, err = filepath.Abs(args[0]); err != nil {
					return fmt.Errorf("resolving path: %w", err)
				}
			}

			req, err := flags.request(cmd, nil)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			req.Logger = tui.NewConsole(out)

			validator, err := app.NewValidateService(g.diag())
			if err != nil {
				return err
			}
			svc := application.NewWatchService(
				validator,
				watcher.New(watcher.WithDebounce(debounce), watcher.WithLogger(g.diag())),
				config.New(),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			printStatus(out, "●", fmt.Sprintf("Watching %s (Ctrl+C to stop)", root), color.FgCyan)

			return svc.Watch(ctx, absPath, root, req, func(report *domain.ValidationReport, err error) {
				stamp := time.Now().Format("15:04:05")
				switch {
				case err != nil:
					printStatus(out, "!", fmt.Sprintf("%s %v", stamp, err), color.FgRed)
				case report.Status == domain.StatusPass:
					printStatus(out, "✓", fmt.Sprintf("%s %s valid", stamp, countFiles(len(report.Results))), color.FgGreen)
				default:
					printStatus(out, "✗", fmt.Sprintf("%s %d of %s failed", stamp, report.Failed(), countFiles(len(report.Results))), color.FgRed)
				}
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", watcher.DefaultDebounce, "Quiet period before a batch of changes is validated")

	return cmd
}

func countFiles(n int) string {
	if n == 1 {
		return "1 file"
	}
	return fmt.Sprintf("%d files", n)
}
