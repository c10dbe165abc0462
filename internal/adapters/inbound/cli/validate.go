package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/vnupipe/vnupipe/internal/adapters/outbound/tui"
	"github.com/vnupipe/vnupipe/internal/app"
	"github.com/vnupipe/vnupipe/internal/application"
	"github.com/vnupipe/vnupipe/internal/domain"
)

// validateFlags are the flags shared by validate and watch.
type validateFlags struct {
	projectPath string
	format      string
	errorsOnly  bool
	html        bool
	noStream    bool
	verbose     bool
	java        string
	jar         string
	jvmArgs     []string
	timeout     time.Duration
	failOn      string
	cache       bool
	noHistory   bool
}

func (f *validateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.projectPath, "project", ".", "Project root holding .vnupipe.yaml and run history")
	cmd.Flags().StringVar(&f.format, "format", "", "Validator output format (gnu, xml, json, text)")
	cmd.Flags().BoolVar(&f.errorsOnly, "errors-only", false, "Report errors only")
	cmd.Flags().BoolVar(&f.html, "html", false, "Force HTML parsing for every file")
	cmd.Flags().BoolVar(&f.noStream, "no-stream", false, "Buffer input before parsing")
	cmd.Flags().BoolVar(&f.verbose, "verbose", false, "Ask the validator for verbose output")
	cmd.Flags().StringVar(&f.java, "java", "", "Java binary used to run the validator")
	cmd.Flags().StringVar(&f.jar, "jar", "", "Path to vnu.jar")
	cmd.Flags().StringSliceVar(&f.jvmArgs, "jvm-arg", nil, "JVM argument passed ahead of -jar (repeatable)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "Per-file validator timeout (0 waits indefinitely)")
	cmd.Flags().StringVar(&f.failOn, "fail-on", "", "Lowest severity that fails a file (error, info, none)")
	cmd.Flags().BoolVar(&f.cache, "cache", false, "Skip files that passed with identical contents")
	cmd.Flags().BoolVar(&f.noHistory, "no-history", false, "Do not record this run in the history")
}

// request builds a ValidateRequest from the flags the user set. Unset
// flags defer to .vnupipe.yaml.
func (f *validateFlags) request(cmd *cobra.Command, targets []string) (application.ValidateRequest, error) {
	settings := domain.ValidatorSettings{
		Java:    f.java,
		Jar:     f.jar,
		JVMArgs: f.jvmArgs,
		Timeout: f.timeout,
	}
	req := application.ValidateRequest{
		Targets:   targets,
		Options:   map[string]any{},
		Settings:  settings,
		FailOn:    f.failOn,
		Cache:     f.cache,
		NoHistory: f.noHistory,
	}

	if cmd.Flags().Changed("format") {
		if _, ok := domain.ParseFormat(f.format); !ok {
			return req, fmt.Errorf("unknown format %q (valid: gnu, xml, json, text)", f.format)
		}
		req.Options[domain.OptionFormat] = f.format
	}

	bools := map[string]bool{
		domain.OptionErrorsOnly: f.errorsOnly,
		domain.OptionHTML:       f.html,
		domain.OptionNoStream:   f.noStream,
		domain.OptionVerbose:    f.verbose,
	}
	for key, value := range bools {
		if cmd.Flags().Changed(key) {
			req.Options[key] = value
		}
	}

	if f.timeout < 0 {
		return req, fmt.Errorf("--timeout must not be negative (got %s)", f.timeout)
	}
	if f.failOn != "" {
		if _, err := domain.ParseFailPolicy(f.failOn); err != nil {
			return req, err
		}
	}

	return req, nil
}

func newValidateCmd(g *globalOptions) *cobra.Command {
	var (
		flags      validateFlags
		changed    bool
		bail       bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "validate [path...]",
		Short: "Validate HTML files with vnu.jar",
		Long: `Run the vnu HTML validator once per file. Directories are expanded to the
files matching the configured extensions. Without arguments the whole
project is validated.

Exits non-zero when any file fails under the --fail-on policy.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(flags.projectPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			req, err := flags.request(cmd, args)
			if err != nil {
				return err
			}
			req.Changed = changed
			req.Bail = bail
			if !jsonOutput {
				req.Logger = tui.NewConsole(cmd.OutOrStdout())
			}

			svc, err := app.NewValidateService(g.diag())
			if err != nil {
				return err
			}

			report, err := svc.Validate(cmd.Context(), absPath, req)
			if err != nil {
				return fmt.Errorf("validate failed: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			}

			if report.Status == domain.StatusFail {
				return fmt.Errorf("validation failed: %d of %d files did not pass", report.Failed(), len(report.Results))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&changed, "changed", false, "Only validate files with uncommitted git changes")
	cmd.Flags().BoolVar(&bail, "bail", false, "Stop at the first file that fails")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the run report as JSON")

	return cmd
}
