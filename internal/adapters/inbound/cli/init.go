package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vnupipe/vnupipe/internal/adapters/outbound/config"
	"github.com/vnupipe/vnupipe/internal/domain"
)

func newInitCmd() *cobra.Command {
	var (
		format string
		failOn string
		jar    string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .vnupipe.yaml configuration file",
		Long:  "Create a .vnupipe.yaml with the default validator options for your project.",
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

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			f, ok := domain.ParseFormat(format)
			if !ok {
				return fmt.Errorf("unknown format %q (valid: gnu, xml, json, text)", format)
			}
			policy, err := domain.ParseFailPolicy(failOn)
			if err != nil {
				return err
			}

			content := generateConfig(f, policy, jar)

			if err := os.WriteFile(dest, []byte(content), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			printStatus(cmd.OutOrStdout(), "✓", fmt.Sprintf("Created %s", config.FileName), color.FgGreen)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", string(domain.FormatGNU), "Validator output format (gnu, xml, json, text)")
	cmd.Flags().StringVar(&failOn, "fail-on", string(domain.FailOnError), "Lowest severity that fails a file (error, info, none)")
	cmd.Flags().StringVar(&jar, "jar", "", "Path to vnu.jar")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .vnupipe.yaml")

	return cmd
}

func generateConfig(format domain.Format, policy domain.FailPolicy, jar string) string {
	var b strings.Builder

	b.WriteString("# vnupipe configuration\n\n")
	b.WriteString("options:\n")
	fmt.Fprintf(&b, "  format: %s\n", format)
	b.WriteString("  errors-only: false\n")
	b.WriteString("  html: false\n")
	b.WriteString("  no-stream: false\n")
	b.WriteString("  verbose: false\n\n")

	fmt.Fprintf(&b, "fail_on: %s\n\n", policy)

	if jar != "" {
		fmt.Fprintf(&b, "jar: %s\n\n", jar)
	} else {
		b.WriteString("# jar: /opt/vnu/vnu.jar\n\n")
	}

	b.WriteString("extensions:\n")
	for _, ext := range domain.DefaultExtensions {
		fmt.Fprintf(&b, "  - %s\n", ext)
	}
	b.WriteString("\n")

	b.WriteString(`# java: java
# jvm_args:
#   - -Xss1024k
# timeout: 30s

# exclude_paths:
#   - node_modules
#   - dist

# cache: true
# bail: false
`)

	return b.String()
}
