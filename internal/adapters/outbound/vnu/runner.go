package vnu

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/vnupipe/vnupipe/internal/domain"
)

// waitDelay bounds how long Run waits for output pipes after the shell is
// killed; the JVM may outlive it.
const waitDelay = 2 * time.Second

// Option configures a ShellRunner.
type Option func(*ShellRunner)

// WithShell sets the shell used to interpret the command line.
func WithShell(shell string) Option {
	return func(r *ShellRunner) { r.shell = shell }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *ShellRunner) {
		if l != nil {
			r.logger = l
		}
	}
}

// ShellRunner implements domain.ValidatorRunner by running the validator
// command line through a shell.
type ShellRunner struct {
	shell  string
	logger *slog.Logger
}

var _ domain.ValidatorRunner = (*ShellRunner)(nil)

// New creates a ShellRunner using /bin/sh.
func New(opts ...Option) *ShellRunner {
	r := &ShellRunner{
		shell:  "/bin/sh",
		logger: slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// CommandLine renders inv as a single shell command with every word quoted.
func CommandLine(inv domain.Invocation) string {
	words := make([]string, 0, len(inv.Argv)+1)
	words = append(words, inv.Java)
	words = append(words, inv.Argv...)
	return shellquote.Join(words...)
}

// Run executes inv and captures its output. A non-zero exit returns the
// *exec.ExitError together with the captured output. A java binary that
// cannot be resolved is reported as domain.ErrMissingRequirements without
// spawning anything; an expired timeout as domain.ErrTimeout.
func (r *ShellRunner) Run(ctx context.Context, inv domain.Invocation) (domain.RunResult, error) {
	ctx, span := startRunSpan(ctx, inv)
	defer span.End()
	start := time.Now()

	if _, err := exec.LookPath(inv.Java); err != nil {
		err = fmt.Errorf("%w: %s: %w", domain.ErrMissingRequirements, inv.Java, err)
		span.RecordError(err)
		recordRunMetrics(ctx, time.Since(start), runMissing)
		return domain.RunResult{}, err
	}

	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	line := CommandLine(inv)
	r.logger.Debug("vnu.ShellRunner.Run", "command", line)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.shell, "-c", line)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	res := domain.RunResult{Stdout: stdout.String(), Stderr: stderr.String()}

	status := runOK
	switch {
	case err == nil:
	case inv.Timeout > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded):
		err = fmt.Errorf("%w after %s", domain.ErrTimeout, inv.Timeout)
		status = runTimeout
	default:
		status = runFailed
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			err = fmt.Errorf("%w: %w", domain.ErrValidatorFailed, err)
		}
	}

	setRunSpanResult(span, cmd.ProcessState, status)
	if err != nil {
		span.RecordError(err)
		r.logger.Debug("vnu.ShellRunner.Run", "error", err, "stderr bytes", stderr.Len())
	}
	recordRunMetrics(ctx, time.Since(start), status)

	return res, err
}

// Available reports whether the java binary resolves and the jar exists.
func (r *ShellRunner) Available(settings domain.ValidatorSettings) error {
	var errs []error

	if _, err := exec.LookPath(settings.Java); err != nil {
		errs = append(errs, fmt.Errorf("java %q not found: %w", settings.Java, err))
	}

	info, err := os.Stat(settings.Jar)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("validator jar %q: %w", settings.Jar, err))
	case info.IsDir():
		errs = append(errs, fmt.Errorf("validator jar %q is a directory", settings.Jar))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrMissingRequirements, errors.Join(errs...))
	}
	return nil
}
