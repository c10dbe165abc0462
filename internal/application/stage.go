package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/vnupipe/vnupipe/internal/domain"
)

// StageResult is what Pipe emits per input file: either File or Err is set.
type StageResult struct {
	File *domain.File
	Err  error
}

// StageOption configures a Stage.
type StageOption func(*Stage)

// WithRecorder registers fn to receive the outcome of every validated file.
func WithRecorder(fn func(*domain.Outcome)) StageOption {
	return func(s *Stage) { s.recorder = fn }
}

// WithFailPolicy overrides the default FailOnError policy.
func WithFailPolicy(p domain.FailPolicy) StageOption {
	return func(s *Stage) { s.policy = p }
}

// WithDiagnostics sets the logger used for debug output.
func WithDiagnostics(l *slog.Logger) StageOption {
	return func(s *Stage) {
		if l != nil {
			s.diag = l
		}
	}
}

// Stage is the one-in-one-out transform that validates files.
type Stage struct {
	invoker  *Invoker
	format   domain.Format
	policy   domain.FailPolicy
	runner   domain.ValidatorRunner
	logger   domain.Logger
	diag     *slog.Logger
	recorder func(*domain.Outcome)
}

// NewStage builds a stage from normalized options. logger receives every
// record produced while validating; it is owned by this stage only.
func NewStage(opts domain.Options, settings domain.ValidatorSettings, runner domain.ValidatorRunner, logger domain.Logger, options ...StageOption) *Stage {
	s := &Stage{
		invoker: NewInvoker(opts, settings),
		format:  opts.Format,
		policy:  domain.FailOnError,
		runner:  runner,
		logger:  logger,
		diag:    slog.New(slog.DiscardHandler),
	}
	for _, o := range options {
		o(s)
	}
	return s
}

func (s *Stage) Format() domain.Format { return s.format }

func (s *Stage) Policy() domain.FailPolicy { return s.policy }

func (s *Stage) Invoker() *Invoker { return s.invoker }

// Transform validates f. It returns f itself on success and a
// *domain.PluginError on failure, never both. Null files are returned
// without running the validator; stream files are rejected.
func (s *Stage) Transform(ctx context.Context, f *domain.File) (*domain.File, error) {
	if f == nil || f.IsNull() {
		return f, nil
	}

	path := f.Path()
	if f.IsStream() {
		return nil, domain.NewPluginError(path, "", domain.ErrStreamingNotSupported)
	}

	inv := s.invoker.Invocation(f)
	s.diag.Debug("application.Stage.Transform", "file path", path, "argv", inv.Argv)

	res, runErr := s.runner.Run(ctx, inv)
	if err := ctx.Err(); err != nil {
		return nil, domain.NewPluginError(path, "", err)
	}
	if errors.Is(runErr, domain.ErrMissingRequirements) || errors.Is(runErr, domain.ErrTimeout) {
		return nil, domain.NewPluginError(path, res.Stderr, runErr)
	}

	outcome, err := Classify(s.format, s.policy, path, res, runErr)
	if err != nil {
		s.diag.Debug("application.Stage.Transform", "file path", path, "error", err)
		return nil, domain.NewPluginError(path, res.Stderr, err)
	}

	s.report(outcome)

	if outcome.Passed {
		return f, nil
	}
	if len(outcome.Records) > 0 {
		return nil, domain.NewPluginError(path, "", domain.ErrValidationFailed).WithRecords(outcome.Records)
	}
	return nil, domain.NewPluginError(path, res.Stderr, domain.ErrValidatorFailed)
}

// Pipe runs Transform over every file received on in, one at a time. The
// next file is read only after the previous result has been taken from the
// returned channel. The output closes when in closes or ctx is done.
func (s *Stage) Pipe(ctx context.Context, in <-chan *domain.File) <-chan StageResult {
	out := make(chan StageResult)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case f, ok := <-in:
				if !ok {
					return
				}
				file, err := s.Transform(ctx, f)
				select {
				case out <- StageResult{File: file, Err: err}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

func (s *Stage) report(o *domain.Outcome) {
	if s.recorder != nil {
		s.recorder(o)
	}
	if s.logger == nil {
		return
	}

	for _, r := range o.Records {
		s.logger.Log(r.Severity, r.Message, r.Meta)
	}

	if !o.Passed && len(o.Records) == 0 {
		msg := strings.TrimSpace(o.Stderr)
		if msg == "" && o.Err != nil {
			msg = o.Err.Error()
		}
		s.logger.Log(domain.SeverityError, msg, domain.Meta{Path: o.Path})
	}
}
