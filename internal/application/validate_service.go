package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vnupipe/vnupipe/internal/domain"
)

// ValidateRequest describes one validation run. Zero values defer to the
// project configuration.
type ValidateRequest struct {
	// Targets are files or directories; empty means the project root.
	Targets []string
	// Options is overlaid key by key on the project's options map.
	Options map[string]any
	// Settings overrides the validator location; empty fields are ignored.
	Settings domain.ValidatorSettings
	FailOn   string
	// Changed restricts the run to files with uncommitted changes.
	Changed   bool
	Bail      bool
	Cache     bool
	NoHistory bool
	// SkipMissing reports targets that no longer exist as skipped instead
	// of rejecting the run.
	SkipMissing bool
	// Logger receives the validator records; nil discards them.
	Logger domain.Logger
}

// ValidateService expands targets into files and runs them through a Stage.
type ValidateService struct {
	scanner      domain.FileScanner
	runner       domain.ValidatorRunner
	configLoader domain.ConfigLoader
	git          domain.GitInfo
	history      domain.RunHistory
	cache        domain.CacheStore
	settings     domain.ValidatorSettings
	diag         *slog.Logger
}

// NewValidateService creates a new ValidateService with all required dependencies.
// settings are the user-level defaults that the project configuration overrides.
func NewValidateService(
	scanner domain.FileScanner,
	runner domain.ValidatorRunner,
	configLoader domain.ConfigLoader,
	git domain.GitInfo,
	history domain.RunHistory,
	cache domain.CacheStore,
	settings domain.ValidatorSettings,
	diag *slog.Logger,
) *ValidateService {
	if diag == nil {
		diag = slog.New(slog.DiscardHandler)
	}
	return &ValidateService{
		scanner: scanner, runner: runner, configLoader: configLoader,
		git: git, history: history, cache: cache,
		settings: settings, diag: diag,
	}
}

// Validate runs the validator over every target file serially and returns
// the run report. Files that fail do not produce an error: the report's
// Status carries the verdict. Errors are returned for configuration
// problems, a missing validator, or cancellation.
func (s *ValidateService) Validate(ctx context.Context, projectPath string, req ValidateRequest) (*domain.ValidationReport, error) {
	// 1. Load config
	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	// 2. Resolve options, settings and policy
	raw := mergeOptions(cfg.Options, req.Options)
	if unknown := domain.UnknownOptionKeys(raw); len(unknown) > 0 {
		slices.Sort(unknown)
		s.diag.Debug("application.ValidateService.Validate", "ignored options", unknown)
	}
	opts := domain.NormalizeOptions(raw)

	settings := cfg.ApplySettings(s.settings)
	settings = domain.ProjectConfig{
		Java:    req.Settings.Java,
		Jar:     req.Settings.Jar,
		JVMArgs: req.Settings.JVMArgs,
		Timeout: req.Settings.Timeout,
	}.ApplySettings(settings)

	failOn := cfg.FailOn
	if req.FailOn != "" {
		failOn = req.FailOn
	}
	policy, err := domain.ParseFailPolicy(failOn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	// 3. Collect files
	paths, missing, err := s.collect(projectPath, cfg, req)
	if err != nil {
		return nil, err
	}

	// 4. Load cache
	useCache := (cfg.Cache || req.Cache) && s.cache != nil
	optionsHash := cacheKey(opts, settings, policy)
	var cached *domain.ValidationCache
	if useCache {
		cached, err = s.cache.Load(projectPath)
		if err != nil || cached == nil || cached.IsInvalidated(optionsHash) {
			cached = domain.NewValidationCache(projectPath, optionsHash)
		}
	}

	report := &domain.ValidationReport{
		RunID:        uuid.New().String(),
		Status:       domain.StatusPass,
		Format:       opts.Format,
		FailOn:       policy,
		FilesChecked: make([]string, 0, len(paths)),
		Results:      make([]domain.FileResult, 0, len(paths)),
	}
	if s.git != nil && s.git.IsGitRepo(projectPath) {
		report.CommitHash, _ = s.git.CommitHash(projectPath)
	}
	for _, p := range missing {
		report.Results = append(report.Results, domain.FileResult{Path: displayPath(projectPath, p), Status: domain.FileSkipped})
	}

	// 5. Validate serially
	var current *domain.Outcome
	stage := NewStage(opts, settings, s.runner, req.Logger,
		WithFailPolicy(policy),
		WithDiagnostics(s.diag),
		WithRecorder(func(o *domain.Outcome) { current = o }),
	)

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		display := displayPath(projectPath, p)
		report.FilesChecked = append(report.FilesChecked, display)

		contents, err := os.ReadFile(p)
		if err != nil {
			report.Results = append(report.Results, domain.FileResult{Path: display, Status: domain.FileError, Error: err.Error()})
			if req.Bail {
				report.Aborted = true
				break
			}
			continue
		}

		if cached != nil && cached.Has(display, contents) {
			report.Results = append(report.Results, domain.FileResult{Path: display, Status: domain.FileCached})
			continue
		}

		current = nil
		_, err = stage.Transform(ctx, domain.NewFile(p, contents))
		if errors.Is(err, domain.ErrMissingRequirements) || ctx.Err() != nil {
			return nil, err
		}

		result := fileResult(display, current, err)
		report.Results = append(report.Results, result)
		report.Counts.Add(result.Records)

		if cached != nil {
			if err == nil {
				cached.Mark(display, contents)
			} else {
				cached.Forget(display)
			}
		}

		if err != nil && req.Bail {
			report.Aborted = true
			break
		}
	}

	if report.Failed() > 0 {
		report.Status = domain.StatusFail
	}

	// 6. Persist history and cache
	if s.history != nil && !req.NoHistory {
		entry := domain.RunEntry{
			RunID:      report.RunID,
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			CommitHash: report.CommitHash,
			Status:     report.Status,
			Files:      len(report.Results),
			Failed:     report.Failed(),
			Errors:     report.Counts.Errors + report.Counts.NonDocumentErrors,
			Infos:      report.Counts.Infos,
		}
		if err := s.history.Save(projectPath, entry); err != nil {
			s.diag.Warn("application.ValidateService.Validate", "history", err)
		}
	}
	if cached != nil {
		if err := s.cache.Save(cached); err != nil {
			s.diag.Warn("application.ValidateService.Validate", "cache", err)
		}
	}

	return report, nil
}

// collect expands the request targets into absolute file paths. With
// req.SkipMissing, targets that do not exist are returned in missing.
func (s *ValidateService) collect(projectPath string, cfg domain.ProjectConfig, req ValidateRequest) (paths, missing []string, err error) {
	exts := cfg.FileExtensions()

	if req.Changed {
		if s.git == nil || !s.git.IsGitRepo(projectPath) {
			return nil, nil, fmt.Errorf("%w: --changed requires a git repository", domain.ErrInvalidInput)
		}
		changed, err := s.git.ChangedFiles(projectPath)
		if err != nil {
			return nil, nil, fmt.Errorf("listing changed files: %w", err)
		}
		for _, f := range changed {
			if hasExtension(f, exts) && !excluded(f, cfg.ExcludePaths) {
				paths = append(paths, filepath.Join(projectPath, f))
			}
		}
		return paths, nil, nil
	}

	targets := req.Targets
	if len(targets) == 0 {
		targets = []string{projectPath}
	}

	seen := make(map[string]bool)
	add := func(p string) {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, target := range targets {
		info, err := os.Stat(target)
		if req.SkipMissing && errors.Is(err, os.ErrNotExist) {
			missing = append(missing, target)
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		if !info.IsDir() {
			add(target)
			continue
		}
		result, err := s.scanner.Scan(target, exts, cfg.ExcludePaths...)
		if err != nil {
			return nil, nil, fmt.Errorf("scanning %s: %w", target, err)
		}
		for _, f := range result.Files {
			add(filepath.Join(result.RootPath, f))
		}
	}

	return paths, missing, nil
}

// cacheKey identifies everything that can change a verdict besides the
// file contents.
func cacheKey(opts domain.Options, settings domain.ValidatorSettings, policy domain.FailPolicy) string {
	parts := []string{settings.Java}
	parts = append(parts, settings.JVMArgs...)
	parts = append(parts, "-jar", settings.Jar)
	parts = append(parts, opts.Args()...)
	parts = append(parts, string(policy))
	return domain.ContentHash([]byte(strings.Join(parts, "\x00")))
}

func fileResult(path string, o *domain.Outcome, err error) domain.FileResult {
	result := domain.FileResult{Path: path, Status: domain.FileValid}
	if o != nil {
		result.Records = o.Records
	}
	if err == nil {
		return result
	}

	var pe *domain.PluginError
	switch {
	case errors.Is(err, domain.ErrValidationFailed):
		result.Status = domain.FileInvalid
	case errors.Is(err, domain.ErrValidatorFailed) && errors.As(err, &pe):
		result.Status = domain.FileInvalid
		result.Records = []domain.Record{{
			Severity: domain.SeverityError,
			Message:  strings.TrimSpace(pe.Message),
			Meta:     domain.Meta{Path: path},
		}}
	default:
		result.Status = domain.FileError
		result.Error = err.Error()
	}
	return result
}

// mergeOptions overlays override on base without modifying either.
func mergeOptions(base, override map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}

func displayPath(projectPath, p string) string {
	root, err := filepath.Abs(projectPath)
	if err != nil {
		return p
	}
	rel, err := filepath.Rel(root, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return filepath.ToSlash(rel)
}

func hasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

func excluded(path string, excludePaths []string) bool {
	for _, ex := range excludePaths {
		ex = strings.TrimSuffix(ex, "/")
		if path == ex || strings.HasPrefix(path, ex+"/") {
			return true
		}
	}
	return false
}
