package application

import (
	"context"
	"fmt"

	"github.com/vnupipe/vnupipe/internal/domain"
)

// WatchService re-validates files as they change on disk.
type WatchService struct {
	validator    *ValidateService
	watcher      domain.FileWatcher
	configLoader domain.ConfigLoader
}

func NewWatchService(validator *ValidateService, watcher domain.FileWatcher, configLoader domain.ConfigLoader) *WatchService {
	return &WatchService{validator: validator, watcher: watcher, configLoader: configLoader}
}

// Watch validates every batch of changed files under root until ctx is done.
// onReport is called once per batch with the run report or the run error.
// A failing batch does not stop the watch.
func (s *WatchService) Watch(ctx context.Context, projectPath, root string, req ValidateRequest, onReport func(*domain.ValidationReport, error)) error {
	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	batches, err := s.watcher.Watch(ctx, root, cfg.FileExtensions(), cfg.ExcludePaths...)
	if err != nil {
		return fmt.Errorf("watching %s: %w", root, err)
	}

	for batch := range batches {
		run := req
		run.Targets = batch
		run.Changed = false
		run.SkipMissing = true

		report, err := s.validator.Validate(ctx, projectPath, run)
		if ctx.Err() != nil {
			return nil
		}
		if onReport != nil {
			onReport(report, err)
		}
	}

	return nil
}
