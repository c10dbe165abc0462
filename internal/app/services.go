// Package app wires the outbound adapters into application services for the
// inbound adapters.
package app

import (
	"fmt"
	"log/slog"

	cacheAdapter "github.com/vnupipe/vnupipe/internal/adapters/outbound/cache"
	"github.com/vnupipe/vnupipe/internal/adapters/outbound/config"
	"github.com/vnupipe/vnupipe/internal/adapters/outbound/gitinfo"
	"github.com/vnupipe/vnupipe/internal/adapters/outbound/history"
	"github.com/vnupipe/vnupipe/internal/adapters/outbound/scanner"
	"github.com/vnupipe/vnupipe/internal/adapters/outbound/vnu"
	"github.com/vnupipe/vnupipe/internal/application"
)

// NewValidateService builds a ValidateService on the production adapters
// with the user-level validator settings. diag receives diagnostics from the
// service and the validator runner; nil discards them.
func NewValidateService(diag *slog.Logger) (*application.ValidateService, error) {
	if diag == nil {
		diag = slog.New(slog.DiscardHandler)
	}

	settings, err := config.LoadUserSettings(config.UserConfigDir())
	if err != nil {
		return nil, fmt.Errorf("loading user settings: %w", err)
	}

	return application.NewValidateService(
		scanner.New(),
		vnu.New(vnu.WithLogger(diag)),
		config.New(),
		gitinfo.New(),
		history.New(),
		cacheAdapter.New(),
		settings,
		diag,
	), nil
}
