package application

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vnupipe/vnupipe/internal/domain"
)

// Classify interprets one validator run for the file at path.
//
// In structured mode stderr must hold a message envelope; anything else is
// an ErrInvalidOutput error. A clean exit with no messages yields a single
// success record; otherwise every message becomes a record. In the other
// modes a nil runErr is a pass and a non-nil one fails with the stderr text.
// Whether records fail the file is decided by policy alone.
func Classify(format domain.Format, policy domain.FailPolicy, path string, res domain.RunResult, runErr error) (*domain.Outcome, error) {
	outcome := &domain.Outcome{
		Path:   path,
		Format: format,
		Stderr: res.Stderr,
		Err:    runErr,
	}

	if !format.Structured() {
		outcome.Passed = runErr == nil
		return outcome, nil
	}

	var env domain.Envelope
	if err := json.Unmarshal([]byte(strings.TrimSpace(res.Stderr)), &env); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidOutput, err)
	}

	if len(env.Messages) == 0 {
		if runErr != nil {
			// Process failed without reporting anything; stderr is all we have.
			return outcome, nil
		}
		outcome.Records = []domain.Record{{
			Severity: domain.SeveritySuccess,
			Message:  "Document is valid",
			Meta:     domain.Meta{Path: path},
		}}
		outcome.Passed = true
		return outcome, nil
	}

	outcome.Records = make([]domain.Record, 0, len(env.Messages))
	for _, m := range env.Messages {
		rec := domain.RecordFromMessage(m)
		rec.Path = path
		outcome.Records = append(outcome.Records, rec)
	}
	outcome.Passed = !policy.Fails(outcome.Records)

	return outcome, nil
}
