package domain

import (
	"errors"
	"fmt"
	"strings"
)

// PluginName identifies errors raised by the validation stage.
const PluginName = "vnupipe"

var (
	ErrStreamingNotSupported = errors.New("streaming not supported")
	ErrValidatorFailed       = errors.New("validator failed")
	ErrInvalidOutput         = errors.New("invalid validator output")
	ErrMissingRequirements   = errors.New("missing requirements")
	ErrTimeout               = errors.New("validator timed out")
	ErrValidationFailed      = errors.New("validation failed")
	ErrInvalidInput          = errors.New("invalid input")
)

// PluginError is the typed error the stage reports for a failed file.
// Message holds the raw stderr text in non-structured modes; Records holds
// the classified messages in structured mode.
type PluginError struct {
	Plugin  string   `json:"plugin"`
	Path    string   `json:"path,omitempty"`
	Message string   `json:"message"`
	Records []Record `json:"records,omitempty"`
	Err     error    `json:"-"`
}

// NewPluginError wraps cause with the stage's plugin identifier.
func NewPluginError(path, message string, cause error) *PluginError {
	return &PluginError{
		Plugin:  PluginName,
		Path:    path,
		Message: message,
		Err:     cause,
	}
}

// WithRecords attaches the classified records that caused the failure.
func (e *PluginError) WithRecords(records []Record) *PluginError {
	e.Records = records
	return e
}

func (e *PluginError) Error() string {
	var b strings.Builder
	b.WriteString(e.Plugin)
	if e.Path != "" {
		fmt.Fprintf(&b, ": %s", e.Path)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if msg := strings.TrimSpace(e.Message); msg != "" {
		fmt.Fprintf(&b, ": %s", msg)
	}
	return b.String()
}

func (e *PluginError) Unwrap() error { return e.Err }
