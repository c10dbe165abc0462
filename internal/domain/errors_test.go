package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vnupipe/vnupipe/internal/domain"
)

func TestPluginError_Error(t *testing.T) {
	err := domain.NewPluginError("index.html", "boom\n", domain.ErrValidatorFailed)
	assert.Equal(t, "vnupipe: index.html: validator failed: boom", err.Error())
	assert.Equal(t, domain.PluginName, err.Plugin)
	assert.Equal(t, "boom\n", err.Message)
}

func TestPluginError_Unwrap(t *testing.T) {
	var err error = domain.NewPluginError("", "", domain.ErrStreamingNotSupported)
	assert.True(t, errors.Is(err, domain.ErrStreamingNotSupported))
	assert.Equal(t, "vnupipe: streaming not supported", err.Error())

	var pe *domain.PluginError
	assert.True(t, errors.As(err, &pe))
}

func TestPluginError_WithRecords(t *testing.T) {
	recs := []domain.Record{{Severity: domain.SeverityError, Message: "m"}}
	err := domain.NewPluginError("a.html", "", domain.ErrValidationFailed).WithRecords(recs)
	assert.Equal(t, recs, err.Records)
}
