package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vnupipe/vnupipe/internal/domain"
)

func TestValidationReport_Failed(t *testing.T) {
	report := &domain.ValidationReport{Results: []domain.FileResult{
		{Path: "a.html", Status: domain.FileValid},
		{Path: "b.html", Status: domain.FileInvalid},
		{Path: "c.html", Status: domain.FileCached},
		{Path: "d.html", Status: domain.FileError},
		{Path: "e.html", Status: domain.FileSkipped},
	}}
	assert.Equal(t, 2, report.Failed())
}
