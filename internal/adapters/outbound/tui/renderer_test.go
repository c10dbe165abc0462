package tui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vnupipe/vnupipe/internal/adapters/outbound/tui"
	"github.com/vnupipe/vnupipe/internal/domain"
)

func sampleReport() *domain.ValidationReport {
	return &domain.ValidationReport{
		RunID:  "run-1",
		Status: domain.StatusFail,
		Format: domain.FormatJSON,
		FailOn: domain.FailOnError,
		Results: []domain.FileResult{
			{Path: "index.html", Status: domain.FileValid},
			{Path: "about.html", Status: domain.FileInvalid, Records: []domain.Record{
				{Severity: domain.SeverityError, Message: "Stray end tag"},
				{Severity: domain.SeverityInfo, Message: "Consider lang"},
			}},
			{Path: "cached.html", Status: domain.FileCached},
			{Path: "gone.html", Status: domain.FileError, Error: "permission denied"},
		},
		Counts: domain.SeverityCounts{Errors: 1, Infos: 1},
	}
}

func TestRenderReport_ListsFiles(t *testing.T) {
	output := tui.RenderReport(sampleReport())
	assert.Contains(t, output, "index.html")
	assert.Contains(t, output, "about.html")
	assert.Contains(t, output, "cached")
	assert.Contains(t, output, "permission denied")
}

func TestRenderReport_Summary(t *testing.T) {
	output := tui.RenderReport(sampleReport())
	assert.Contains(t, output, "4 files")
	assert.Contains(t, output, "1 error")
	assert.Contains(t, output, "1 warning")
	assert.Contains(t, output, "FAIL (2/4)")
	assert.Contains(t, output, "format json")
}

func TestRenderReport_Pass(t *testing.T) {
	report := &domain.ValidationReport{
		Status:  domain.StatusPass,
		Format:  domain.FormatGNU,
		Results: []domain.FileResult{{Path: "a.html", Status: domain.FileValid}},
	}
	output := tui.RenderReport(report)
	assert.Contains(t, output, "PASS")
	assert.NotContains(t, output, "FAIL")
}

func TestRenderReport_Empty(t *testing.T) {
	output := tui.RenderReport(&domain.ValidationReport{Status: domain.StatusPass})
	assert.Contains(t, output, "No files to validate.")
}

func TestRenderHistory_Empty(t *testing.T) {
	assert.Contains(t, tui.RenderHistory(nil), "No validation history found.")
}

func TestRenderHistory_Entries(t *testing.T) {
	entries := []domain.RunEntry{
		{Timestamp: "2026-10-01T10:00:00Z", CommitHash: "abcdef1234567", Status: domain.StatusFail, Files: 3, Failed: 1, Errors: 4},
		{Timestamp: "2026-10-02T10:00:00Z", Status: domain.StatusPass, Files: 3, Errors: 0},
	}
	output := tui.RenderHistory(entries)
	assert.Contains(t, output, "2026-10-01")
	assert.Contains(t, output, "abcdef1")
	assert.NotContains(t, output, "abcdef12")
	assert.Contains(t, output, "2/3 files")
	assert.Contains(t, output, "4 errors")
	assert.Contains(t, output, "↓4")
	assert.Contains(t, output, "·······")
}
