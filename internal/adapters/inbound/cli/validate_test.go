package cli_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnupipe/vnupipe/internal/domain"
)

func TestValidateCmd_ValidFiles(t *testing.T) {
	dir := copySite(t)
	java := fakeJava(t, fakeVNU)

	out, err := run(t, "validate", "--project", dir, "--java", java, "--jar", "vnu.jar",
		filepath.Join(dir, "index.html"), filepath.Join(dir, "pages"))
	require.NoError(t, err)

	assert.Contains(t, out, "index.html")
	assert.Contains(t, out, "pages/about.htm")
	assert.Contains(t, out, "PASS")
}

func TestValidateCmd_InvalidFileFails(t *testing.T) {
	dir := copySite(t)
	java := fakeJava(t, fakeVNU)

	out, err := run(t, "validate", "--project", dir, "--java", java, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, out, "error: ")
	assert.Contains(t, out, "Stray end tag div.")
	assert.NotContains(t, out, "vendor/lib.html")
}

func TestValidateCmd_JSONReport(t *testing.T) {
	dir := copySite(t)
	java := fakeJava(t, fakeVNU)

	out, err := run(t, "validate", "--project", dir, "--java", java, "--format", "json", "--json", "--no-history", dir)
	require.Error(t, err)

	var report domain.ValidationReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, domain.StatusFail, report.Status)
	assert.Equal(t, domain.FormatJSON, report.Format)
	assert.Equal(t, []string{"drafts/broken.html", "index.html", "pages/about.htm"}, report.FilesChecked)
	assert.Equal(t, 1, report.Counts.Errors)

	byPath := make(map[string]domain.FileResult)
	for _, r := range report.Results {
		byPath[r.Path] = r
	}
	assert.Equal(t, domain.FileInvalid, byPath["drafts/broken.html"].Status)
	require.Len(t, byPath["drafts/broken.html"].Records, 1)
	assert.Equal(t, 7, byPath["drafts/broken.html"].Records[0].LastLine)
	assert.Equal(t, domain.FileValid, byPath["index.html"].Status)
}

func TestValidateCmd_FailOnNonePasses(t *testing.T) {
	dir := copySite(t)
	java := fakeJava(t, fakeVNU)

	_, err := run(t, "validate", "--project", dir, "--java", java, "--format", "json", "--fail-on", "none", "--no-history", dir)
	assert.NoError(t, err)
}

func TestValidateCmd_UnknownFormat(t *testing.T) {
	dir := copySite(t)

	_, err := run(t, "validate", "--project", dir, "--format", "yaml", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestValidateCmd_UnknownFailPolicy(t *testing.T) {
	dir := copySite(t)

	_, err := run(t, "validate", "--project", dir, "--fail-on", "warning", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown fail policy")
}

func TestValidateCmd_MissingJava(t *testing.T) {
	dir := copySite(t)

	_, err := run(t, "validate", "--project", dir, "--java", filepath.Join(t.TempDir(), "no-java"), dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingRequirements)
}

func TestValidateCmd_RecordsHistory(t *testing.T) {
	dir := copySite(t)
	java := fakeJava(t, fakeVNU)

	_, err := run(t, "validate", "--project", dir, "--java", java, filepath.Join(dir, "index.html"))
	require.NoError(t, err)

	out, err := run(t, "history", dir, "--json")
	require.NoError(t, err)

	var entries []domain.RunEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, domain.StatusPass, entries[0].Status)
	assert.Equal(t, 1, entries[0].Files)
}
