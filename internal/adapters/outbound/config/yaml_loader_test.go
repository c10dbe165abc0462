package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "github.com/vnupipe/vnupipe/internal/adapters/outbound/config"
	"github.com/vnupipe/vnupipe/internal/domain"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".vnupipe.yaml"), []byte(content), 0644))
}

func TestYAMLLoader_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
options:
  format: json
  errors-only: true
  charset: utf-8
jar: /opt/vnu/vnu.jar
jvm_args: ["-Xss2m"]
timeout: 45s
fail_on: info
extensions: [".html", ".xhtml"]
exclude_paths:
  - dist
cache: true
`)
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/opt/vnu/vnu.jar", cfg.Jar)
	assert.Equal(t, []string{"-Xss2m"}, cfg.JVMArgs)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, domain.FailOnInfo, cfg.FailPolicy())
	assert.Equal(t, []string{".html", ".xhtml"}, cfg.FileExtensions())
	assert.Equal(t, []string{"dist"}, cfg.ExcludePaths)
	assert.True(t, cfg.Cache)

	opts := cfg.ResolvedOptions()
	assert.Equal(t, domain.FormatJSON, opts.Format)
	assert.True(t, opts.ErrorsOnly)
	assert.Equal(t, []string{"--errors-only", "--format", "json"}, opts.Args())
}

func TestYAMLLoader_StringBooleanIsNotAFlag(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
options:
  html: "true"
  verbose: true
`)
	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)

	opts := cfg.ResolvedOptions()
	assert.False(t, opts.HTML)
	assert.True(t, opts.Verbose)
}

func TestYAMLLoader_UnknownFormatAccepted(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "options:\n  format: html5\n")

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.NotContains(t, cfg.ResolvedOptions().Args(), "--format")
}

func TestYAMLLoader_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{{{invalid yaml`)
	loader := appconfig.New()

	_, err := loader.Load(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .vnupipe.yaml")
}

func TestYAMLLoader_UnknownFailOn(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "fail_on: warnings\n")

	_, err := appconfig.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid .vnupipe.yaml")
	assert.Contains(t, err.Error(), `unknown fail policy "warnings"`)
}

func TestYAMLLoader_NegativeTimeout(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "timeout: -5s\n")

	_, err := appconfig.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func TestRender_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := domain.ProjectConfig{
		Options:      map[string]any{"format": "gnu", "html": true},
		FailOn:       "none",
		ExcludePaths: []string{"node_modules"},
	}

	data, err := appconfig.Render(cfg)
	require.NoError(t, err)
	writeConfig(t, dir, string(data))

	loaded, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg.ResolvedOptions(), loaded.ResolvedOptions())
	assert.Equal(t, domain.FailOnNone, loaded.FailPolicy())
	assert.Equal(t, cfg.ExcludePaths, loaded.ExcludePaths)
}
