package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "github.com/vnupipe/vnupipe/internal/adapters/outbound/config"
)

func TestLoadUserSettings_Defaults(t *testing.T) {
	s, err := appconfig.LoadUserSettings(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "java", s.Java)
	assert.Equal(t, "vnu.jar", s.Jar)
	assert.Equal(t, []string{"-Xss1024k"}, s.JVMArgs)
	assert.Zero(t, s.Timeout)
}

func TestLoadUserSettings_File(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
java: /usr/lib/jvm/java-17/bin/java
jar: /opt/vnu/vnu.jar
timeout: 2m
`), 0644))

	s, err := appconfig.LoadUserSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, "/usr/lib/jvm/java-17/bin/java", s.Java)
	assert.Equal(t, "/opt/vnu/vnu.jar", s.Jar)
	assert.Equal(t, 2*time.Minute, s.Timeout)
}

func TestLoadUserSettings_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("jar: /from/file.jar\n"), 0644))
	t.Setenv("VNUPIPE_JAR", "/from/env.jar")
	t.Setenv("VNUPIPE_TIMEOUT", "10s")

	s, err := appconfig.LoadUserSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.jar", s.Jar)
	assert.Equal(t, 10*time.Second, s.Timeout)
}

func TestLoadUserSettings_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{{{"), 0644))

	_, err := appconfig.LoadUserSettings(dir)
	assert.Error(t, err)
}
