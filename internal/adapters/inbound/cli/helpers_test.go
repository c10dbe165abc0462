package cli_test

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vnupipe/vnupipe/internal/adapters/inbound/cli"
)

// fakeVNU stands in for java -jar vnu.jar. Any path containing "broken"
// fails with one JSON error message on stderr; everything else is valid.
const fakeVNU = `last=""
json=0
for a in "$@"; do
  [ "$a" = "json" ] && json=1
  last="$a"
done
case "$last" in
*broken*)
  if [ "$json" = 1 ]; then
    printf '{"messages":[{"type":"error","url":"file:%s","lastLine":7,"firstColumn":4,"message":"Stray end tag div.","extract":"<p><div>"}]}\n' "$last" >&2
  else
    printf '"file:%s":7.4: error: Stray end tag div.\n' "$last" >&2
  fi
  exit 1
  ;;
esac
[ "$json" = 1 ] && printf '{"messages":[]}\n' >&2
exit 0`

// fakeJava writes an executable script standing in for java.
func fakeJava(t *testing.T, body string) string {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	path := filepath.Join(t.TempDir(), "java")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

// copySite copies the HTML fixture tree into a fresh project directory and
// isolates user-level settings from the developer's machine.
func copySite(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	dir := t.TempDir()
	require.NoError(t, os.CopyFS(dir, os.DirFS(filepath.Join("..", "..", "..", "..", "testdata", "html", "site"))))
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := cli.NewRootCmdForTest()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}
