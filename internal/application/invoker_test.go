package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vnupipe/vnupipe/internal/domain"
)

func TestInvoker_Invocation(t *testing.T) {
	opts := domain.NormalizeOptions(map[string]any{"format": "json", "errors-only": true})
	iv := NewInvoker(opts, domain.ValidatorSettings{Jar: "/opt/vnu/vnu.jar"})

	f := &domain.File{Contents: []byte("x"), History: []string{"src/a.html", "build/a.html"}}
	inv := iv.Invocation(f)

	assert.Equal(t, "java", inv.Java)
	assert.Equal(t, []string{
		"-Xss1024k", "-jar", "/opt/vnu/vnu.jar",
		"--errors-only", "--format", "json",
		"src/a.html", "build/a.html",
	}, inv.Argv)
}

func TestInvoker_Defaults(t *testing.T) {
	iv := NewInvoker(domain.DefaultOptions(), domain.ValidatorSettings{})
	s := iv.Settings()
	assert.Equal(t, "java", s.Java)
	assert.Equal(t, "vnu.jar", s.Jar)
	assert.Equal(t, []string{"-Xss1024k"}, s.JVMArgs)
}

func TestInvoker_TemplateNotMutated(t *testing.T) {
	iv := NewInvoker(domain.DefaultOptions(), domain.ValidatorSettings{})
	before := iv.Template()

	for _, p := range []string{"a.html", "b.html", "c.html"} {
		inv := iv.Invocation(domain.NewFile(p, []byte("x")))
		assert.Equal(t, p, inv.Argv[len(inv.Argv)-1])
		assert.Len(t, inv.Argv, 3+len(before)+1)
	}

	assert.Equal(t, before, iv.Template())

	tpl := iv.Template()
	tpl[0] = "changed"
	assert.Equal(t, before, iv.Template())
}
