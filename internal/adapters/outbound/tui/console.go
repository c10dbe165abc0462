package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/vnupipe/vnupipe/internal/domain"
)

// Console implements domain.Logger by writing one formatted block per
// record to w.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

var _ domain.Logger = (*Console)(nil)

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Log(severity domain.Severity, message string, meta domain.Meta) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = io.WriteString(c.w, FormatRecord(severity, message, meta))
}

// FormatRecord renders one record the way the validator console reports it.
func FormatRecord(severity domain.Severity, message string, meta domain.Meta) string {
	var tag string
	switch severity {
	case domain.SeverityError:
		tag = failStyle.Render("error: ")
	case domain.SeverityInfo:
		tag = warnStyle.Render("warning: ")
	case domain.SeveritySuccess:
		return passStyle.Render("Document is valid: ") + linkStyle.Render(meta.Path) + "\n"
	default:
		return boldStyle.Render("non-document-error: ") + message + "\n"
	}

	source := meta.URL
	if source == "" {
		source = meta.Path
	}

	var b strings.Builder
	b.WriteString(tag + linkStyle.Render(source) + "\n")
	if meta.LastLine > 0 || meta.FirstColumn > 0 {
		fmt.Fprintf(&b, "%s\t%s\n", boldStyle.Render(fmt.Sprintf("%d:%d", meta.LastLine, meta.FirstColumn)), message)
	} else {
		b.WriteString(message + "\n")
	}
	if meta.Extract != "" {
		b.WriteString("source: " + meta.Extract + "\n")
	}
	return b.String()
}
