package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vnupipe/vnupipe/internal/domain"
)

// ── Claude-inspired warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	boldStyle     = lipgloss.NewStyle().Bold(true)
	linkStyle     = lipgloss.NewStyle().Bold(true).Underline(true)
	fileStyle     = lipgloss.NewStyle().Foreground(fg)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport formats a validation run summary for terminal output.
func RenderReport(report *domain.ValidationReport) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("  " + headerStyle.Render("vnupipe") + "  " + dimStyle.Render(fmt.Sprintf("format %s · fail on %s", report.Format, report.FailOn)))
	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	if len(report.Results) == 0 {
		b.WriteString("  " + dimStyle.Render("No files to validate.") + "\n\n")
		return b.String()
	}

	for _, r := range report.Results {
		renderFileResult(&b, r)
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	b.WriteString("  ")
	b.WriteString(titleStyle.Render(fmt.Sprintf("%d files", len(report.Results))))
	b.WriteString("  ")
	if n := report.Counts.Errors; n > 0 {
		b.WriteString(errorTagStyle.Render(plural(n, "error")) + "  ")
	}
	if n := report.Counts.Infos; n > 0 {
		b.WriteString(warnTagStyle.Render(plural(n, "warning")) + "  ")
	}
	if n := report.Counts.NonDocumentErrors; n > 0 {
		b.WriteString(infoTagStyle.Render(plural(n, "non-document error")) + "  ")
	}

	if report.Status == domain.StatusPass {
		b.WriteString(passStyle.Render("PASS"))
	} else {
		b.WriteString(failStyle.Render(fmt.Sprintf("FAIL (%d/%d)", report.Failed(), len(report.Results))))
	}
	if report.Aborted {
		b.WriteString("  " + dimStyle.Render("stopped at first failure"))
	}
	b.WriteString("\n\n")

	return b.String()
}

func renderFileResult(b *strings.Builder, r domain.FileResult) {
	var icon, detail string
	switch r.Status {
	case domain.FileValid:
		icon = passStyle.Render("✓")
		var c domain.SeverityCounts
		c.Add(r.Records)
		if c.Infos > 0 {
			detail = warnStyle.Render(plural(c.Infos, "warning"))
		}
	case domain.FileCached:
		icon = dimStyle.Render("✓")
		detail = faintStyle.Render("cached")
	case domain.FileSkipped:
		icon = dimStyle.Render("-")
		detail = faintStyle.Render("skipped")
	case domain.FileInvalid:
		icon = failStyle.Render("✗")
		var c domain.SeverityCounts
		c.Add(r.Records)
		detail = failStyle.Render(plural(c.Errors+c.NonDocumentErrors, "error"))
		if c.Infos > 0 {
			detail += "  " + warnStyle.Render(plural(c.Infos, "warning"))
		}
	default:
		icon = errorTagStyle.Render("!")
		detail = failStyle.Render(r.Error)
	}

	if detail != "" {
		fmt.Fprintf(b, "  %s %s  %s\n", icon, fileStyle.Render(r.Path), detail)
	} else {
		fmt.Fprintf(b, "  %s %s\n", icon, fileStyle.Render(r.Path))
	}
}

// RenderHistory formats run history for terminal output.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No validation history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Validation History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}

		date := e.Timestamp
		if len(date) > 10 {
			date = date[:10]
		}

		status := passStyle.Render("pass")
		if e.Status != domain.StatusPass {
			status = failStyle.Render("fail")
		}

		line := fmt.Sprintf("  %s  %s  %s  %s",
			dimStyle.Render(date),
			faintStyle.Render(hash),
			status,
			fmt.Sprintf("%d/%d files", e.Files-e.Failed, e.Files),
		)
		if e.Errors > 0 {
			line += "  " + errorTagStyle.Render(plural(e.Errors, "error"))
		}

		if i > 0 {
			diff := e.Errors - entries[i-1].Errors
			if diff < 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↓%d", -diff))
			} else if diff > 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↑%d", diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
