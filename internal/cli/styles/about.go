package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/dtabridge/internal/domain/build"
)

// A bridge span over a down arrow.
const aboutLogo = `▄▄▄▄▄▄▄▄
█  ██  █
   ██
 ▀████▀
   ▀▀`

type AboutRenderer struct {
	theme *Theme
}

func NewAboutRenderer(theme *Theme) *AboutRenderer {
	return &AboutRenderer{theme: theme}
}

// Render puts the logo beside one line per build field.
func (r *AboutRenderer) Render(info build.Info) string {
	logo := lipgloss.NewStyle().
		Foreground(r.theme.Accent).
		Bold(true).
		MarginTop(1).
		MarginLeft(2).
		Render(aboutLogo)

	return lipgloss.JoinHorizontal(lipgloss.Top, logo, "   ", r.details(info))
}

func (r *AboutRenderer) details(info build.Info) string {
	icon := lipgloss.NewStyle().Foreground(r.theme.Accent)
	fields := []struct{ glyph, key, value string }{
		{IconVersion, "Version", info.String()},
		{IconGitBranch, "Commit", orUnknown(info.Commit)},
		{IconCalendar, "Built", orUnknown(info.BuildDate)},
		{IconGo, "Go", orUnknown(info.GoVersion)},
	}

	var b strings.Builder
	b.WriteString(r.theme.Title.Render("dtabridge") + "\n")
	for _, f := range fields {
		b.WriteString(icon.Render(f.glyph) + " " + r.theme.Subtle.Render(f.key) + " " + r.theme.Highlight.Render(f.value) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(icon.Render(IconGithub) + " " + r.theme.Subtle.Render(build.RepoURL()) + "\n")
	b.WriteString(icon.Render(IconHeart) + " " + r.theme.Subtle.Render("by") + " " +
		r.theme.Highlight.Render(strings.Join(build.Contributors(), ", ")))
	return b.String()
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}
