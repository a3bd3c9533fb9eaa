package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CheckStatus grades one doctor check.
type CheckStatus int

const (
	CheckOK CheckStatus = iota
	CheckWarn
	CheckFail
)

// DoctorCheck is one line of the report.
type DoctorCheck struct {
	Name   string
	Status CheckStatus
	Detail string
}

// DoctorSection groups related checks under a header.
type DoctorSection struct {
	Title  string
	Icon   string
	Checks []DoctorCheck
}

// DoctorReport is everything the doctor command renders.
type DoctorReport struct {
	Sections []DoctorSection
}

// OK is false when any check failed. Warnings do not count.
func (r DoctorReport) OK() bool {
	for _, s := range r.Sections {
		for _, c := range s.Checks {
			if c.Status == CheckFail {
				return false
			}
		}
	}
	return true
}

type DoctorRenderer struct {
	theme *Theme
}

func NewDoctorRenderer(theme *Theme) *DoctorRenderer {
	return &DoctorRenderer{theme: theme}
}

func (r *DoctorRenderer) Render(report DoctorReport) string {
	sections := make([]string, 0, len(report.Sections))
	for _, s := range report.Sections {
		sections = append(sections, r.renderSection(s))
	}
	return lipgloss.JoinVertical(lipgloss.Left, r.renderHeader(report.OK()), "", strings.Join(sections, "\n\n"))
}

func (r *DoctorRenderer) renderHeader(ok bool) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	statusStyle := r.theme.SuccessStyle
	statusText := "OK"
	if !ok {
		statusStyle = r.theme.WarningStyle
		statusText = "Needs attention"
	}

	title := fmt.Sprintf("%s %s", iconStyle.Render(IconDoctor), r.theme.Title.Render("Doctor"))
	badge := r.theme.BadgeMuted.Render(statusStyle.Render(statusText))
	return lipgloss.JoinHorizontal(lipgloss.Center, title, " ", badge)
}

func (r *DoctorRenderer) renderSection(s DoctorSection) string {
	lines := make([]string, 0, len(s.Checks))
	for _, c := range s.Checks {
		lines = append(lines, r.renderCheck(c))
	}
	header := r.theme.BoxHeader.Render(fmt.Sprintf("%s %s", r.theme.Highlight.Render(s.Icon), s.Title))
	return r.theme.Box.Render(header + "\n" + strings.Join(lines, "\n"))
}

func (r *DoctorRenderer) renderCheck(c DoctorCheck) string {
	icon, style, status := IconCheck, r.theme.SuccessStyle, "OK"
	switch c.Status {
	case CheckWarn:
		icon, style, status = IconWarning, r.theme.WarningStyle, "Warning"
	case CheckFail:
		icon, style, status = IconX, r.theme.ErrorStyle, "Failed"
	}

	line := fmt.Sprintf("%s %s %s", style.Render(icon), r.theme.Normal.Render(c.Name), r.theme.BadgeMuted.Render(style.Render(status)))
	if c.Detail != "" {
		line += "\n  " + r.theme.Subtle.Render(c.Detail)
	}
	return line
}
