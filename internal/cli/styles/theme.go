// Package styles renders CLI output with lipgloss.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/dtabridge/internal/domain/entity"
)

// Theme holds the colors and styles shared by the renderers. Colors adapt
// to the terminal background since doctor and history run in whatever
// terminal the user has open.
type Theme struct {
	Text    lipgloss.AdaptiveColor
	Muted   lipgloss.AdaptiveColor
	Accent  lipgloss.AdaptiveColor
	Border  lipgloss.AdaptiveColor
	Surface lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Success lipgloss.AdaptiveColor

	Title        lipgloss.Style
	Normal       lipgloss.Style
	Subtle       lipgloss.Style
	Highlight    lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	SuccessStyle lipgloss.Style
	BadgeMuted   lipgloss.Style
	TableHeader  lipgloss.Style
	TableCell    lipgloss.Style
	Box          lipgloss.Style
	BoxHeader    lipgloss.Style
}

func NewTheme() *Theme {
	t := &Theme{
		Text:    lipgloss.AdaptiveColor{Light: "#1a1a1b", Dark: "#ffffff"},
		Muted:   lipgloss.AdaptiveColor{Light: "#6b6b6b", Dark: "#909090"},
		Accent:  lipgloss.AdaptiveColor{Light: "#0284c7", Dark: "#38bdf8"},
		Border:  lipgloss.AdaptiveColor{Light: "#d4d4d4", Dark: "#333333"},
		Surface: lipgloss.AdaptiveColor{Light: "#ececec", Dark: "#2d2d2d"},
		Error:   lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#ef4444"},
		Warning: lipgloss.AdaptiveColor{Light: "#d97706", Dark: "#f59e0b"},
		Success: lipgloss.AdaptiveColor{Light: "#16a34a", Dark: "#4ade80"},
	}

	fg := func(c lipgloss.TerminalColor) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

	t.Title = fg(t.Text).Bold(true)
	t.Normal = fg(t.Text)
	t.Subtle = fg(t.Muted)
	t.Highlight = fg(t.Accent).Bold(true)
	t.ErrorStyle = fg(t.Error)
	t.WarningStyle = fg(t.Warning)
	t.SuccessStyle = fg(t.Success)
	t.BadgeMuted = fg(t.Text).Background(t.Surface).Padding(0, 1)
	t.TableHeader = fg(t.Accent).Bold(true).Padding(0, 1)
	t.TableCell = fg(t.Text).Padding(0, 1)
	t.Box = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(1, 2)
	t.BoxHeader = t.Title.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(t.Border).
		MarginBottom(1)
	return t
}

// StateStyle colors a transfer state label.
func (t *Theme) StateStyle(state entity.TransferState) lipgloss.Style {
	switch state {
	case entity.TransferDone:
		return t.SuccessStyle
	case entity.TransferErrored:
		return t.ErrorStyle
	case entity.TransferCancelled, entity.TransferPaused:
		return t.WarningStyle
	default:
		return t.Highlight
	}
}
