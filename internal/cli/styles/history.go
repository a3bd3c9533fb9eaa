package styles

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/bnema/dtabridge/internal/domain/entity"
)

const maxURLWidth = 48

// HistoryRenderer renders the transfer journal as a table.
type HistoryRenderer struct {
	theme *Theme
	now   func() time.Time
}

func NewHistoryRenderer(theme *Theme) *HistoryRenderer {
	return &HistoryRenderer{theme: theme, now: time.Now}
}

func (r *HistoryRenderer) Render(records []*entity.TransferRecord) string {
	title := fmt.Sprintf("%s %s", r.theme.Highlight.Render(IconDownload), r.theme.Title.Render("Transfers"))
	if len(records) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, "", r.theme.Subtle.Render("No transfers recorded yet."))
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			string(rec.State),
			formatSize(rec),
			filepath.Base(rec.Path),
			truncate(rec.URL, maxURLWidth),
			humanize.RelTime(rec.UpdatedAt, r.now(), "ago", "from now"),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(r.theme.Border)).
		Headers("State", "Size", "File", "URL", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.theme.TableHeader
			}
			if col == 0 && row >= 0 && row < len(rows) {
				return r.theme.StateStyle(entity.TransferState(rows[row][0])).Padding(0, 1)
			}
			return r.theme.TableCell
		})

	return lipgloss.JoinVertical(lipgloss.Left, title, "", t.String())
}

func formatSize(rec *entity.TransferRecord) string {
	got := humanize.IBytes(uint64(max(rec.Downloaded, 0)))
	if rec.Total == nil {
		return got
	}
	if *rec.Total == rec.Downloaded {
		return got
	}
	return got + " / " + humanize.IBytes(uint64(max(*rec.Total, 0)))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
