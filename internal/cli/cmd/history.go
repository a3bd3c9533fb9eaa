package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/dtabridge/internal/cli/styles"
	"github.com/bnema/dtabridge/internal/domain/entity"
	"github.com/bnema/dtabridge/internal/infrastructure/persistence/sqlite"
)

const defaultHistoryLimit = 20

var (
	historyJSON      bool
	historyLimit     int
	historyPruneDays int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent transfers from the journal",
	Long: `List the transfers recorded in the journal, newest first.

Examples:
  dtabridge history
  dtabridge history --limit 50 --json
  dtabridge history --prune 7     # drop finished transfers older than a week`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyCmd.Flags().IntVar(&historyLimit, "limit", defaultHistoryLimit, "maximum entries to show")
	historyCmd.Flags().IntVar(&historyPruneDays, "prune", 0, "delete finished transfers older than this many days first")
}

type historyEntry struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	FinalURL   string    `json:"finalUrl,omitempty"`
	Path       string    `json:"path,omitempty"`
	Downloaded int64     `json:"downloaded"`
	Total      *int64    `json:"total"`
	State      string    `json:"state"`
	Status     int       `json:"status,omitempty"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"startedAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func runHistory(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	if historyLimit <= 0 {
		return fmt.Errorf("--limit must be positive")
	}

	path := app.Config.Journal.Path
	records, err := loadHistory(cmd, path)
	if err != nil {
		return err
	}

	if historyJSON {
		entries := make([]historyEntry, 0, len(records))
		for _, r := range records {
			entries = append(entries, toHistoryEntry(r))
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	fmt.Fprintln(cmd.OutOrStdout(), styles.NewHistoryRenderer(app.Theme).Render(records))
	return nil
}

func loadHistory(cmd *cobra.Command, path string) ([]*entity.TransferRecord, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	ctx := GetApp().Ctx()
	db, err := sqlite.NewConnection(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer func() { _ = db.Close() }()

	repo := sqlite.NewTransferRepository(db)
	if historyPruneDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -historyPruneDays).UnixMilli()
		n, err := repo.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			return nil, fmt.Errorf("prune journal: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "pruned %d transfers\n", n)
	}

	records, err := repo.GetRecent(ctx, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	return records, nil
}

func toHistoryEntry(r *entity.TransferRecord) historyEntry {
	return historyEntry{
		ID:         r.ID,
		URL:        r.URL,
		FinalURL:   r.FinalURL,
		Path:       r.Path,
		Downloaded: r.Downloaded,
		Total:      r.Total,
		State:      string(r.State),
		Status:     r.Status,
		Error:      r.Error,
		StartedAt:  r.StartedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
