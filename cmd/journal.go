package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/zjrosen/opdeck/internal/infrastructure/sqlite"
	"github.com/zjrosen/opdeck/internal/journal/domain"
	"github.com/zjrosen/opdeck/internal/presentation"
)

var (
	journalLimit int
	journalJSON  bool
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "List recorded session runs",
	Long: `List the session runs recorded by the console, newest first.

Examples:
  opdeck journal
  opdeck journal --limit 5
  opdeck journal --json | jq '.[0].duration_seconds'`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg.ResolvePaths()
		db, err := sqlite.NewDB(cfg.Journal.Path)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		runs, err := db.RunRepository().List(domain.ListFilter{Limit: journalLimit})
		if err != nil {
			return fmt.Errorf("listing runs: %w", err)
		}
		if journalJSON {
			return presentation.NewFormatter(cmd.OutOrStdout()).FormatRuns(presentation.FromDomainRuns(runs, time.Now()))
		}
		return printRuns(cmd.OutOrStdout(), runs, time.Now())
	},
}

func init() {
	journalCmd.Flags().IntVarP(&journalLimit, "limit", "n", 20, "maximum number of runs to list (0 for all)")
	journalCmd.Flags().BoolVar(&journalJSON, "json", false, "print JSON instead of a table")
	rootCmd.AddCommand(journalCmd)
}

func printRuns(w io.Writer, runs []*domain.Run, now time.Time) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded")
		return err
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		source := r.ControlSource()
		if source == "" {
			source = "-"
		}
		rows = append(rows, []string{
			shortGUID(r.GUID()),
			r.StartedAt().Local().Format("2006-01-02 15:04:05"),
			r.State().String(),
			r.Duration(now).Round(time.Second).String(),
			fmt.Sprintf("%d", r.Pauses()),
			source,
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("RUN", "STARTED", "STATE", "DURATION", "PAUSES", "SOURCE").
		Rows(rows...)
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func shortGUID(guid string) string {
	if len(guid) > 8 {
		return guid[:8]
	}
	return guid
}
