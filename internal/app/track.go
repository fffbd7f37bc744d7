package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/repoaudit/internal/config"
	"github.com/blackwell-systems/repoaudit/internal/output"
	"github.com/blackwell-systems/repoaudit/internal/scanner"
	"github.com/blackwell-systems/repoaudit/internal/store"
)

var trackHistory int

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Snapshot audit metrics and compare over time",
	Long: `Run a quick audit of the current working directory, store the result
as a snapshot, and show deltas against the previous snapshot with trend
arrows. The plain audit never writes anything; only track persists.

Use --history to list recent snapshots instead of taking a new one.`,
	RunE: runTrack,
}

func init() {
	trackCmd.Flags().IntVar(&trackHistory, "history", 0, "List the N most recent snapshots instead of recording one")
	rootCmd.AddCommand(trackCmd)
}

func runTrack(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	db, err := store.Open(config.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if cmd.Flags().Changed("history") {
		limit := trackHistory
		if limit <= 0 {
			limit = cfg.HistoryLimit
		}
		return renderHistory(db, root, limit)
	}

	stats, err := scanner.Scan(root)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", root, err)
	}

	snapshot := &store.AuditSnapshot{
		TakenAt:          time.Now().UTC(),
		Root:             root,
		Version:          appVersion,
		SourceFiles:      stats.SourceFiles,
		TestFiles:        stats.TestFiles,
		TotalLines:       stats.TotalLines,
		CoverageEstimate: stats.CoverageEstimate,
		QualityScore:     stats.QualityScore,
	}
	id, err := db.SaveAudit(snapshot)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	snapshot.ID = id

	previous, err := db.AuditBefore(root, id)
	if err != nil {
		return fmt.Errorf("loading previous snapshot: %w", err)
	}

	diff := store.Diff(previous, snapshot)

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(diff)
	}

	renderDiff(diff)
	return nil
}

func renderDiff(d *store.SnapshotDiff) {
	fmt.Println(output.Section("Audit Snapshot"))
	fmt.Println()
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Project:"), d.Current.Root)
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Recorded:"), d.Current.TakenAt.Format(time.RFC3339))
	fmt.Println()

	if d.Previous == nil {
		fmt.Println(output.StyleMuted.Render(" First snapshot for this project. Run track again later to see trends."))
		fmt.Println()
		return
	}

	tbl := output.NewTable("Metric", "Previous", "Current", "Trend")
	for _, delta := range d.Deltas {
		tbl.AddRow(
			delta.Name,
			fmt.Sprintf("%.0f", delta.Previous),
			fmt.Sprintf("%.0f", delta.Current),
			trendCell(delta),
		)
	}
	tbl.Print()
	fmt.Println()
}

// trendCell renders a delta. Coverage, score and test-file counts have an
// improvement direction; raw size metrics are neutral and render muted.
func trendCell(d store.MetricDelta) string {
	switch d.Name {
	case "coverage_estimate", "quality_score", "test_files":
		return output.TrendArrow(d.Delta, true)
	}
	if d.Delta == 0 {
		return output.StyleMuted.Render("─")
	}
	return output.StyleMuted.Render(fmt.Sprintf("%+.0f", d.Delta))
}

func renderHistory(db *store.DB, root string, limit int) error {
	audits, err := db.RecentAudits(root, limit)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(audits)
	}

	fmt.Println(output.Section("Audit History"))
	fmt.Println()
	if len(audits) == 0 {
		fmt.Println(output.StyleMuted.Render(" No snapshots recorded for this project yet."))
		fmt.Println()
		return nil
	}

	tbl := output.NewTable("When", "Sources", "Tests", "Lines", "Coverage", "Score")
	for _, a := range audits {
		tbl.AddRow(
			a.TakenAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", a.SourceFiles),
			fmt.Sprintf("%d", a.TestFiles),
			fmt.Sprintf("%d", a.TotalLines),
			fmt.Sprintf("%d%%", a.CoverageEstimate),
			fmt.Sprintf("%d/10", a.QualityScore),
		)
	}
	tbl.Print()
	fmt.Println()
	return nil
}
