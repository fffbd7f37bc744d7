package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/repoaudit/internal/output"
	"github.com/blackwell-systems/repoaudit/internal/scanner"
)

// recLevel classifies a recommendation line.
type recLevel int

const (
	recOK recLevel = iota
	recWarn
)

// recommendation is one threshold-based advice line in the quick report.
type recommendation struct {
	Level recLevel `json:"-"`
	Text  string   `json:"text"`
}

// quickReport is the JSON-serializable result of a quick audit.
type quickReport struct {
	Root            string           `json:"root"`
	Stats           *scanner.Stats   `json:"stats"`
	Recommendations []recommendation `json:"recommendations"`
}

// runQuick audits the current working directory. This is the action of the
// bare repoaudit command: no path argument is accepted, the scan root is
// always the process's working directory.
func runQuick(cmd *cobra.Command, args []string) error {
	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	stats, err := scanner.Scan(root)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", root, err)
	}

	report := &quickReport{
		Root:            root,
		Stats:           stats,
		Recommendations: recommendations(stats),
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	renderQuickReport(report)
	return nil
}

// recommendations applies the three independent advice thresholds to the
// scan result. Coverage and quality always contribute one line each; the
// size warning only fires above 100 source files, which the quick scan's
// 50-file cap cannot currently reach (the deep scan can).
func recommendations(stats *scanner.Stats) []recommendation {
	var recs []recommendation

	if stats.CoverageEstimate < 50 {
		recs = append(recs, recommendation{recWarn, "Test coverage looks low. Consider adding tests."})
	} else {
		recs = append(recs, recommendation{recOK, "Test coverage looks reasonable."})
	}

	if stats.SourceFiles > 100 {
		recs = append(recs, recommendation{recWarn, "Large codebase. Consider splitting into smaller modules."})
	}

	if stats.QualityScore < 7 {
		recs = append(recs, recommendation{recWarn, "Code quality could be improved."})
	} else {
		recs = append(recs, recommendation{recOK, "Code quality looks good."})
	}

	return recs
}

// renderQuickReport prints the fixed-order text report: banner, root echo,
// progress line, metrics block, recommendations, completion hint.
func renderQuickReport(r *quickReport) {
	fmt.Println(output.Section("Quick Repository Audit"))
	fmt.Println()
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Project:"), r.Root)
	fmt.Println(output.StyleMuted.Render(" Quick file analysis..."))
	fmt.Println()

	metric := func(label, value string) {
		fmt.Printf(" %s %s\n", output.StyleLabel.Render(label), output.StyleValue.Render(value))
	}
	metric("Source files:", fmt.Sprintf("%d", r.Stats.SourceFiles))
	metric("Test files:", fmt.Sprintf("%d", r.Stats.TestFiles))
	metric("Lines of code:", fmt.Sprintf("~%d", r.Stats.TotalLines))
	metric("Test coverage:", fmt.Sprintf("%d%%", r.Stats.CoverageEstimate))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Quality score:"),
		output.ScoreBar(r.Stats.QualityScore, 10))

	fmt.Println(output.Section("Recommendations"))
	fmt.Println()
	for _, rec := range r.Recommendations {
		if rec.Level == recWarn {
			fmt.Printf(" %s %s\n", output.StyleWarning.Render("⚠"), rec.Text)
		} else {
			fmt.Printf(" %s %s\n", output.StyleSuccess.Render("✓"), rec.Text)
		}
	}

	fmt.Println()
	fmt.Println(" Quick audit complete.")
	fmt.Println(output.StyleMuted.Render(" Run 'repoaudit deep' for a full, uncapped analysis."))
}
