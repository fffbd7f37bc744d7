package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/repoaudit/internal/config"
	"github.com/blackwell-systems/repoaudit/internal/output"
	"github.com/blackwell-systems/repoaudit/internal/scanner"
)

var (
	deepFlagMaxDepth int
	deepFlagExclude  []string
	deepFlagTop      int
)

var deepCmd = &cobra.Command{
	Use:   "deep [path]",
	Short: "Run a full, uncapped repository analysis",
	Long: `Deep walks the whole tree without the quick audit's depth and file
caps, aggregates per-extension file and line counts, and reports the largest
source files. Top-level subtrees are scanned concurrently.

With no argument the current working directory is analyzed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDeep,
}

func init() {
	deepCmd.Flags().IntVar(&deepFlagMaxDepth, "max-depth", 0, "Limit directory depth (0 = unlimited)")
	deepCmd.Flags().StringSliceVar(&deepFlagExclude, "exclude", nil, "Additional directory names to skip (can be repeated)")
	deepCmd.Flags().IntVar(&deepFlagTop, "top", 0, "Number of largest files to show (default from config)")

	rootCmd.AddCommand(deepCmd)
}

func runDeep(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	root := ""
	if len(args) == 1 {
		root = args[0]
	} else {
		root, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}
	}

	opts := scanner.DeepOptions{
		MaxDepth:    cfg.Deep.MaxDepth,
		ExcludeDirs: cfg.Deep.ExcludeDirs,
		TopFiles:    cfg.Deep.TopFiles,
		Concurrency: cfg.Deep.Concurrency,
	}
	if cmd.Flags().Changed("max-depth") {
		opts.MaxDepth = deepFlagMaxDepth
	}
	if len(deepFlagExclude) > 0 {
		opts.ExcludeDirs = append(opts.ExcludeDirs, deepFlagExclude...)
	}
	if deepFlagTop > 0 {
		opts.TopFiles = deepFlagTop
	}

	report, err := scanner.DeepScan(cmd.Context(), root, opts)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", root, err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	renderDeepReport(report)
	return nil
}

func renderDeepReport(r *scanner.DeepReport) {
	fmt.Println(output.Section("Deep Repository Audit"))
	fmt.Println()
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Project:"), r.Root)
	fmt.Println()

	metric := func(label, value string) {
		fmt.Printf(" %s %s\n", output.StyleLabel.Render(label), output.StyleValue.Render(value))
	}
	metric("Source files:", fmt.Sprintf("%d", r.SourceFiles))
	metric("Test files:", fmt.Sprintf("%d", r.TestFiles))
	metric("Lines of code:", fmt.Sprintf("%d", r.TotalLines))
	metric("Test coverage:", fmt.Sprintf("%d%%", r.CoverageEstimate))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Quality score:"),
		output.ScoreBar(r.QualityScore, 10))
	if r.SkippedDirs > 0 && flagVerbose {
		fmt.Println(output.StyleMuted.Render(fmt.Sprintf(" %d unreadable directories skipped", r.SkippedDirs)))
	}

	if len(r.Extensions) > 0 {
		fmt.Println(output.Section("By Extension"))
		fmt.Println()
		tbl := output.NewTable("Extension", "Files", "Lines")
		for _, es := range r.Extensions {
			tbl.AddRow(es.Extension, fmt.Sprintf("%d", es.Files), fmt.Sprintf("%d", es.Lines))
		}
		tbl.Print()
	}

	if len(r.LargestFiles) > 0 {
		fmt.Println(output.Section("Largest Files"))
		fmt.Println()
		tbl := output.NewTable("Size", "File")
		for _, lf := range r.LargestFiles {
			tbl.AddRow(formatBytes(lf.Bytes), lf.Path)
		}
		tbl.Print()
	}
	fmt.Println()
}

// formatBytes renders a byte count with a binary unit suffix.
func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
