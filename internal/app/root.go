// Package app contains the Cobra command tree for repoaudit.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/repoaudit/internal/output"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "repoaudit",
	Short: "Quick quality estimate for a JavaScript/TypeScript project",
	Long: `repoaudit scans the current working directory, counts source and test
files, estimates total lines of code, and derives a heuristic quality score
from the test-to-source ratio.

The bare command runs a quick, bounded audit: traversal stops after 3
directory levels or 50 source files so it finishes fast even on very large
repositories. Use 'repoaudit deep' for an uncapped analysis.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagNoColor {
			output.SetNoColor(true)
		} else {
			output.DetectTTY()
		}
	},
	RunE: runQuick,
}

// Execute is the entry point called from main. Any error that escapes a
// command is fatal: one marked line, exit status 1, no partial report.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/repoaudit/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
}
