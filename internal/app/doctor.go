package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/repoaudit/internal/config"
	"github.com/blackwell-systems/repoaudit/internal/output"
	"github.com/blackwell-systems/repoaudit/internal/store"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check whether the repoaudit setup is healthy",
	Long: `Run a series of health checks: the working directory is listable,
the configuration parses, and the snapshot database opens. Prints a
pass/fail line for each check and a summary of how many passed.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// doctorCheck holds the result of a single health check.
type doctorCheck struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// doctorOutput is the JSON-serializable result of the doctor command.
type doctorOutput struct {
	Checks      []doctorCheck `json:"checks"`
	PassedCount int           `json:"passed"`
	TotalCount  int           `json:"total"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	var checks []doctorCheck

	checks = append(checks, checkWorkingDir())
	checks = append(checks, checkConfig())
	checks = append(checks, checkDatabase())

	passed := 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(doctorOutput{Checks: checks, PassedCount: passed, TotalCount: len(checks)})
	}

	fmt.Println(output.Section("Doctor"))
	fmt.Println()
	for _, c := range checks {
		marker := output.StyleSuccess.Render("✓")
		if !c.Passed {
			marker = output.StyleError.Render("✗")
		}
		fmt.Printf(" %s %-22s %s\n", marker, c.Name, output.StyleMuted.Render(c.Message))
	}
	fmt.Println()
	fmt.Printf(" %d/%d checks passed\n", passed, len(checks))
	fmt.Println()
	return nil
}

// checkWorkingDir verifies the scan root (the working directory) is listable,
// since an unlistable root is the one fatal failure mode of an audit.
func checkWorkingDir() doctorCheck {
	c := doctorCheck{Name: "working directory"}
	wd, err := os.Getwd()
	if err != nil {
		c.Message = err.Error()
		return c
	}
	if _, err := os.ReadDir(wd); err != nil {
		c.Message = err.Error()
		return c
	}
	c.Passed = true
	c.Message = wd
	return c
}

// checkConfig verifies the configuration file (if any) parses.
func checkConfig() doctorCheck {
	c := doctorCheck{Name: "configuration"}
	if _, err := config.Load(flagConfig); err != nil {
		c.Message = err.Error()
		return c
	}
	c.Passed = true
	c.Message = config.ConfigDir()
	return c
}

// checkDatabase verifies the snapshot database opens and migrates.
func checkDatabase() doctorCheck {
	c := doctorCheck{Name: "snapshot database"}
	db, err := store.Open(config.DBPath())
	if err != nil {
		c.Message = err.Error()
		return c
	}
	defer func() { _ = db.Close() }()
	c.Passed = true
	c.Message = config.DBPath()
	return c
}
