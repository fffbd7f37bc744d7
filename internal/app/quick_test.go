package app

import (
	"strings"
	"testing"

	"github.com/blackwell-systems/repoaudit/internal/scanner"
)

func hasText(recs []recommendation, substr string, level recLevel) bool {
	for _, r := range recs {
		if r.Level == level && strings.Contains(r.Text, substr) {
			return true
		}
	}
	return false
}

func TestRecommendations_LowCoverage(t *testing.T) {
	recs := recommendations(&scanner.Stats{SourceFiles: 10, TestFiles: 2, CoverageEstimate: 20, QualityScore: 5})
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	if !hasText(recs, "coverage looks low", recWarn) {
		t.Errorf("missing coverage warning: %+v", recs)
	}
	if !hasText(recs, "quality could be improved", recWarn) {
		t.Errorf("missing quality warning: %+v", recs)
	}
}

func TestRecommendations_HealthyProject(t *testing.T) {
	recs := recommendations(&scanner.Stats{SourceFiles: 10, TestFiles: 6, CoverageEstimate: 60, QualityScore: 7})
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	for _, r := range recs {
		if r.Level != recOK {
			t.Errorf("expected only confirmations, got %+v", r)
		}
	}
}

func TestRecommendations_CoverageBoundary(t *testing.T) {
	// Exactly 50 is not < 50: confirmation, not warning.
	recs := recommendations(&scanner.Stats{SourceFiles: 10, TestFiles: 5, CoverageEstimate: 50, QualityScore: 7})
	if !hasText(recs, "coverage looks reasonable", recOK) {
		t.Errorf("expected coverage confirmation at exactly 50: %+v", recs)
	}
}

// TestRecommendations_SizeWarning documents a quirk: the warning fires
// above 100 source files, but the quick scanner caps at 50, so only the
// uncapped deep counts can reach it today.
func TestRecommendations_SizeWarning(t *testing.T) {
	recs := recommendations(&scanner.Stats{SourceFiles: 150, TestFiles: 90, CoverageEstimate: 60, QualityScore: 7})
	if len(recs) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(recs))
	}
	if !hasText(recs, "Large codebase", recWarn) {
		t.Errorf("missing size warning: %+v", recs)
	}

	if scanner.MaxSourceFiles > 100 {
		t.Error("quick-scan cap now exceeds 100; the size warning is reachable and this test should be rewritten")
	}
}

func TestSubcommands_Registered(t *testing.T) {
	want := map[string]bool{"deep": false, "track": false, "doctor": false}
	for _, cmd := range rootCmd.Commands() {
		name := cmd.Name()
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("%s subcommand not registered on rootCmd", name)
		}
	}
}
