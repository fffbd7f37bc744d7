// Package scanner provides bounded file-tree scanning and quality scoring.
package scanner

import "regexp"

// Traversal limits for the quick scan. Both are hard bounds: they exist to
// guarantee a bounded run time on arbitrarily large repositories, at the
// cost of statistical completeness. They are intentionally not configurable.
const (
	// MaxDepth is the maximum number of directory levels below the scan
	// root that the quick scan descends into.
	MaxDepth = 3

	// MaxSourceFiles is the maximum number of source files the quick scan
	// inspects before halting traversal.
	MaxSourceFiles = 50
)

var (
	// sourceFilePattern matches JavaScript/TypeScript source files.
	sourceFilePattern = regexp.MustCompile(`\.(js|ts)$`)

	// testFilePattern matches test files, a subset of source files.
	testFilePattern = regexp.MustCompile(`\.(test|spec)\.(js|ts)$`)
)

// Stats is the accumulated result of a single quick scan. It is created
// empty at scan start, mutated in place by the traversal, and finalized
// once traversal completes or a limit is reached.
type Stats struct {
	// SourceFiles is the number of files matching a source extension.
	SourceFiles int `json:"source_files"`

	// TestFiles is the number of source files matching a test naming
	// convention. Always <= SourceFiles.
	TestFiles int `json:"test_files"`

	// TotalLines is the best-effort sum of lines across all scanned
	// source files. Unreadable files contribute zero.
	TotalLines int `json:"total_lines"`

	// CoverageEstimate is TestFiles/SourceFiles as a rounded percentage,
	// zero when no source files were found.
	CoverageEstimate int `json:"coverage_estimate"`

	// QualityScore is a 1-10 heuristic derived from CoverageEstimate.
	// The threshold mapping only ever produces values in [5, 9].
	QualityScore int `json:"quality_score"`
}

// IsSourceFile reports whether name matches the source-file pattern.
func IsSourceFile(name string) bool {
	return sourceFilePattern.MatchString(name)
}

// IsTestFile reports whether name matches the test-file pattern.
func IsTestFile(name string) bool {
	return testFilePattern.MatchString(name)
}
