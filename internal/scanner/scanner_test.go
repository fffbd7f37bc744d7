package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// writeFile creates a file with the given content, making parent
// directories as needed.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// ---------------------------------------------------------------------------
// Scan
// ---------------------------------------------------------------------------

func TestScan_CountsSourcesAndTests(t *testing.T) {
	root := t.TempDir()

	// 10 source files, 4 of them tests.
	for i := 0; i < 6; i++ {
		writeFile(t, filepath.Join(root, fmt.Sprintf("mod%d.js", i)), "x\n")
	}
	for i := 0; i < 4; i++ {
		writeFile(t, filepath.Join(root, fmt.Sprintf("mod%d.test.js", i)), "x\n")
	}

	stats, err := Scan(root)
	if err != nil {
		t.Fatal(err)
	}
	if stats.SourceFiles != 10 {
		t.Errorf("expected 10 source files, got %d", stats.SourceFiles)
	}
	if stats.TestFiles != 4 {
		t.Errorf("expected 4 test files, got %d", stats.TestFiles)
	}
	if stats.CoverageEstimate != 40 {
		t.Errorf("expected coverage 40, got %d", stats.CoverageEstimate)
	}
	if stats.QualityScore != 7 {
		t.Errorf("expected quality score 7, got %d", stats.QualityScore)
	}
}

func TestScan_EmptyDirectory(t *testing.T) {
	stats, err := Scan(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if stats.SourceFiles != 0 {
		t.Errorf("expected 0 source files, got %d", stats.SourceFiles)
	}
	if stats.CoverageEstimate != 0 {
		t.Errorf("expected coverage 0, got %d", stats.CoverageEstimate)
	}
	if stats.QualityScore != 5 {
		t.Errorf("expected quality score 5, got %d", stats.QualityScore)
	}
}

func TestScan_FileCapHaltsTraversal(t *testing.T) {
	root := t.TempDir()

	for i := 0; i < 60; i++ {
		writeFile(t, filepath.Join(root, fmt.Sprintf("file%02d.ts", i)), "x\n")
	}

	stats, err := Scan(root)
	if err != nil {
		t.Fatal(err)
	}
	if stats.SourceFiles != MaxSourceFiles {
		t.Errorf("expected exactly %d source files, got %d", MaxSourceFiles, stats.SourceFiles)
	}
}

func TestScan_ExcludedDirsNeverCounted(t *testing.T) {
	root := t.TempDir()

	for _, dir := range []string{"node_modules", ".git", "dist", "build", ".cache", "old-backup"} {
		writeFile(t, filepath.Join(root, dir, "inside.js"), "x\n")
	}
	writeFile(t, filepath.Join(root, "src", "keep.js"), "x\n")

	stats, err := Scan(root)
	if err != nil {
		t.Fatal(err)
	}
	if stats.SourceFiles != 1 {
		t.Errorf("expected only the src file counted, got %d", stats.SourceFiles)
	}
}

func TestScan_ExclusionAppliesToFilesToo(t *testing.T) {
	root := t.TempDir()

	// The exclusion list is checked per entry before the dir/file branch,
	// so a backup-named file is skipped even though it matches .js.
	writeFile(t, filepath.Join(root, "db_backup.js"), "x\n")
	writeFile(t, filepath.Join(root, ".hidden.js"), "x\n")
	writeFile(t, filepath.Join(root, "app.js"), "x\n")

	stats, err := Scan(root)
	if err != nil {
		t.Fatal(err)
	}
	if stats.SourceFiles != 1 {
		t.Errorf("expected 1 source file, got %d", stats.SourceFiles)
	}
}

func TestScan_DepthBound(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "top.js"), "x\n")
	writeFile(t, filepath.Join(root, "a", "one.js"), "x\n")
	writeFile(t, filepath.Join(root, "a", "b", "two.js"), "x\n")
	writeFile(t, filepath.Join(root, "a", "b", "c", "three.js"), "x\n")
	// Four levels below root: beyond the depth budget.
	writeFile(t, filepath.Join(root, "a", "b", "c", "d", "four.js"), "x\n")

	stats, err := Scan(root)
	if err != nil {
		t.Fatal(err)
	}
	if stats.SourceFiles != 4 {
		t.Errorf("expected 4 source files (depth <= %d), got %d", MaxDepth, stats.SourceFiles)
	}
}

func TestScan_NonSourceFilesIgnored(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "README.md"), "x\n")
	writeFile(t, filepath.Join(root, "main.go"), "x\n")
	writeFile(t, filepath.Join(root, "style.css"), "x\n")
	writeFile(t, filepath.Join(root, "index.ts"), "x\n")

	stats, err := Scan(root)
	if err != nil {
		t.Fatal(err)
	}
	if stats.SourceFiles != 1 {
		t.Errorf("expected 1 source file, got %d", stats.SourceFiles)
	}
}

func TestScan_LineCountSplitSemantics(t *testing.T) {
	root := t.TempDir()

	// Split-on-newline: "a\nb\n" is three segments, an empty file is one.
	writeFile(t, filepath.Join(root, "a.js"), "one\ntwo\n")
	writeFile(t, filepath.Join(root, "b.js"), "")

	stats, err := Scan(root)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalLines != 4 {
		t.Errorf("expected 4 total lines, got %d", stats.TotalLines)
	}
}

func TestScan_UnreadableFileStillCounted(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "ok.js"), "x\ny\n")
	// A dangling symlink matches the source pattern but cannot be read;
	// it must count as a source file and contribute zero lines.
	if err := os.Symlink(filepath.Join(root, "missing-target"), filepath.Join(root, "broken.js")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	stats, err := Scan(root)
	if err != nil {
		t.Fatal(err)
	}
	if stats.SourceFiles != 2 {
		t.Errorf("expected 2 source files, got %d", stats.SourceFiles)
	}
	if stats.TotalLines != 3 {
		t.Errorf("expected 3 lines (broken file contributes 0), got %d", stats.TotalLines)
	}
}

func TestScan_Idempotent(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "a.js"), "x\n")
	writeFile(t, filepath.Join(root, "a.test.js"), "x\n")
	writeFile(t, filepath.Join(root, "lib", "b.ts"), "x\ny\n")

	first, err := Scan(root)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Scan(root)
	if err != nil {
		t.Fatal(err)
	}
	if *first != *second {
		t.Errorf("expected identical results, got %+v then %+v", first, second)
	}
}

func TestScan_RootUnreadable(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatal("expected error for nonexistent root")
	}
}

func TestScan_TestFilesNeverExceedSourceFiles(t *testing.T) {
	root := t.TempDir()

	for i := 0; i < 5; i++ {
		writeFile(t, filepath.Join(root, fmt.Sprintf("m%d.spec.ts", i)), "x\n")
	}

	stats, err := Scan(root)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TestFiles > stats.SourceFiles {
		t.Errorf("test files %d exceed source files %d", stats.TestFiles, stats.SourceFiles)
	}
	if stats.SourceFiles != 5 || stats.TestFiles != 5 {
		t.Errorf("expected 5/5, got %d/%d", stats.SourceFiles, stats.TestFiles)
	}
}

// ---------------------------------------------------------------------------
// SkipName
// ---------------------------------------------------------------------------

func TestSkipName(t *testing.T) {
	tests := []struct {
		name string
		skip bool
	}{
		{"node_modules", true},
		{".git", true},
		{"dist", true},
		{"build", true},
		{".env", true},
		{"my-backup", true},
		{"backup_2021", true},
		{"src", false},
		{"distribution", false},
		{"builder", false},
		{"app.js", false},
	}

	for _, tc := range tests {
		if got := SkipName(tc.name); got != tc.skip {
			t.Errorf("SkipName(%q) = %v, want %v", tc.name, got, tc.skip)
		}
	}
}

// ---------------------------------------------------------------------------
// File classification
// ---------------------------------------------------------------------------

func TestIsSourceFile(t *testing.T) {
	tests := []struct {
		name   string
		source bool
	}{
		{"app.js", true},
		{"app.ts", true},
		{"app.test.js", true},
		{"app.spec.ts", true},
		{"app.jsx", false},
		{"app.tsx", false},
		{"notes.md", false},
		{"js", false},
	}

	for _, tc := range tests {
		if got := IsSourceFile(tc.name); got != tc.source {
			t.Errorf("IsSourceFile(%q) = %v, want %v", tc.name, got, tc.source)
		}
	}
}

func TestIsTestFile(t *testing.T) {
	tests := []struct {
		name string
		test bool
	}{
		{"app.test.js", true},
		{"app.spec.ts", true},
		{"app.test.ts", true},
		{"app.spec.js", true},
		{"app.js", false},
		{"test.js", false},
		{"spec.ts", false},
	}

	for _, tc := range tests {
		if got := IsTestFile(tc.name); got != tc.test {
			t.Errorf("IsTestFile(%q) = %v, want %v", tc.name, got, tc.test)
		}
	}
}
