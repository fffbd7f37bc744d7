package scanner

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
)

// Scan walks the tree rooted at rootPath depth-first and returns the
// accumulated Stats. Traversal is bounded by MaxDepth and MaxSourceFiles;
// once either limit is reached the already-counted statistics are returned
// as a partial picture of the tree.
//
// Ordinary filesystem problems mid-traversal (unreadable directories or
// files) are skipped silently; the only error returned is a failure to
// list the root directory itself.
func Scan(rootPath string) (*Stats, error) {
	entries, err := os.ReadDir(rootPath)
	if err != nil {
		return nil, err
	}

	stats := &Stats{}
	scanEntries(rootPath, entries, 0, stats)
	stats.finalize()
	return stats, nil
}

// scanEntries processes one directory's entries at the given depth below
// the root, recursing into subdirectories while budget remains.
func scanEntries(dir string, entries []os.DirEntry, depth int, stats *Stats) {
	for _, entry := range entries {
		if stats.SourceFiles >= MaxSourceFiles {
			return
		}
		if SkipName(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if depth < MaxDepth {
				descend(path, depth+1, stats)
			}
			continue
		}

		if !sourceFilePattern.MatchString(entry.Name()) {
			continue
		}

		stats.SourceFiles++
		if testFilePattern.MatchString(entry.Name()) {
			stats.TestFiles++
		}
		// Best effort: a failed read still counts the file, with zero lines.
		if n, err := countLines(path); err == nil {
			stats.TotalLines += n
		}
	}
}

// descend lists a subdirectory and scans its entries. A directory that
// cannot be listed is skipped entirely.
func descend(dir string, depth int, stats *Stats) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	scanEntries(dir, entries, depth, stats)
}

// SkipName reports whether a directory entry is excluded from scanning.
// The exclusion applies to any entry, file or directory, regardless of
// depth or file limits: generated and vendored trees (node_modules, dist,
// build), VCS metadata, dotfiles, and anything backup-like.
func SkipName(name string) bool {
	switch name {
	case "node_modules", ".git", "dist", "build":
		return true
	}
	if strings.HasPrefix(name, ".") {
		return true
	}
	return strings.Contains(name, "backup")
}

// countLines reads the file and counts lines with split-on-newline
// semantics: an empty file is one line and a trailing newline adds one.
// This keeps totals comparable across runs of older tooling that counted
// the same way.
func countLines(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return bytes.Count(data, []byte("\n")) + 1, nil
}
