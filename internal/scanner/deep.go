package scanner

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DeepOptions configures a deep scan. Unlike the quick scan, the deep scan
// has no source-file cap and its depth limit is adjustable.
type DeepOptions struct {
	// MaxDepth limits how many directory levels below the root are
	// descended into; 0 means unlimited.
	MaxDepth int

	// ExcludeDirs are additional entry names to skip on top of the
	// built-in exclusion list.
	ExcludeDirs []string

	// TopFiles is the number of largest source files to report.
	TopFiles int

	// Concurrency bounds the number of top-level subtrees walked in
	// parallel; 0 picks a default.
	Concurrency int
}

// DefaultDeepOptions returns the defaults used by the deep command.
func DefaultDeepOptions() DeepOptions {
	return DeepOptions{
		MaxDepth:    0,
		TopFiles:    10,
		Concurrency: 4,
	}
}

// ExtensionStats aggregates file and line counts for one file extension.
type ExtensionStats struct {
	Extension string `json:"extension"`
	Files     int    `json:"files"`
	Lines     int    `json:"lines"`
}

// LargeFile identifies a source file and its size in bytes.
type LargeFile struct {
	Path  string `json:"path"`
	Bytes int64  `json:"bytes"`
}

// DeepReport is the result of a full-tree analysis.
type DeepReport struct {
	Root         string           `json:"root"`
	SourceFiles  int              `json:"source_files"`
	TestFiles    int              `json:"test_files"`
	TotalLines   int              `json:"total_lines"`
	Extensions   []ExtensionStats `json:"extensions"`
	LargestFiles []LargeFile      `json:"largest_files"`
	SkippedDirs  int              `json:"skipped_dirs"`

	// CoverageEstimate and QualityScore use the same derivation as the
	// quick scan, computed over the uncapped counts.
	CoverageEstimate int `json:"coverage_estimate"`
	QualityScore     int `json:"quality_score"`
}

// deepAccum is the per-goroutine accumulator merged into the report.
type deepAccum struct {
	sourceFiles int
	testFiles   int
	totalLines  int
	skippedDirs int
	extensions  map[string]*ExtensionStats
	files       []LargeFile
}

func newDeepAccum() *deepAccum {
	return &deepAccum{extensions: make(map[string]*ExtensionStats)}
}

// DeepScan walks the whole tree rooted at root without the quick scan's
// file cap. Top-level subtrees are walked concurrently and the partial
// results merged. Like the quick scan, unreadable directories and files
// are skipped; only a failure to list the root is returned.
func DeepScan(ctx context.Context, root string, opts DeepOptions) (*DeepReport, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	skip := func(name string) bool {
		if SkipName(name) {
			return true
		}
		for _, d := range opts.ExcludeDirs {
			if name == d {
				return true
			}
		}
		return false
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var mu sync.Mutex
	merged := newDeepAccum()
	rootFiles := newDeepAccum()

	// Files directly under the root are collected inline; each top-level
	// subtree gets its own goroutine and accumulator.
	for _, entry := range entries {
		if skip(entry.Name()) {
			continue
		}
		path := filepath.Join(root, entry.Name())

		if !entry.IsDir() {
			collectFile(path, entry.Name(), rootFiles)
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			acc := newDeepAccum()
			deepWalk(ctx, path, 1, opts, skip, acc)
			mu.Lock()
			merged.merge(acc)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	merged.merge(rootFiles)

	return merged.report(root, opts.TopFiles), nil
}

// deepWalk recursively scans one subtree. depth is the level of dir below
// the scan root.
func deepWalk(ctx context.Context, dir string, depth int, opts DeepOptions, skip func(string) bool, acc *deepAccum) {
	if ctx.Err() != nil {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		acc.skippedDirs++
		return
	}

	for _, entry := range entries {
		if skip(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			if opts.MaxDepth == 0 || depth < opts.MaxDepth {
				deepWalk(ctx, path, depth+1, opts, skip, acc)
			}
			continue
		}
		collectFile(path, entry.Name(), acc)
	}
}

// collectFile records one source file into the accumulator.
func collectFile(path, name string, acc *deepAccum) {
	if !sourceFilePattern.MatchString(name) {
		return
	}

	acc.sourceFiles++
	if testFilePattern.MatchString(name) {
		acc.testFiles++
	}

	ext := strings.ToLower(filepath.Ext(name))
	es := acc.extensions[ext]
	if es == nil {
		es = &ExtensionStats{Extension: ext}
		acc.extensions[ext] = es
	}
	es.Files++

	if info, err := os.Stat(path); err == nil {
		acc.files = append(acc.files, LargeFile{Path: path, Bytes: info.Size()})
	}

	if n, err := countLines(path); err == nil {
		acc.totalLines += n
		es.Lines += n
	}
}

// merge folds another accumulator into this one.
func (a *deepAccum) merge(other *deepAccum) {
	a.sourceFiles += other.sourceFiles
	a.testFiles += other.testFiles
	a.totalLines += other.totalLines
	a.skippedDirs += other.skippedDirs
	a.files = append(a.files, other.files...)
	for ext, es := range other.extensions {
		dst := a.extensions[ext]
		if dst == nil {
			dst = &ExtensionStats{Extension: ext}
			a.extensions[ext] = dst
		}
		dst.Files += es.Files
		dst.Lines += es.Lines
	}
}

// report finalizes the accumulator into a DeepReport.
func (a *deepAccum) report(root string, topFiles int) *DeepReport {
	r := &DeepReport{
		Root:        root,
		SourceFiles: a.sourceFiles,
		TestFiles:   a.testFiles,
		TotalLines:  a.totalLines,
		SkippedDirs: a.skippedDirs,
	}

	for _, es := range a.extensions {
		r.Extensions = append(r.Extensions, *es)
	}
	sort.Slice(r.Extensions, func(i, j int) bool {
		if r.Extensions[i].Files != r.Extensions[j].Files {
			return r.Extensions[i].Files > r.Extensions[j].Files
		}
		return r.Extensions[i].Extension < r.Extensions[j].Extension
	})

	sort.Slice(a.files, func(i, j int) bool {
		if a.files[i].Bytes != a.files[j].Bytes {
			return a.files[i].Bytes > a.files[j].Bytes
		}
		return a.files[i].Path < a.files[j].Path
	})
	if topFiles > 0 && len(a.files) > topFiles {
		a.files = a.files[:topFiles]
	}
	r.LargestFiles = a.files

	// Reuse the quick-scan derivation for the uncapped counts.
	s := Stats{SourceFiles: a.sourceFiles, TestFiles: a.testFiles}
	s.finalize()
	r.CoverageEstimate = s.CoverageEstimate
	r.QualityScore = s.QualityScore

	return r
}
