// Package store provides SQLite persistence for audit snapshots.
package store

import "time"

// AuditSnapshot is a point-in-time capture of one quick audit.
type AuditSnapshot struct {
	ID               int64     `json:"id"`
	TakenAt          time.Time `json:"taken_at"`
	Root             string    `json:"root"`
	Version          string    `json:"version"`
	SourceFiles      int       `json:"source_files"`
	TestFiles        int       `json:"test_files"`
	TotalLines       int       `json:"total_lines"`
	CoverageEstimate int       `json:"coverage_estimate"`
	QualityScore     int       `json:"quality_score"`
}

// MetricDelta represents the change in a single metric between two snapshots.
type MetricDelta struct {
	Name     string  `json:"name"`
	Previous float64 `json:"previous"`
	Current  float64 `json:"current"`
	Delta    float64 `json:"delta"`
}

// SnapshotDiff compares the latest snapshot for a root against the previous one.
type SnapshotDiff struct {
	Previous *AuditSnapshot `json:"previous"`
	Current  *AuditSnapshot `json:"current"`
	Deltas   []MetricDelta  `json:"deltas"`
}

// Diff computes per-metric deltas between two snapshots. Previous may be
// nil for a first run, in which case Deltas is empty.
func Diff(previous, current *AuditSnapshot) *SnapshotDiff {
	d := &SnapshotDiff{Previous: previous, Current: current}
	if previous == nil || current == nil {
		return d
	}

	pairs := []struct {
		name string
		prev int
		cur  int
	}{
		{"source_files", previous.SourceFiles, current.SourceFiles},
		{"test_files", previous.TestFiles, current.TestFiles},
		{"total_lines", previous.TotalLines, current.TotalLines},
		{"coverage_estimate", previous.CoverageEstimate, current.CoverageEstimate},
		{"quality_score", previous.QualityScore, current.QualityScore},
	}
	for _, p := range pairs {
		d.Deltas = append(d.Deltas, MetricDelta{
			Name:     p.name,
			Previous: float64(p.prev),
			Current:  float64(p.cur),
			Delta:    float64(p.cur - p.prev),
		})
	}
	return d
}
