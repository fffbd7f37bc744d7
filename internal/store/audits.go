package store

import (
	"database/sql"
	"time"
)

const auditColumns = "id, taken_at, root, version, source_files, test_files, total_lines, coverage_estimate, quality_score"

// SaveAudit inserts a new audit snapshot and returns its ID.
func (db *DB) SaveAudit(a *AuditSnapshot) (int64, error) {
	takenAt := a.TakenAt
	if takenAt.IsZero() {
		takenAt = time.Now().UTC()
	}
	result, err := db.conn.Exec(
		`INSERT INTO audits
		(taken_at, root, version, source_files, test_files, total_lines, coverage_estimate, quality_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		takenAt.Format(time.RFC3339), a.Root, a.Version, a.SourceFiles,
		a.TestFiles, a.TotalLines, a.CoverageEstimate, a.QualityScore,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// LatestAudit returns the most recent snapshot for the given root, or nil
// if none exist.
func (db *DB) LatestAudit(root string) (*AuditSnapshot, error) {
	row := db.conn.QueryRow(
		"SELECT "+auditColumns+" FROM audits WHERE root = ? ORDER BY id DESC LIMIT 1",
		root,
	)
	return scanAudit(row)
}

// AuditBefore returns the most recent snapshot for the given root with an
// ID lower than the one supplied, or nil if none exist. Used to diff a
// fresh snapshot against its predecessor.
func (db *DB) AuditBefore(root string, id int64) (*AuditSnapshot, error) {
	row := db.conn.QueryRow(
		"SELECT "+auditColumns+" FROM audits WHERE root = ? AND id < ? ORDER BY id DESC LIMIT 1",
		root, id,
	)
	return scanAudit(row)
}

// RecentAudits returns up to limit snapshots for the given root, most
// recent first.
func (db *DB) RecentAudits(root string, limit int) ([]AuditSnapshot, error) {
	rows, err := db.conn.Query(
		"SELECT "+auditColumns+" FROM audits WHERE root = ? ORDER BY id DESC LIMIT ?",
		root, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var audits []AuditSnapshot
	for rows.Next() {
		var a AuditSnapshot
		var takenAt string
		if err := rows.Scan(&a.ID, &takenAt, &a.Root, &a.Version, &a.SourceFiles,
			&a.TestFiles, &a.TotalLines, &a.CoverageEstimate, &a.QualityScore); err != nil {
			return nil, err
		}
		a.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
		audits = append(audits, a)
	}
	return audits, rows.Err()
}

func scanAudit(row *sql.Row) (*AuditSnapshot, error) {
	var a AuditSnapshot
	var takenAt string
	err := row.Scan(&a.ID, &takenAt, &a.Root, &a.Version, &a.SourceFiles,
		&a.TestFiles, &a.TotalLines, &a.CoverageEstimate, &a.QualityScore)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
	return &a, nil
}
