package db

import (
	"context"
	"database/sql"

	"github.com/KOFI-GYIMAH/commit-risk/internal/models"
	"github.com/KOFI-GYIMAH/commit-risk/pkg/errors"
)

const snapshotCountsQuery = `
	SELECT
		(SELECT COUNT(*) FROM repositories r
			WHERE r.owner_id = $1 AND ($2::BIGINT IS NULL OR r.id = $2)),
		(SELECT COUNT(*) FROM commits c
			JOIN repositories r ON r.id = c.repository_id
			WHERE r.owner_id = $1 AND ($2::BIGINT IS NULL OR r.id = $2)),
		(SELECT COUNT(*) FROM risk_assessments ra
			JOIN commits c ON c.id = ra.commit_id
			JOIN repositories r ON r.id = c.repository_id
			WHERE r.owner_id = $1 AND ($2::BIGINT IS NULL OR r.id = $2))
`

// * One row per commit with its latest assessment picked in the same statement.
const snapshotRowsQuery = `
	SELECT ` + commitColumns + `, r.full_name,
		ra.id, ra.commit_id, ra.risk_score, ra.risk_level, ra.confidence,
		ra.model_version, NULL::JSONB, NULL::JSONB, ra.created_at
	FROM commits c
	JOIN repositories r ON r.id = c.repository_id
	LEFT JOIN LATERAL (
		SELECT id, commit_id, risk_score, risk_level, confidence, model_version, created_at
		FROM risk_assessments
		WHERE commit_id = c.id
		ORDER BY created_at DESC, id ASC
		LIMIT 1
	) ra ON TRUE
	WHERE r.owner_id = $1 AND ($2::BIGINT IS NULL OR r.id = $2)
	ORDER BY c.id
`

// * Snapshot reads counts and rows inside one REPEATABLE READ transaction so
// * every aggregate computed from it sees the same data.
func (p *PostgresDB) Snapshot(ctx context.Context, scope models.Scope) (*models.Snapshot, error) {
	snap := &models.Snapshot{}

	err := p.withTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, snapshotCountsQuery, scope.OwnerID, scope.RepositoryID).
			Scan(&snap.TotalRepositories, &snap.TotalCommits, &snap.TotalAssessments)
		if err != nil {
			return err
		}

		rows, err := tx.QueryContext(ctx, snapshotRowsQuery, scope.OwnerID, scope.RepositoryID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				fullName string
				n        nullableAssessment
			)

			commit, err := scanCommit(rows, append([]any{&fullName}, n.dest()...)...)
			if err != nil {
				return err
			}

			a, err := n.toModel()
			if err != nil {
				return err
			}

			snap.Rows = append(snap.Rows, models.CommitRisk{
				Commit:             *commit,
				RepositoryFullName: fullName,
				Assessment:         a,
			})
		}
		return rows.Err()
	})
	if err != nil {
		if isApplicationError(err) {
			return nil, err
		}
		return nil, errors.New(
			"DB_QUERY_ERROR",
			"Failed to read dashboard snapshot",
			"Could not load commits with their latest assessments",
			err,
			errors.LevelError,
		).WithOperation("snapshot")
	}

	return snap, nil
}
