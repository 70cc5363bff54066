package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/KOFI-GYIMAH/commit-risk/internal/models"
	"github.com/KOFI-GYIMAH/commit-risk/pkg/errors"
)

const commitColumns = `c.id, c.repository_id, c.sha, COALESCE(c.author_name, ''), COALESCE(c.author_email, ''),
	COALESCE(c.message, ''), c.lines_added, c.lines_deleted, c.files_changed, c.complexity,
	c.committed_at, c.ingested_at`

// * scanCommit reads commitColumns followed by any extra destinations.
func scanCommit(row rowScanner, extra ...any) (*models.Commit, error) {
	var (
		c            models.Commit
		linesAdded   sql.NullInt64
		linesDeleted sql.NullInt64
		filesChanged sql.NullInt64
		complexity   sql.NullFloat64
		committedAt  sql.NullTime
	)

	dest := []any{
		&c.ID, &c.RepositoryID, &c.SHA, &c.AuthorName, &c.AuthorEmail, &c.Message,
		&linesAdded, &linesDeleted, &filesChanged, &complexity, &committedAt, &c.IngestedAt,
	}

	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	c.LinesAdded = intPtr(linesAdded)
	c.LinesDeleted = intPtr(linesDeleted)
	c.FilesChanged = intPtr(filesChanged)
	c.Complexity = floatPtr(complexity)
	c.CommittedAt = timePtr(committedAt)
	return &c, nil
}

// * UpsertCommit is one atomic statement: concurrent calls for the same
// * (repository_id, sha) converge on a single row. Non-null incoming fields
// * overwrite stored ones; id and sha never change.
func (p *PostgresDB) UpsertCommit(ctx context.Context, repositoryID int64, sha string, f models.CommitFields) (*models.Commit, error) {
	query := `
		INSERT INTO commits AS c (
			repository_id, sha, message, author_name, author_email,
			lines_added, lines_deleted, files_changed, complexity, committed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (repository_id, sha) DO UPDATE SET
			message = COALESCE(EXCLUDED.message, c.message),
			author_name = COALESCE(EXCLUDED.author_name, c.author_name),
			author_email = COALESCE(EXCLUDED.author_email, c.author_email),
			lines_added = COALESCE(EXCLUDED.lines_added, c.lines_added),
			lines_deleted = COALESCE(EXCLUDED.lines_deleted, c.lines_deleted),
			files_changed = COALESCE(EXCLUDED.files_changed, c.files_changed),
			complexity = COALESCE(EXCLUDED.complexity, c.complexity),
			committed_at = COALESCE(EXCLUDED.committed_at, c.committed_at)
		RETURNING ` + commitColumns

	var commit *models.Commit
	err := withRetry(ctx, "upsert commit", func() error {
		row := p.db.QueryRowContext(ctx, query,
			repositoryID, sha, f.Message, f.AuthorName, f.AuthorEmail,
			f.LinesAdded, f.LinesDeleted, f.FilesChanged, f.Complexity, f.CommittedAt,
		)

		var err error
		commit, err = scanCommit(row)
		return err
	})
	if err == nil {
		return commit, nil
	}

	if pqCode(err) == codeForeignKeyViolation {
		return nil, errors.NotFound(
			"REPOSITORY_NOT_FOUND",
			"Repository not found",
			fmt.Sprintf("Cannot store commit '%s': repository %d does not exist", sha, repositoryID),
			err,
		).WithOperation("upsert commit")
	}
	if pqCode(err) == codeStringTooLong {
		return nil, errors.Validation(
			"INVALID_COMMIT",
			"Invalid commit",
			fmt.Sprintf("Commit '%s' has a value longer than its column allows", sha),
			err,
		).WithOperation("upsert commit")
	}
	if errors.IsKind(err, errors.KindConflict) {
		return nil, err
	}

	return nil, errors.Wrap(
		"DB_COMMIT_ERROR",
		"Failed to upsert commit",
		fmt.Sprintf("Could not upsert commit '%s'", sha),
		err,
		errors.LevelError,
	).WithOperation("upsert commit")
}

func (p *PostgresDB) GetCommit(ctx context.Context, id int64) (*models.Commit, error) {
	query := `SELECT ` + commitColumns + ` FROM commits c WHERE c.id = $1`

	commit, err := scanCommit(p.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound(
			"COMMIT_NOT_FOUND",
			"Commit not found",
			fmt.Sprintf("Commit %d does not exist", id),
			err,
		)
	}
	if err != nil {
		return nil, errors.New(
			"DB_COMMIT_ERROR",
			"Failed to get commit",
			fmt.Sprintf("Could not retrieve commit %d", id),
			err,
			errors.LevelError,
		)
	}

	return commit, nil
}

// * FindCommitBySHA searches every repository owned by ownerID. When forks
// * share the sha, the commit with the most recent assessment wins, then the lowest id.
func (p *PostgresDB) FindCommitBySHA(ctx context.Context, ownerID int64, sha string) (*models.Commit, error) {
	query := `
		SELECT ` + commitColumns + `
		FROM commits c
		JOIN repositories r ON r.id = c.repository_id
		LEFT JOIN LATERAL (
			SELECT MAX(ra.created_at) AS assessed_at
			FROM risk_assessments ra
			WHERE ra.commit_id = c.id
		) la ON TRUE
		WHERE r.owner_id = $1 AND c.sha = $2
		ORDER BY la.assessed_at DESC NULLS LAST, c.id
		LIMIT 1
	`

	commit, err := scanCommit(p.db.QueryRowContext(ctx, query, ownerID, sha))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound(
			"COMMIT_NOT_FOUND",
			"Commit not found",
			fmt.Sprintf("No commit with sha '%s' is known", sha),
			err,
		)
	}
	if err != nil {
		return nil, errors.New(
			"DB_COMMIT_ERROR",
			"Failed to find commit",
			fmt.Sprintf("Could not look up commit '%s'", sha),
			err,
			errors.LevelError,
		)
	}

	return commit, nil
}
