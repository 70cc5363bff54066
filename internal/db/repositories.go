package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/KOFI-GYIMAH/commit-risk/internal/models"
	"github.com/KOFI-GYIMAH/commit-risk/pkg/errors"
)

const repositoryColumns = `id, owner_id, full_name, name, github_repo_id, is_private, webhook_active, created_at, last_synced_at`

func scanRepository(row rowScanner) (*models.Repository, error) {
	var (
		repo       models.Repository
		githubID   sql.NullInt64
		lastSynced sql.NullTime
	)

	err := row.Scan(
		&repo.ID, &repo.OwnerID, &repo.FullName, &repo.Name, &githubID,
		&repo.IsPrivate, &repo.WebhookActive, &repo.CreatedAt, &lastSynced,
	)
	if err != nil {
		return nil, err
	}

	repo.GithubRepoID = int64Ptr(githubID)
	repo.LastSyncedAt = timePtr(lastSynced)
	return &repo, nil
}

func (p *PostgresDB) UpsertRepository(ctx context.Context, repo *models.Repository) error {
	query := `
		INSERT INTO repositories (
			owner_id, full_name, name, github_repo_id, is_private, webhook_active
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (owner_id, full_name) DO UPDATE SET
			name = EXCLUDED.name,
			github_repo_id = COALESCE(EXCLUDED.github_repo_id, repositories.github_repo_id),
			is_private = EXCLUDED.is_private,
			webhook_active = EXCLUDED.webhook_active
		RETURNING id, created_at, last_synced_at
	`

	return withRetry(ctx, "upsert repository", func() error {
		var lastSynced sql.NullTime

		err := p.db.QueryRowContext(ctx, query,
			repo.OwnerID, repo.FullName, repo.Name, repo.GithubRepoID,
			repo.IsPrivate, repo.WebhookActive,
		).Scan(&repo.ID, &repo.CreatedAt, &lastSynced)
		if err != nil {
			if isRetryable(err) {
				return err
			}
			return errors.New(
				"DB_REPOSITORY_ERROR",
				"Failed to upsert repository",
				fmt.Sprintf("Could not upsert repository '%s'", repo.FullName),
				err,
				errors.LevelError,
			)
		}

		repo.LastSyncedAt = timePtr(lastSynced)
		return nil
	})
}

func (p *PostgresDB) GetRepository(ctx context.Context, ownerID, id int64) (*models.Repository, error) {
	query := `SELECT ` + repositoryColumns + ` FROM repositories WHERE owner_id = $1 AND id = $2`

	repo, err := scanRepository(p.db.QueryRowContext(ctx, query, ownerID, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound(
			"REPOSITORY_NOT_FOUND",
			"Repository not found",
			fmt.Sprintf("Repository %d does not exist", id),
			err,
		)
	}
	if err != nil {
		return nil, errors.New(
			"DB_REPOSITORY_ERROR",
			"Failed to get repository",
			fmt.Sprintf("Could not retrieve repository %d", id),
			err,
			errors.LevelError,
		)
	}

	return repo, nil
}

func (p *PostgresDB) GetRepositoryByFullName(ctx context.Context, ownerID int64, fullName string) (*models.Repository, error) {
	query := `SELECT ` + repositoryColumns + ` FROM repositories WHERE owner_id = $1 AND full_name = $2`

	repo, err := scanRepository(p.db.QueryRowContext(ctx, query, ownerID, fullName))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound(
			"REPOSITORY_NOT_FOUND",
			"Repository not found",
			fmt.Sprintf("Repository '%s' not found. Connect it first.", fullName),
			err,
		)
	}
	if err != nil {
		return nil, errors.New(
			"DB_REPOSITORY_ERROR",
			"Failed to get repository",
			fmt.Sprintf("Could not retrieve repository '%s'", fullName),
			err,
			errors.LevelError,
		)
	}

	return repo, nil
}

func (p *PostgresDB) ListRepositories(ctx context.Context, ownerID int64) ([]models.Repository, error) {
	query := `SELECT ` + repositoryColumns + ` FROM repositories WHERE owner_id = $1 ORDER BY full_name`
	return p.queryRepositories(ctx, query, ownerID)
}

// * ListAllRepositories is used by the sync worker, which runs on behalf of every owner.
func (p *PostgresDB) ListAllRepositories(ctx context.Context) ([]models.Repository, error) {
	query := `SELECT ` + repositoryColumns + ` FROM repositories ORDER BY id`
	return p.queryRepositories(ctx, query)
}

func (p *PostgresDB) queryRepositories(ctx context.Context, query string, args ...any) ([]models.Repository, error) {
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.New(
			"DB_QUERY_ERROR",
			"Failed to query repositories",
			"Could not list repositories",
			err,
			errors.LevelError,
		)
	}
	defer rows.Close()

	var repos []models.Repository
	for rows.Next() {
		repo, err := scanRepository(rows)
		if err != nil {
			return nil, errors.New(
				"DB_SCAN_ERROR",
				"Failed to scan repository row",
				"Error while reading repository data",
				err,
				errors.LevelError,
			)
		}
		repos = append(repos, *repo)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.New(
			"DB_ROWS_ERROR",
			"Error iterating repository rows",
			"Error occurred while processing repository results",
			err,
			errors.LevelError,
		)
	}

	return repos, nil
}

// * DeleteRepository cascades to the repository's commits and their assessments.
func (p *PostgresDB) DeleteRepository(ctx context.Context, ownerID, id int64) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM repositories WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return errors.New(
			"DB_REPOSITORY_ERROR",
			"Failed to delete repository",
			fmt.Sprintf("Could not delete repository %d", id),
			err,
			errors.LevelError,
		)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound(
			"REPOSITORY_NOT_FOUND",
			"Repository not found",
			fmt.Sprintf("Repository %d does not exist", id),
			nil,
		)
	}

	return nil
}

func (p *PostgresDB) MarkRepositorySynced(ctx context.Context, id int64) error {
	_, err := p.db.ExecContext(ctx, `UPDATE repositories SET last_synced_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return errors.New(
			"DB_REPOSITORY_ERROR",
			"Failed to update repository",
			fmt.Sprintf("Could not mark repository %d as synced", id),
			err,
			errors.LevelError,
		)
	}
	return nil
}
