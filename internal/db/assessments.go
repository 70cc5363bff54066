package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/KOFI-GYIMAH/commit-risk/internal/models"
	"github.com/KOFI-GYIMAH/commit-risk/pkg/errors"
)

const assessmentColumns = `ra.id, ra.commit_id, ra.risk_score, ra.risk_level, ra.confidence,
	ra.model_version, ra.features, ra.score_breakdown, ra.created_at`

type nullableAssessment struct {
	id           sql.NullInt64
	commitID     sql.NullInt64
	score        sql.NullInt64
	level        sql.NullString
	confidence   sql.NullFloat64
	modelVersion sql.NullString
	features     []byte
	breakdown    []byte
	createdAt    sql.NullTime
}

func (n *nullableAssessment) dest() []any {
	return []any{
		&n.id, &n.commitID, &n.score, &n.level, &n.confidence,
		&n.modelVersion, &n.features, &n.breakdown, &n.createdAt,
	}
}

// * toModel returns nil when the row carried no assessment (LEFT JOIN miss).
func (n *nullableAssessment) toModel() (*models.RiskAssessment, error) {
	if !n.id.Valid {
		return nil, nil
	}

	a := &models.RiskAssessment{
		ID:           n.id.Int64,
		CommitID:     n.commitID.Int64,
		RiskScore:    int(n.score.Int64),
		RiskLevel:    models.RiskLevel(n.level.String),
		Confidence:   floatPtr(n.confidence),
		ModelVersion: n.modelVersion.String,
		CreatedAt:    n.createdAt.Time,
	}

	if len(n.features) > 0 {
		a.Features = json.RawMessage(n.features)
	}
	if len(n.breakdown) > 0 {
		if err := json.Unmarshal(n.breakdown, &a.Breakdown); err != nil {
			return nil, err
		}
	}

	return a, nil
}

func jsonArg(v []byte) any {
	if len(v) == 0 {
		return nil
	}
	return string(v)
}

// * RecordAssessment always appends; re-analysis never overwrites history.
func (p *PostgresDB) RecordAssessment(ctx context.Context, a *models.RiskAssessment) error {
	query := `
		INSERT INTO risk_assessments (
			commit_id, risk_score, risk_level, confidence, model_version,
			features, score_breakdown, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, NOW()))
		RETURNING id, created_at
	`

	var breakdown []byte
	if a.Breakdown != nil {
		b, err := json.Marshal(a.Breakdown)
		if err != nil {
			return errors.New(
				"DB_ASSESSMENT_ERROR",
				"Failed to encode score breakdown",
				fmt.Sprintf("Could not encode breakdown for commit %d", a.CommitID),
				err,
				errors.LevelError,
			)
		}
		breakdown = b
	}

	var createdAt any
	if !a.CreatedAt.IsZero() {
		createdAt = a.CreatedAt
	}

	err := p.db.QueryRowContext(ctx, query,
		a.CommitID, a.RiskScore, string(a.RiskLevel), a.Confidence, a.ModelVersion,
		jsonArg(a.Features), jsonArg(breakdown), createdAt,
	).Scan(&a.ID, &a.CreatedAt)
	if err == nil {
		return nil
	}

	if pqCode(err) == codeForeignKeyViolation {
		return errors.NotFound(
			"COMMIT_NOT_FOUND",
			"Commit not found",
			fmt.Sprintf("Cannot record assessment: commit %d does not exist", a.CommitID),
			err,
		).WithOperation("record assessment")
	}

	return errors.New(
		"DB_ASSESSMENT_ERROR",
		"Failed to record assessment",
		fmt.Sprintf("Could not record assessment for commit %d", a.CommitID),
		err,
		errors.LevelError,
	).WithOperation("record assessment")
}

// * LatestAssessment returns (nil, nil) when the commit exists but has no
// * matching assessment. An empty modelVersion matches any version.
func (p *PostgresDB) LatestAssessment(ctx context.Context, commitID int64, modelVersion string) (*models.RiskAssessment, error) {
	query := `
		SELECT c.id, ` + assessmentColumns + `
		FROM commits c
		LEFT JOIN LATERAL (
			SELECT *
			FROM risk_assessments
			WHERE commit_id = c.id AND ($2 = '' OR model_version = $2)
			ORDER BY created_at DESC, id ASC
			LIMIT 1
		) ra ON TRUE
		WHERE c.id = $1
	`

	var (
		id int64
		n  nullableAssessment
	)
	err := p.db.QueryRowContext(ctx, query, commitID, modelVersion).Scan(append([]any{&id}, n.dest()...)...)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound(
			"COMMIT_NOT_FOUND",
			"Commit not found",
			fmt.Sprintf("Commit %d does not exist", commitID),
			err,
		).WithOperation("latest assessment")
	}
	if err != nil {
		return nil, errors.New(
			"DB_ASSESSMENT_ERROR",
			"Failed to read latest assessment",
			fmt.Sprintf("Could not read latest assessment for commit %d", commitID),
			err,
			errors.LevelError,
		).WithOperation("latest assessment")
	}

	a, err := n.toModel()
	if err != nil {
		return nil, errors.New(
			"DB_SCAN_ERROR",
			"Failed to decode assessment",
			fmt.Sprintf("Stored breakdown for commit %d is not valid JSON", commitID),
			err,
			errors.LevelError,
		)
	}
	return a, nil
}

// * ListAssessments pages through the raw assessment history of ownerID's repositories, newest first.
func (p *PostgresDB) ListAssessments(ctx context.Context, ownerID int64, skip, limit int) ([]models.RiskAssessment, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM risk_assessments ra
		JOIN commits c ON c.id = ra.commit_id
		JOIN repositories r ON r.id = c.repository_id
		WHERE r.owner_id = $1
	`
	pageQuery := `
		SELECT ` + assessmentColumns + `
		FROM risk_assessments ra
		JOIN commits c ON c.id = ra.commit_id
		JOIN repositories r ON r.id = c.repository_id
		WHERE r.owner_id = $1
		ORDER BY ra.created_at DESC, ra.id ASC
		LIMIT $2 OFFSET $3
	`

	var (
		total int
		items []models.RiskAssessment
	)

	err := p.withTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, countQuery, ownerID).Scan(&total); err != nil {
			return err
		}

		rows, err := tx.QueryContext(ctx, pageQuery, ownerID, limit, skip)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var n nullableAssessment
			if err := rows.Scan(n.dest()...); err != nil {
				return err
			}
			a, err := n.toModel()
			if err != nil {
				return err
			}
			items = append(items, *a)
		}
		return rows.Err()
	})
	if err != nil {
		if isApplicationError(err) {
			return nil, 0, err
		}
		return nil, 0, errors.New(
			"DB_QUERY_ERROR",
			"Failed to list assessments",
			"Could not list risk assessments",
			err,
			errors.LevelError,
		)
	}

	return items, total, nil
}

func isApplicationError(err error) bool {
	var appErr *errors.ApplicationError
	return errors.As(err, &appErr)
}
