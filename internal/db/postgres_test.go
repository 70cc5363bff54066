package db

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KOFI-GYIMAH/commit-risk/internal/models"
	"github.com/KOFI-GYIMAH/commit-risk/pkg/errors"
)

var commitRowColumns = []string{
	"id", "repository_id", "sha", "author_name", "author_email", "message",
	"lines_added", "lines_deleted", "files_changed", "complexity", "committed_at", "ingested_at",
}

var assessmentRowColumns = []string{
	"id", "commit_id", "risk_score", "risk_level", "confidence",
	"model_version", "features", "score_breakdown", "created_at",
}

func newMock(t *testing.T) (*PostgresDB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return &PostgresDB{db: mockDB}, mock
}

func strPtr(s string) *string { return &s }
func intP(i int) *int          { return &i }

func TestUpsertRepository(t *testing.T) {
	pg, mock := newMock(t)
	now := time.Now()

	repo := &models.Repository{
		OwnerID:  7,
		FullName: "acme/api",
		Name:     "api",
	}

	mock.ExpectQuery("INSERT INTO repositories").
		WithArgs(int64(7), "acme/api", "api", nil, false, false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "last_synced_at"}).AddRow(3, now, nil))

	err := pg.UpsertRepository(context.Background(), repo)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), repo.ID)
	assert.Nil(t, repo.LastSyncedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRepository_NotFound(t *testing.T) {
	pg, mock := newMock(t)

	mock.ExpectQuery("FROM repositories WHERE owner_id = \\$1 AND id = \\$2").
		WithArgs(int64(7), int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := pg.GetRepository(context.Background(), 7, 99)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRepository(t *testing.T) {
	pg, mock := newMock(t)

	mock.ExpectExec("DELETE FROM repositories").
		WithArgs(int64(7), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM repositories").
		WithArgs(int64(7), int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, pg.DeleteRepository(context.Background(), 7, 3))

	err := pg.DeleteRepository(context.Background(), 7, 4)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertCommit(t *testing.T) {
	pg, mock := newMock(t)
	now := time.Now()

	fields := models.CommitFields{
		Message:      strPtr("hotfix: urgent patch"),
		LinesAdded:   intP(600),
		LinesDeleted: intP(50),
		FilesChanged: intP(25),
	}

	mock.ExpectQuery("INSERT INTO commits").
		WithArgs(int64(1), "abc123", "hotfix: urgent patch", nil, nil, 600, 50, 25, nil, nil).
		WillReturnRows(sqlmock.NewRows(commitRowColumns).
			AddRow(10, 1, "abc123", "", "", "hotfix: urgent patch", 600, 50, 25, nil, nil, now))

	commit, err := pg.UpsertCommit(context.Background(), 1, "abc123", fields)
	require.NoError(t, err)
	assert.Equal(t, int64(10), commit.ID)
	assert.Equal(t, 600, *commit.LinesAdded)
	assert.Nil(t, commit.Complexity)
	assert.Nil(t, commit.CommittedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertCommit_RetriesTransientConflict(t *testing.T) {
	pg, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO commits").WillReturnError(&pq.Error{Code: "40001"})
	mock.ExpectQuery("INSERT INTO commits").
		WillReturnRows(sqlmock.NewRows(commitRowColumns).
			AddRow(10, 1, "abc123", "", "", "", nil, nil, nil, nil, nil, now))

	commit, err := pg.UpsertCommit(context.Background(), 1, "abc123", models.CommitFields{})
	require.NoError(t, err)
	assert.Equal(t, int64(10), commit.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertCommit_ConflictAfterRetries(t *testing.T) {
	pg, mock := newMock(t)

	for i := 0; i < maxWriteAttempts; i++ {
		mock.ExpectQuery("INSERT INTO commits").WillReturnError(&pq.Error{Code: "40P01"})
	}

	_, err := pg.UpsertCommit(context.Background(), 1, "abc123", models.CommitFields{})
	assert.True(t, errors.IsKind(err, errors.KindConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertCommit_UnknownRepository(t *testing.T) {
	pg, mock := newMock(t)

	mock.ExpectQuery("INSERT INTO commits").WillReturnError(&pq.Error{Code: "23503"})

	_, err := pg.UpsertCommit(context.Background(), 42, "abc123", models.CommitFields{})
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertCommit_ValueTooLong(t *testing.T) {
	pg, mock := newMock(t)

	mock.ExpectQuery("INSERT INTO commits").WillReturnError(&pq.Error{Code: "22001"})

	_, err := pg.UpsertCommit(context.Background(), 1, "abc123", models.CommitFields{})
	assert.True(t, errors.IsKind(err, errors.KindValidation))
	assert.Equal(t, http.StatusUnprocessableEntity, errors.StatusFor(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindCommitBySHA(t *testing.T) {
	pg, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(`ORDER BY la.assessed_at DESC NULLS LAST, c.id`).
		WithArgs(int64(7), "abc123").
		WillReturnRows(sqlmock.NewRows(commitRowColumns).
			AddRow(12, 4, "abc123", "", "", "fix", nil, nil, nil, nil, nil, now))

	commit, err := pg.FindCommitBySHA(context.Background(), 7, "abc123")
	require.NoError(t, err)
	assert.Equal(t, int64(12), commit.ID)
	assert.Equal(t, int64(4), commit.RepositoryID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindCommitBySHA_NotFound(t *testing.T) {
	pg, mock := newMock(t)

	mock.ExpectQuery("FROM commits c").WithArgs(int64(7), "nope").WillReturnError(sql.ErrNoRows)

	_, err := pg.FindCommitBySHA(context.Background(), 7, "nope")
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordAssessment(t *testing.T) {
	pg, mock := newMock(t)
	now := time.Now().UTC()
	confidence := 0.75

	a := &models.RiskAssessment{
		CommitID:     10,
		RiskScore:    85,
		RiskLevel:    models.RiskHigh,
		Confidence:   &confidence,
		ModelVersion: "rule-v1",
		Breakdown:    map[string]int{"lines_changed": 40},
		CreatedAt:    now,
	}

	mock.ExpectQuery("INSERT INTO risk_assessments").
		WithArgs(int64(10), 85, "HIGH", 0.75, "rule-v1", nil, `{"lines_changed":40}`, now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(100, now))

	require.NoError(t, pg.RecordAssessment(context.Background(), a))
	assert.Equal(t, int64(100), a.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordAssessment_UnknownCommit(t *testing.T) {
	pg, mock := newMock(t)

	mock.ExpectQuery("INSERT INTO risk_assessments").WillReturnError(&pq.Error{Code: "23503"})

	err := pg.RecordAssessment(context.Background(), &models.RiskAssessment{CommitID: 404, RiskLevel: models.RiskLow})
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestAssessment(t *testing.T) {
	now := time.Now()
	columns := append([]string{"commit"}, assessmentRowColumns...)

	t.Run("returns latest", func(t *testing.T) {
		pg, mock := newMock(t)
		mock.ExpectQuery("LEFT JOIN LATERAL").
			WithArgs(int64(10), "").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(10, 101, 10, 25, "LOW", 0.75, "rule-v1", []byte(`{"lines_added":250}`), []byte(`{"lines_changed":25}`), now))

		a, err := pg.LatestAssessment(context.Background(), 10, "")
		require.NoError(t, err)
		require.NotNil(t, a)
		assert.Equal(t, int64(101), a.ID)
		assert.Equal(t, models.RiskLow, a.RiskLevel)
		assert.Equal(t, map[string]int{"lines_changed": 25}, a.Breakdown)
		assert.JSONEq(t, `{"lines_added":250}`, string(a.Features))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("commit without assessments", func(t *testing.T) {
		pg, mock := newMock(t)
		mock.ExpectQuery("LEFT JOIN LATERAL").
			WithArgs(int64(10), "logit-v1").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(10, nil, nil, nil, nil, nil, nil, nil, nil, nil))

		a, err := pg.LatestAssessment(context.Background(), 10, "logit-v1")
		assert.NoError(t, err)
		assert.Nil(t, a)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown commit", func(t *testing.T) {
		pg, mock := newMock(t)
		mock.ExpectQuery("LEFT JOIN LATERAL").
			WithArgs(int64(404), "").
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := pg.LatestAssessment(context.Background(), 404, "")
		assert.True(t, errors.IsKind(err, errors.KindNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSnapshot(t *testing.T) {
	pg, mock := newMock(t)
	now := time.Now()

	rowColumns := append(append(append([]string{}, commitRowColumns...), "full_name"), assessmentRowColumns...)

	mock.ExpectBegin()
	mock.ExpectQuery("COUNT\\(\\*\\) FROM repositories").
		WithArgs(int64(7), nil).
		WillReturnRows(sqlmock.NewRows([]string{"repos", "commits", "assessments"}).AddRow(1, 2, 3))
	mock.ExpectQuery("LEFT JOIN LATERAL").
		WithArgs(int64(7), nil).
		WillReturnRows(sqlmock.NewRows(rowColumns).
			AddRow(10, 1, "abc123", "dev", "dev@acme.io", "hotfix", 600, 50, 25, nil, nil, now, "acme/api",
				101, 10, 85, "HIGH", 0.75, "rule-v1", nil, nil, now).
			AddRow(11, 1, "def456", "dev", "dev@acme.io", "docs", nil, nil, nil, nil, nil, now, "acme/api",
				nil, nil, nil, nil, nil, nil, nil, nil, nil))
	mock.ExpectCommit()

	snap, err := pg.Snapshot(context.Background(), models.Scope{OwnerID: 7})
	require.NoError(t, err)

	assert.Equal(t, 1, snap.TotalRepositories)
	assert.Equal(t, 2, snap.TotalCommits)
	assert.Equal(t, 3, snap.TotalAssessments)
	require.Len(t, snap.Rows, 2)
	assert.Equal(t, "acme/api", snap.Rows[0].RepositoryFullName)
	require.NotNil(t, snap.Rows[0].Assessment)
	assert.Equal(t, 85, snap.Rows[0].Assessment.RiskScore)
	assert.Nil(t, snap.Rows[1].Assessment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_Commit(t *testing.T) {
	pg, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := pg.withTx(context.Background(), nil, func(tx *sql.Tx) error {
		return nil
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_Rollback(t *testing.T) {
	pg, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := pg.withTx(context.Background(), nil, func(tx *sql.Tx) error {
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
