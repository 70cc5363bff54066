package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/KOFI-GYIMAH/commit-risk/internal/models"
)

type MockDatabase struct {
	mock.Mock
}

func (m *MockDatabase) UpsertRepository(ctx context.Context, repo *models.Repository) error {
	args := m.Called(ctx, repo)
	return args.Error(0)
}

func (m *MockDatabase) GetRepository(ctx context.Context, ownerID, id int64) (*models.Repository, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Repository), args.Error(1)
}

func (m *MockDatabase) GetRepositoryByFullName(ctx context.Context, ownerID int64, fullName string) (*models.Repository, error) {
	args := m.Called(ctx, ownerID, fullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Repository), args.Error(1)
}

func (m *MockDatabase) ListRepositories(ctx context.Context, ownerID int64) ([]models.Repository, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Repository), args.Error(1)
}

func (m *MockDatabase) ListAllRepositories(ctx context.Context) ([]models.Repository, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Repository), args.Error(1)
}

func (m *MockDatabase) DeleteRepository(ctx context.Context, ownerID, id int64) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockDatabase) MarkRepositorySynced(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDatabase) UpsertCommit(ctx context.Context, repositoryID int64, sha string, fields models.CommitFields) (*models.Commit, error) {
	args := m.Called(ctx, repositoryID, sha, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Commit), args.Error(1)
}

func (m *MockDatabase) GetCommit(ctx context.Context, id int64) (*models.Commit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Commit), args.Error(1)
}

func (m *MockDatabase) FindCommitBySHA(ctx context.Context, ownerID int64, sha string) (*models.Commit, error) {
	args := m.Called(ctx, ownerID, sha)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Commit), args.Error(1)
}

func (m *MockDatabase) RecordAssessment(ctx context.Context, a *models.RiskAssessment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockDatabase) LatestAssessment(ctx context.Context, commitID int64, modelVersion string) (*models.RiskAssessment, error) {
	args := m.Called(ctx, commitID, modelVersion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RiskAssessment), args.Error(1)
}

func (m *MockDatabase) ListAssessments(ctx context.Context, ownerID int64, skip, limit int) ([]models.RiskAssessment, int, error) {
	args := m.Called(ctx, ownerID, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.RiskAssessment), args.Int(1), args.Error(2)
}

func (m *MockDatabase) Snapshot(ctx context.Context, scope models.Scope) (*models.Snapshot, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Snapshot), args.Error(1)
}

type MockCommitSource struct {
	mock.Mock
}

func (m *MockCommitSource) FetchCommitPage(ctx context.Context, owner, name string, page, perPage int, branch string) ([]models.CommitRecord, error) {
	args := m.Called(ctx, owner, name, page, perPage, branch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CommitRecord), args.Error(1)
}

func (m *MockCommitSource) GetRepository(ctx context.Context, owner, name string) (*models.RepositoryInfo, error) {
	args := m.Called(ctx, owner, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RepositoryInfo), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishAnalysis(ctx context.Context, job models.AnalysisJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}
