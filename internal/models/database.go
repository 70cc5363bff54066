package models

import (
	"context"
)

// * Scope narrows reads to one owner and optionally one of their repositories.
type Scope struct {
	OwnerID      int64
	RepositoryID *int64
}

// * CommitRisk is a commit joined with its latest assessment, nil when never assessed.
type CommitRisk struct {
	Commit             Commit
	RepositoryFullName string
	Assessment         *RiskAssessment
}

// * Snapshot is everything the dashboard reads, taken in one consistent transaction.
type Snapshot struct {
	TotalRepositories int
	TotalCommits      int
	TotalAssessments  int
	Rows              []CommitRisk
}

// * This interface defines all db operations needed by the application
type Database interface {
	// * Repository operations
	UpsertRepository(ctx context.Context, repo *Repository) error
	GetRepository(ctx context.Context, ownerID, id int64) (*Repository, error)
	GetRepositoryByFullName(ctx context.Context, ownerID int64, fullName string) (*Repository, error)
	ListRepositories(ctx context.Context, ownerID int64) ([]Repository, error)
	ListAllRepositories(ctx context.Context) ([]Repository, error)
	DeleteRepository(ctx context.Context, ownerID, id int64) error
	MarkRepositorySynced(ctx context.Context, id int64) error

	// * Commit operations
	UpsertCommit(ctx context.Context, repositoryID int64, sha string, fields CommitFields) (*Commit, error)
	GetCommit(ctx context.Context, id int64) (*Commit, error)
	FindCommitBySHA(ctx context.Context, ownerID int64, sha string) (*Commit, error)

	// * Assessment operations
	RecordAssessment(ctx context.Context, a *RiskAssessment) error
	LatestAssessment(ctx context.Context, commitID int64, modelVersion string) (*RiskAssessment, error)
	ListAssessments(ctx context.Context, ownerID int64, skip, limit int) ([]RiskAssessment, int, error)

	// * Aggregation
	Snapshot(ctx context.Context, scope Scope) (*Snapshot, error)
}
