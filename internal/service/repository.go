package service

import (
	"context"
	"fmt"

	"github.com/KOFI-GYIMAH/commit-risk/internal/config"
	"github.com/KOFI-GYIMAH/commit-risk/internal/metrics"
	"github.com/KOFI-GYIMAH/commit-risk/internal/models"
	"github.com/KOFI-GYIMAH/commit-risk/pkg/errors"
	"github.com/KOFI-GYIMAH/commit-risk/pkg/logger"
)

// * CommitSource is the ingestion adapter boundary. Implementations must be
// * idempotent for identical page parameters and report failures as Upstream errors.
type CommitSource interface {
	FetchCommitPage(ctx context.Context, owner, name string, page, perPage int, branch string) ([]models.CommitRecord, error)
	GetRepository(ctx context.Context, owner, name string) (*models.RepositoryInfo, error)
}

// * JobPublisher hands analysis work to an asynchronous consumer.
type JobPublisher interface {
	PublishAnalysis(ctx context.Context, job models.AnalysisJob) error
}

type SyncResult struct {
	Repository string `json:"repository"`
	Fetched    int    `json:"fetched"`
	Analyzed   int    `json:"analyzed"`
	Queued     int    `json:"queued"`
}

// * CommitHistory is one page of commits read straight from the source.
type CommitHistory struct {
	RepositoryID   int64                 `json:"repository_id"`
	FullName       string                `json:"full_name"`
	Branch         string                `json:"branch,omitempty"`
	Page           int                   `json:"page"`
	PerPage        int                   `json:"per_page"`
	Commits        []models.CommitRecord `json:"commits"`
	CommitsFetched int                   `json:"commits_fetched"`
}

// * GitHub caps per_page at 100
const MaxCommitsPerPage = 100

type RepositoryService struct {
	db        models.Database
	source    CommitSource
	analysis  *AnalysisService
	publisher JobPublisher
	perPage   int
}

// * NewRepositoryService accepts a nil source (no sync) and a nil publisher (inline analysis).
func NewRepositoryService(db models.Database, source CommitSource, analysis *AnalysisService, publisher JobPublisher, perPage int) *RepositoryService {
	if perPage <= 0 {
		perPage = 30
	}
	return &RepositoryService{
		db:        db,
		source:    source,
		analysis:  analysis,
		publisher: publisher,
		perPage:   perPage,
	}
}

// * Import registers owner/name for ownerID, pulling metadata upstream when a source is configured.
func (s *RepositoryService) Import(ctx context.Context, ownerID int64, fullName string) (*models.Repository, error) {
	owner, name, err := config.ParseRepository(fullName)
	if err != nil {
		return nil, errors.Validation("INVALID_REPOSITORY", "Invalid repository name", err.Error(), err)
	}

	repo := &models.Repository{
		OwnerID:  ownerID,
		FullName: owner + "/" + name,
		Name:     name,
	}

	if s.source != nil {
		info, err := s.source.GetRepository(ctx, owner, name)
		if err != nil {
			return nil, err
		}
		githubID := info.ID
		repo.GithubRepoID = &githubID
		repo.IsPrivate = info.Private
		if info.FullName != "" {
			repo.FullName = info.FullName
			repo.Name = info.Name
		}
	}

	if err := s.db.UpsertRepository(ctx, repo); err != nil {
		return nil, err
	}

	logger.Info("imported repository %s for owner %d", repo.FullName, ownerID)
	return repo, nil
}

func (s *RepositoryService) List(ctx context.Context, ownerID int64) ([]models.Repository, error) {
	repos, err := s.db.ListRepositories(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if repos == nil {
		repos = []models.Repository{}
	}
	return repos, nil
}

func (s *RepositoryService) Get(ctx context.Context, ownerID, id int64) (*models.Repository, error) {
	return s.db.GetRepository(ctx, ownerID, id)
}

// * Remove deletes the repository together with its commits and assessments.
func (s *RepositoryService) Remove(ctx context.Context, ownerID, id int64) error {
	if err := s.db.DeleteRepository(ctx, ownerID, id); err != nil {
		return err
	}
	logger.Info("removed repository %d for owner %d", id, ownerID)
	return nil
}

// * AllRepositories lists every registered repository, for the sync worker.
func (s *RepositoryService) AllRepositories(ctx context.Context) ([]models.Repository, error) {
	return s.db.ListAllRepositories(ctx)
}

// * SyncRepository pages through the source until limit commits or an empty
// * page, upserts them and scores every commit that has no assessment yet.
func (s *RepositoryService) SyncRepository(ctx context.Context, repo models.Repository, branch string, limit int) (*SyncResult, error) {
	if s.source == nil {
		return nil, syncDisabled("sync")
	}

	owner, name, err := config.ParseRepository(repo.FullName)
	if err != nil {
		return nil, errors.Validation("INVALID_REPOSITORY", "Invalid repository name", err.Error(), err)
	}

	logger.Info("Syncing repository %s...", repo.FullName)
	result := &SyncResult{Repository: repo.FullName}

	var pending []*models.Commit
	for page := 1; result.Fetched < limit; page++ {
		records, err := s.source.FetchCommitPage(ctx, owner, name, page, s.perPage, branch)
		if err != nil {
			metrics.UpstreamErrors.WithLabelValues(reasonLabel(err)).Inc()
			return result, err
		}
		if len(records) == 0 {
			break
		}

		for _, record := range records {
			if result.Fetched >= limit {
				break
			}

			commit, err := s.db.UpsertCommit(ctx, repo.ID, record.SHA, record.Fields())
			if err != nil {
				return result, err
			}
			result.Fetched++
			metrics.CommitsIngested.Inc()

			latest, err := s.db.LatestAssessment(ctx, commit.ID, "")
			if err != nil {
				return result, err
			}
			if latest == nil {
				pending = append(pending, commit)
			}
		}

		if len(records) < s.perPage {
			break
		}
	}

	for _, commit := range pending {
		if s.publisher != nil {
			job := models.AnalysisJob{CommitID: commit.ID, RepositoryFullName: repo.FullName}
			err := s.publisher.PublishAnalysis(ctx, job)
			if err == nil {
				result.Queued++
				continue
			}
			logger.Warn("failed to queue analysis of %s, scoring inline: %v", commit.SHA, err)
		}

		if _, err := s.analysis.AnalyzeCommit(ctx, commit.ID, ""); err != nil {
			return result, fmt.Errorf("failed to analyze commit %s: %w", commit.SHA, err)
		}
		result.Analyzed++
	}

	if err := s.db.MarkRepositorySynced(ctx, repo.ID); err != nil {
		return result, err
	}

	logger.Info("Successfully synced repository %s: %d fetched, %d analyzed, %d queued",
		repo.FullName, result.Fetched, result.Analyzed, result.Queued)
	return result, nil
}

// * CommitHistory fetches one page of commits for repo without storing or scoring them.
func (s *RepositoryService) CommitHistory(ctx context.Context, repo models.Repository, branch string, page, perPage int) (*CommitHistory, error) {
	if s.source == nil {
		return nil, syncDisabled("commit history")
	}
	if page < 1 {
		return nil, errors.Validation("INVALID_PAGE", "Invalid page", fmt.Sprintf("page must be >= 1, got %d", page), nil)
	}
	if perPage < 1 || perPage > MaxCommitsPerPage {
		return nil, errors.Validation(
			"INVALID_PER_PAGE",
			"Invalid per_page",
			fmt.Sprintf("per_page must be between 1 and %d, got %d", MaxCommitsPerPage, perPage),
			nil,
		)
	}

	owner, name, err := config.ParseRepository(repo.FullName)
	if err != nil {
		return nil, errors.Validation("INVALID_REPOSITORY", "Invalid repository name", err.Error(), err)
	}

	records, err := s.source.FetchCommitPage(ctx, owner, name, page, perPage, branch)
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues(reasonLabel(err)).Inc()
		return nil, err
	}
	if records == nil {
		records = []models.CommitRecord{}
	}

	return &CommitHistory{
		RepositoryID:   repo.ID,
		FullName:       repo.FullName,
		Branch:         branch,
		Page:           page,
		PerPage:        perPage,
		Commits:        records,
		CommitsFetched: len(records),
	}, nil
}

func syncDisabled(op string) *errors.ApplicationError {
	return errors.Conflict(
		"SYNC_DISABLED",
		"Repository sync is disabled",
		"No version-control adapter is configured (set GITHUB_TOKEN)",
		nil,
	).WithOperation(op)
}

func reasonLabel(err error) string {
	if reason := errors.ReasonOf(err); reason != "" {
		return string(reason)
	}
	return "unknown"
}
