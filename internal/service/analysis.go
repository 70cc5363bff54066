package service

import (
	"context"
	"fmt"
	"time"

	"github.com/KOFI-GYIMAH/commit-risk/internal/features"
	"github.com/KOFI-GYIMAH/commit-risk/internal/metrics"
	"github.com/KOFI-GYIMAH/commit-risk/internal/models"
	"github.com/KOFI-GYIMAH/commit-risk/internal/scoring"
	"github.com/KOFI-GYIMAH/commit-risk/pkg/errors"
	"github.com/KOFI-GYIMAH/commit-risk/pkg/logger"
)

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200

	// * sha-1 ids are 40 characters, sha-256 ids 64
	MaxSHALength = 64
)

type AnalyzeRequest struct {
	SHA                string
	RepositoryFullName string
	CommitMessage      *string
	AuthorEmail        *string
	LinesAdded         *int
	LinesDeleted       *int
	FilesChanged       *int
	ModelVersion       string
}

type Prediction struct {
	Commit     *models.Commit         `json:"commit"`
	Assessment *models.RiskAssessment `json:"assessment"`
}

type ModelsInfo struct {
	Versions []string `json:"versions"`
	Default  string   `json:"default"`
}

type AnalysisService struct {
	db       models.Database
	registry *scoring.Registry
	now      func() time.Time
}

func NewAnalysisService(db models.Database, registry *scoring.Registry) *AnalysisService {
	return &AnalysisService{
		db:       db,
		registry: registry,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// * Analyze upserts the commit from the request, scores it and appends a new assessment.
func (s *AnalysisService) Analyze(ctx context.Context, ownerID int64, req AnalyzeRequest) (*Prediction, error) {
	if req.SHA == "" || len(req.SHA) > MaxSHALength {
		return nil, errors.Validation(
			"INVALID_SHA",
			"Invalid commit sha",
			fmt.Sprintf("sha must be 1 to %d characters, got %d", MaxSHALength, len(req.SHA)),
			nil,
		).WithOperation("analyze")
	}

	stats := []struct {
		name  string
		value *int
	}{
		{"lines_added", req.LinesAdded},
		{"lines_deleted", req.LinesDeleted},
		{"files_changed", req.FilesChanged},
	}
	for _, stat := range stats {
		if stat.value != nil && *stat.value < 0 {
			return nil, errors.Validation(
				"INVALID_FEATURES",
				"Invalid feature vector",
				fmt.Sprintf("%s must not be negative for commit '%s'", stat.name, req.SHA),
				nil,
			).WithOperation("analyze")
		}
	}

	// * Resolve the scorer first so an unknown version never creates a commit
	if _, err := s.registry.Get(req.ModelVersion); err != nil {
		return nil, err
	}

	repo, err := s.db.GetRepositoryByFullName(ctx, ownerID, req.RepositoryFullName)
	if err != nil {
		return nil, err
	}

	commit, err := s.db.UpsertCommit(ctx, repo.ID, req.SHA, models.CommitFields{
		Message:      req.CommitMessage,
		AuthorEmail:  req.AuthorEmail,
		LinesAdded:   req.LinesAdded,
		LinesDeleted: req.LinesDeleted,
		FilesChanged: req.FilesChanged,
	})
	if err != nil {
		return nil, err
	}

	assessment, err := s.score(ctx, commit, req.ModelVersion)
	if err != nil {
		return nil, err
	}

	logger.Info("analyzed commit %s in %s: %d (%s) with %s",
		commit.SHA, repo.FullName, assessment.RiskScore, assessment.RiskLevel, assessment.ModelVersion)
	return &Prediction{Commit: commit, Assessment: assessment}, nil
}

// * AnalyzeCommit re-scores a stored commit. Each call appends a new assessment.
func (s *AnalysisService) AnalyzeCommit(ctx context.Context, commitID int64, modelVersion string) (*models.RiskAssessment, error) {
	commit, err := s.db.GetCommit(ctx, commitID)
	if err != nil {
		return nil, err
	}
	return s.score(ctx, commit, modelVersion)
}

func (s *AnalysisService) score(ctx context.Context, commit *models.Commit, modelVersion string) (*models.RiskAssessment, error) {
	scorer, err := s.registry.Get(modelVersion)
	if err != nil {
		return nil, err
	}

	vector := features.Extract(*commit)
	result, err := scorer.Score(vector)
	if err != nil {
		var appErr *errors.ApplicationError
		if errors.As(err, &appErr) {
			appErr.Detail = fmt.Sprintf("%s (commit '%s')", appErr.Detail, commit.SHA)
			appErr.Operation = "score"
		}
		return nil, err
	}

	confidence := result.Confidence
	assessment := &models.RiskAssessment{
		CommitID:     commit.ID,
		RiskScore:    result.Score,
		RiskLevel:    result.Level,
		Confidence:   &confidence,
		ModelVersion: scorer.Version(),
		Features:     vector.JSON(),
		Breakdown:    result.Breakdown,
		CreatedAt:    s.now(),
	}

	if err := s.db.RecordAssessment(ctx, assessment); err != nil {
		return nil, err
	}

	metrics.AssessmentsRecorded.WithLabelValues(assessment.ModelVersion, string(assessment.RiskLevel)).Inc()
	return assessment, nil
}

// * Latest returns the newest assessment for sha among ownerID's repositories.
func (s *AnalysisService) Latest(ctx context.Context, ownerID int64, sha, modelVersion string) (*Prediction, error) {
	commit, err := s.db.FindCommitBySHA(ctx, ownerID, sha)
	if err != nil {
		return nil, err
	}

	assessment, err := s.db.LatestAssessment(ctx, commit.ID, modelVersion)
	if err != nil {
		return nil, err
	}
	if assessment == nil {
		return nil, errors.NotFound(
			"ASSESSMENT_NOT_FOUND",
			"Assessment not found",
			fmt.Sprintf("No risk assessment found for commit '%s'", sha),
			nil,
		).WithOperation("latest assessment")
	}

	return &Prediction{Commit: commit, Assessment: assessment}, nil
}

func (s *AnalysisService) List(ctx context.Context, ownerID int64, skip, limit int) ([]models.RiskAssessment, int, error) {
	if err := validatePage(skip, limit); err != nil {
		return nil, 0, err
	}

	items, total, err := s.db.ListAssessments(ctx, ownerID, skip, limit)
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []models.RiskAssessment{}
	}
	return items, total, nil
}

func (s *AnalysisService) Models() ModelsInfo {
	return ModelsInfo{Versions: s.registry.Versions(), Default: s.registry.Default()}
}

func validatePage(skip, limit int) error {
	if skip < 0 {
		return errors.Validation("INVALID_SKIP", "Invalid skip", fmt.Sprintf("skip must be >= 0, got %d", skip), nil)
	}
	if limit < 1 || limit > MaxPageLimit {
		return errors.Validation(
			"INVALID_LIMIT",
			"Invalid limit",
			fmt.Sprintf("limit must be between 1 and %d, got %d", MaxPageLimit, limit),
			nil,
		)
	}
	return nil
}
