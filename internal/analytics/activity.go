package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/KOFI-GYIMAH/commit-risk/internal/models"
	"github.com/KOFI-GYIMAH/commit-risk/pkg/errors"
)

const (
	DefaultActivityLimit = 10
	MaxActivityLimit     = 50
)

type ActivityItem struct {
	SHA                string           `json:"sha"`
	Message            string           `json:"message"`
	AuthorEmail        string           `json:"author_email"`
	AuthorName         string           `json:"author_name"`
	RiskScore          int              `json:"risk_score"`
	RiskLevel          models.RiskLevel `json:"risk_level"`
	Confidence         *float64         `json:"confidence"`
	ModelVersion       string           `json:"model_version"`
	RepositoryFullName string           `json:"repository_full_name"`
	CommittedAt        *time.Time       `json:"committed_at"`
	AnalyzedAt         time.Time        `json:"analyzed_at"`
}

func ValidateActivityLimit(limit int) error {
	if limit < 1 || limit > MaxActivityLimit {
		return errors.Validation(
			"INVALID_LIMIT",
			"Invalid limit",
			fmt.Sprintf("limit must be between 1 and %d, got %d", MaxActivityLimit, limit),
			nil,
		)
	}
	return nil
}

// * RecentActivity returns the newest latest-assessments first, ties by commit id ascending.
func RecentActivity(rows []models.CommitRisk, limit int) []ActivityItem {
	assessed := make([]models.CommitRisk, 0, len(rows))
	for _, row := range rows {
		if row.Assessment != nil {
			assessed = append(assessed, row)
		}
	}

	sort.SliceStable(assessed, func(i, j int) bool {
		ai, aj := assessed[i].Assessment.CreatedAt, assessed[j].Assessment.CreatedAt
		if !ai.Equal(aj) {
			return ai.After(aj)
		}
		return assessed[i].Commit.ID < assessed[j].Commit.ID
	})

	if limit < len(assessed) {
		assessed = assessed[:limit]
	}

	items := make([]ActivityItem, 0, len(assessed))
	for _, row := range assessed {
		a := row.Assessment
		items = append(items, ActivityItem{
			SHA:                row.Commit.SHA,
			Message:            row.Commit.Message,
			AuthorEmail:        row.Commit.AuthorEmail,
			AuthorName:         row.Commit.AuthorName,
			RiskScore:          a.RiskScore,
			RiskLevel:          a.RiskLevel,
			Confidence:         a.Confidence,
			ModelVersion:       a.ModelVersion,
			RepositoryFullName: row.RepositoryFullName,
			CommittedAt:        row.Commit.CommittedAt,
			AnalyzedAt:         a.CreatedAt,
		})
	}
	return items
}
