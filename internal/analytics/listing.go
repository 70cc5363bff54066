package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/KOFI-GYIMAH/commit-risk/internal/models"
	"github.com/KOFI-GYIMAH/commit-risk/pkg/errors"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

const (
	SortCreatedAt    = "created_at"
	SortRiskScore    = "risk_score"
	SortFilesChanged = "files_changed"
	SortLinesAdded   = "lines_added"
)

// * ListQuery is the filter/sort/page request for the commits-with-risk table.
type ListQuery struct {
	RiskLevel string
	Search    string
	SortBy    string
	SortOrder string
	Skip      int
	Limit     int
}

// * Normalize applies defaults and rejects out-of-range paging or an unknown level.
// * An unknown sort field falls back to created_at.
func (q ListQuery) Normalize() (ListQuery, error) {
	switch q.SortBy {
	case SortCreatedAt, SortRiskScore, SortFilesChanged, SortLinesAdded:
	default:
		q.SortBy = SortCreatedAt
	}

	if strings.ToLower(q.SortOrder) == "asc" {
		q.SortOrder = "asc"
	} else {
		q.SortOrder = "desc"
	}

	if q.Limit == 0 {
		q.Limit = DefaultListLimit
	}

	if q.Skip < 0 {
		return q, errors.Validation("INVALID_SKIP", "Invalid skip", fmt.Sprintf("skip must be >= 0, got %d", q.Skip), nil)
	}
	if q.Limit < 1 || q.Limit > MaxListLimit {
		return q, errors.Validation(
			"INVALID_LIMIT",
			"Invalid limit",
			fmt.Sprintf("limit must be between 1 and %d, got %d", MaxListLimit, q.Limit),
			nil,
		)
	}

	if q.RiskLevel != "" {
		level, ok := models.ParseRiskLevel(q.RiskLevel)
		if !ok {
			return q, errors.Validation(
				"INVALID_RISK_LEVEL",
				"Invalid risk level",
				fmt.Sprintf("risk_level must be LOW, MEDIUM or HIGH, got '%s'", q.RiskLevel),
				nil,
			)
		}
		q.RiskLevel = string(level)
	}

	return q, nil
}

type CommitRiskItem struct {
	ID                 int64             `json:"id"`
	SHA                string            `json:"sha"`
	Message            string            `json:"message"`
	AuthorName         string            `json:"author_name"`
	AuthorEmail        string            `json:"author_email"`
	LinesAdded         *int              `json:"lines_added"`
	LinesDeleted       *int              `json:"lines_deleted"`
	FilesChanged       *int              `json:"files_changed"`
	Complexity         *float64          `json:"avg_cyclomatic_complexity"`
	RepositoryID       int64             `json:"repository_id"`
	RepositoryFullName string            `json:"repository_full_name"`
	CommittedAt        *time.Time        `json:"committed_at"`
	CreatedAt          time.Time         `json:"created_at"`
	RiskScore          *int              `json:"risk_score"`
	RiskLevel          *models.RiskLevel `json:"risk_level"`
	Confidence         *float64          `json:"confidence"`
	ModelVersion       *string           `json:"model_version"`
}

// * List filters, sorts and pages rows. q must already be normalized.
// * Unassessed commits are listed with null risk fields, never match a level
// * filter and sort as score -1. Ties always break on commit id ascending.
func List(rows []models.CommitRisk, q ListQuery) ([]CommitRiskItem, int) {
	needle := strings.ToLower(q.Search)

	filtered := make([]models.CommitRisk, 0, len(rows))
	for _, row := range rows {
		if q.RiskLevel != "" && (row.Assessment == nil || string(row.Assessment.RiskLevel) != q.RiskLevel) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(row.Commit.Message), needle) &&
			!strings.Contains(strings.ToLower(row.Commit.SHA), needle) {
			continue
		}
		filtered = append(filtered, row)
	}

	key := sortKey(q.SortBy)
	desc := q.SortOrder == "desc"

	sort.SliceStable(filtered, func(i, j int) bool {
		ki, kj := key(filtered[i]), key(filtered[j])
		if ki != kj {
			if desc {
				return ki > kj
			}
			return ki < kj
		}
		return filtered[i].Commit.ID < filtered[j].Commit.ID
	})

	total := len(filtered)
	if q.Skip >= total {
		return []CommitRiskItem{}, total
	}

	end := q.Skip + q.Limit
	if end > total {
		end = total
	}

	items := make([]CommitRiskItem, 0, end-q.Skip)
	for _, row := range filtered[q.Skip:end] {
		items = append(items, toItem(row))
	}
	return items, total
}

func sortKey(field string) func(models.CommitRisk) int64 {
	switch field {
	case SortRiskScore:
		return func(r models.CommitRisk) int64 {
			if r.Assessment == nil {
				return -1
			}
			return int64(r.Assessment.RiskScore)
		}
	case SortFilesChanged:
		return func(r models.CommitRisk) int64 { return optional(r.Commit.FilesChanged) }
	case SortLinesAdded:
		return func(r models.CommitRisk) int64 { return optional(r.Commit.LinesAdded) }
	default:
		return func(r models.CommitRisk) int64 { return r.Commit.IngestedAt.UnixNano() }
	}
}

func optional(p *int) int64 {
	if p == nil {
		return -1
	}
	return int64(*p)
}

func toItem(row models.CommitRisk) CommitRiskItem {
	c := row.Commit
	item := CommitRiskItem{
		ID:                 c.ID,
		SHA:                c.SHA,
		Message:            c.Message,
		AuthorName:         c.AuthorName,
		AuthorEmail:        c.AuthorEmail,
		LinesAdded:         c.LinesAdded,
		LinesDeleted:       c.LinesDeleted,
		FilesChanged:       c.FilesChanged,
		Complexity:         c.Complexity,
		RepositoryID:       c.RepositoryID,
		RepositoryFullName: row.RepositoryFullName,
		CommittedAt:        c.CommittedAt,
		CreatedAt:          c.IngestedAt,
	}

	if a := row.Assessment; a != nil {
		score, level, version := a.RiskScore, a.RiskLevel, a.ModelVersion
		item.RiskScore = &score
		item.RiskLevel = &level
		item.Confidence = a.Confidence
		item.ModelVersion = &version
	}
	return item
}
