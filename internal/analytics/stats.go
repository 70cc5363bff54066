// Package analytics turns one store snapshot into the dashboard aggregates.
// Every function here is pure: callers pass the snapshot and the request time.
package analytics

import (
	"math"
	"time"

	"github.com/KOFI-GYIMAH/commit-risk/internal/models"
)

const recentWindow = 24 * time.Hour

type Stats struct {
	TotalRepositories int                      `json:"total_repositories"`
	TotalCommits      int                      `json:"total_commits"`
	TotalAssessments  int                      `json:"total_assessments"`
	RiskCounts        map[models.RiskLevel]int `json:"risk_counts"`
	AvgRiskScore      *float64                 `json:"avg_risk_score"`
	HighRiskCount     int                      `json:"high_risk_count"`
	RecentCommits24h  int                      `json:"recent_commits_24h"`
	RecentHighRisk24h int                      `json:"recent_high_risk_24h"`
}

// * Summarize counts per-level and averages over latest assessments only.
func Summarize(snap *models.Snapshot, now time.Time) Stats {
	stats := Stats{
		TotalRepositories: snap.TotalRepositories,
		TotalCommits:      snap.TotalCommits,
		TotalAssessments:  snap.TotalAssessments,
		RiskCounts:        make(map[models.RiskLevel]int, len(models.Levels)),
	}
	for _, level := range models.Levels {
		stats.RiskCounts[level] = 0
	}

	cutoff := now.Add(-recentWindow)
	sum, assessed := 0, 0

	for _, row := range snap.Rows {
		if !row.Commit.IngestedAt.Before(cutoff) {
			stats.RecentCommits24h++
		}

		a := row.Assessment
		if a == nil {
			continue
		}

		assessed++
		sum += a.RiskScore
		stats.RiskCounts[a.RiskLevel]++

		if a.RiskLevel == models.RiskHigh && !a.CreatedAt.Before(cutoff) {
			stats.RecentHighRisk24h++
		}
	}

	stats.HighRiskCount = stats.RiskCounts[models.RiskHigh]
	if assessed > 0 {
		avg := round1(float64(sum) / float64(assessed))
		stats.AvgRiskScore = &avg
	}

	return stats
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
