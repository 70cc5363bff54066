package analytics

import (
	"fmt"

	"github.com/KOFI-GYIMAH/commit-risk/internal/models"
)

const (
	bucketWidth = 10
	bucketCount = 10
)

type LevelShare struct {
	Level      models.RiskLevel `json:"level"`
	Count      int              `json:"count"`
	Percentage float64          `json:"percentage"`
}

type Bucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

type Distribution struct {
	Distribution   []LevelShare `json:"distribution"`
	Total          int          `json:"total"`
	ScoreHistogram []Bucket     `json:"score_histogram"`
}

// * Distribute reports LOW, MEDIUM, HIGH in that order. With no assessments the
// * distribution is empty and total is 0; the histogram still has every bucket.
func Distribute(rows []models.CommitRisk) Distribution {
	counts := make(map[models.RiskLevel]int, len(models.Levels))
	total := 0
	for _, row := range rows {
		if row.Assessment == nil {
			continue
		}
		counts[row.Assessment.RiskLevel]++
		total++
	}

	d := Distribution{
		Distribution:   []LevelShare{},
		Total:          total,
		ScoreHistogram: Histogram(rows),
	}
	if total == 0 {
		return d
	}

	for _, level := range models.Levels {
		d.Distribution = append(d.Distribution, LevelShare{
			Level:      level,
			Count:      counts[level],
			Percentage: round1(float64(counts[level]) / float64(total) * 100),
		})
	}
	return d
}

// * Histogram buckets are [lo, lo+10) except the last, which also takes 100.
func Histogram(rows []models.CommitRisk) []Bucket {
	buckets := make([]Bucket, bucketCount)
	for i := range buckets {
		lo := i * bucketWidth
		buckets[i].Range = fmt.Sprintf("%d-%d", lo, lo+bucketWidth)
	}

	for _, row := range rows {
		if row.Assessment == nil {
			continue
		}
		idx := row.Assessment.RiskScore / bucketWidth
		if idx >= bucketCount {
			idx = bucketCount - 1
		}
		if idx < 0 {
			idx = 0
		}
		buckets[idx].Count++
	}

	return buckets
}
