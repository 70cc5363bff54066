package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KOFI-GYIMAH/commit-risk/internal/models"
	"github.com/KOFI-GYIMAH/commit-risk/pkg/errors"
)

var now = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func intPtr(i int) *int { return &i }

func row(id int64, msg string, score int, assessedAgo time.Duration) models.CommitRisk {
	confidence := 0.75
	return models.CommitRisk{
		Commit: models.Commit{
			ID:           id,
			RepositoryID: 1,
			SHA:          fmt.Sprintf("sha%03d", id),
			Message:      msg,
			LinesAdded:   intPtr(int(id) * 10),
			FilesChanged: intPtr(int(id % 3)),
			IngestedAt:   now.Add(-time.Duration(id) * time.Hour),
		},
		RepositoryFullName: "acme/api",
		Assessment: &models.RiskAssessment{
			ID:           id * 100,
			CommitID:     id,
			RiskScore:    score,
			RiskLevel:    models.LevelForScore(score),
			Confidence:   &confidence,
			ModelVersion: "rule-v1",
			CreatedAt:    now.Add(-assessedAgo),
		},
	}
}

func unassessed(id int64, msg string) models.CommitRisk {
	r := row(id, msg, 0, 0)
	r.Assessment = nil
	return r
}

func fixture() []models.CommitRisk {
	return []models.CommitRisk{
		row(1, "hotfix: auth bypass", 85, time.Hour),
		row(2, "feat: add cache", 25, 2*time.Hour),
		row(3, "refactor parser", 40, 30*time.Hour),
		row(4, "docs: typo fix", 0, 3*time.Hour),
		row(5, "revert release", 100, 48*time.Hour),
		unassessed(6, "chore: bump deps"),
	}
}

func TestSummarize(t *testing.T) {
	snap := &models.Snapshot{TotalRepositories: 1, TotalCommits: 6, TotalAssessments: 9, Rows: fixture()}

	stats := Summarize(snap, now)

	assert.Equal(t, 1, stats.TotalRepositories)
	assert.Equal(t, 6, stats.TotalCommits)
	assert.Equal(t, 9, stats.TotalAssessments)
	assert.Equal(t, map[models.RiskLevel]int{models.RiskLow: 2, models.RiskMedium: 1, models.RiskHigh: 2}, stats.RiskCounts)
	assert.Equal(t, 2, stats.HighRiskCount)
	require.NotNil(t, stats.AvgRiskScore)
	assert.Equal(t, 50.0, *stats.AvgRiskScore)
	assert.Equal(t, 6, stats.RecentCommits24h)
	assert.Equal(t, 1, stats.RecentHighRisk24h)
}

func TestSummarize_Empty(t *testing.T) {
	stats := Summarize(&models.Snapshot{}, now)

	assert.Nil(t, stats.AvgRiskScore)
	assert.Equal(t, 0, stats.RiskCounts[models.RiskHigh])
	assert.Len(t, stats.RiskCounts, 3)
}

func TestDistribute(t *testing.T) {
	d := Distribute(fixture())

	assert.Equal(t, 5, d.Total)
	require.Len(t, d.Distribution, 3)
	assert.Equal(t, models.RiskLow, d.Distribution[0].Level)
	assert.Equal(t, models.RiskMedium, d.Distribution[1].Level)
	assert.Equal(t, models.RiskHigh, d.Distribution[2].Level)

	sumCount, sumPct := 0, 0.0
	for _, share := range d.Distribution {
		sumCount += share.Count
		sumPct += share.Percentage
	}
	assert.Equal(t, d.Total, sumCount)
	assert.InDelta(t, 100, sumPct, 1)
	assert.Equal(t, 40.0, d.Distribution[0].Percentage)
}

func TestDistribute_PercentagesWithinTolerance(t *testing.T) {
	rows := []models.CommitRisk{row(1, "", 10, 0), row(2, "", 40, 0), row(3, "", 70, 0)}

	d := Distribute(rows)
	sum := 0.0
	for _, share := range d.Distribution {
		assert.Equal(t, 33.3, share.Percentage)
		sum += share.Percentage
	}
	assert.InDelta(t, 100, sum, 1)
}

func TestDistribute_Empty(t *testing.T) {
	d := Distribute([]models.CommitRisk{unassessed(1, "wip")})

	assert.Equal(t, 0, d.Total)
	assert.NotNil(t, d.Distribution)
	assert.Empty(t, d.Distribution)
	assert.Len(t, d.ScoreHistogram, 10)
	for _, b := range d.ScoreHistogram {
		assert.Zero(t, b.Count)
	}
}

func TestHistogram(t *testing.T) {
	buckets := Histogram(fixture())

	require.Len(t, buckets, 10)
	assert.Equal(t, "0-10", buckets[0].Range)
	assert.Equal(t, "90-100", buckets[9].Range)

	assert.Equal(t, 1, buckets[0].Count)
	assert.Equal(t, 1, buckets[2].Count)
	assert.Equal(t, 1, buckets[4].Count)
	assert.Equal(t, 1, buckets[8].Count)
	assert.Equal(t, 1, buckets[9].Count, "100 lands in the last bucket")
}

func TestRecentActivity(t *testing.T) {
	rows := append(fixture(), row(7, "tie", 10, time.Hour))

	items := RecentActivity(rows, 3)

	require.Len(t, items, 3)
	assert.Equal(t, "sha001", items[0].SHA)
	assert.Equal(t, "sha007", items[1].SHA, "equal timestamps break on commit id")
	assert.Equal(t, "sha002", items[2].SHA)
	assert.Equal(t, "acme/api", items[0].RepositoryFullName)

	assert.Len(t, RecentActivity(rows, 50), 6)
}

func TestValidateActivityLimit(t *testing.T) {
	assert.NoError(t, ValidateActivityLimit(10))
	assert.True(t, errors.IsKind(ValidateActivityLimit(0), errors.KindValidation))
	assert.True(t, errors.IsKind(ValidateActivityLimit(51), errors.KindValidation))
}

func TestListQuery_Normalize(t *testing.T) {
	q, err := ListQuery{SortBy: "bogus", SortOrder: "ASC", RiskLevel: "high"}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, SortCreatedAt, q.SortBy)
	assert.Equal(t, "asc", q.SortOrder)
	assert.Equal(t, DefaultListLimit, q.Limit)
	assert.Equal(t, "HIGH", q.RiskLevel)

	tests := []ListQuery{
		{Skip: -1},
		{Limit: 201},
		{Limit: -5},
		{RiskLevel: "severe"},
	}
	for _, tt := range tests {
		_, err := tt.Normalize()
		assert.True(t, errors.IsKind(err, errors.KindValidation), "%+v", tt)
	}
}

func TestList_SearchMatchesRegardlessOfSort(t *testing.T) {
	for _, sortBy := range []string{SortCreatedAt, SortRiskScore, SortFilesChanged, SortLinesAdded} {
		for _, order := range []string{"asc", "desc"} {
			q, err := ListQuery{Search: "AUTH", SortBy: sortBy, SortOrder: order}.Normalize()
			require.NoError(t, err)

			items, total := List(fixture(), q)
			assert.Equal(t, 1, total)
			require.Len(t, items, 1)
			assert.Equal(t, "hotfix: auth bypass", items[0].Message)
		}
	}
}

func TestList_SearchMatchesSHA(t *testing.T) {
	q, _ := ListQuery{Search: "SHA004"}.Normalize()
	items, total := List(fixture(), q)

	assert.Equal(t, 1, total)
	assert.Equal(t, int64(4), items[0].ID)
}

func TestList_RiskLevelFilterSkipsUnassessed(t *testing.T) {
	q, _ := ListQuery{RiskLevel: "LOW"}.Normalize()
	items, total := List(fixture(), q)

	assert.Equal(t, 2, total)
	for _, item := range items {
		require.NotNil(t, item.RiskLevel)
		assert.Equal(t, models.RiskLow, *item.RiskLevel)
	}
}

func TestList_UnassessedSortLast(t *testing.T) {
	q, _ := ListQuery{SortBy: SortRiskScore, SortOrder: "desc"}.Normalize()
	items, total := List(fixture(), q)

	assert.Equal(t, 6, total)
	last := items[len(items)-1]
	assert.Equal(t, int64(6), last.ID)
	assert.Nil(t, last.RiskScore)
	assert.Nil(t, last.RiskLevel)
	assert.Equal(t, 100, *items[0].RiskScore)
}

func TestList_PaginationCoversFilteredSet(t *testing.T) {
	rows := fixture()
	for i := int64(10); i < 40; i++ {
		rows = append(rows, row(i, "feat", int(i%5)*10, time.Duration(i%4)*time.Hour))
	}

	for _, sortBy := range []string{SortCreatedAt, SortRiskScore, SortFilesChanged, SortLinesAdded} {
		for _, pageSize := range []int{1, 4, 7} {
			seen := map[int64]bool{}
			count, total := 0, -1

			for skip := 0; ; skip += pageSize {
				q, err := ListQuery{SortBy: sortBy, Skip: skip, Limit: pageSize}.Normalize()
				require.NoError(t, err)

				items, tot := List(rows, q)
				total = tot
				if len(items) == 0 {
					break
				}
				for _, item := range items {
					assert.False(t, seen[item.ID], "commit %d appeared twice", item.ID)
					seen[item.ID] = true
				}
				count += len(items)
			}

			assert.Equal(t, total, count, "sort=%s size=%d", sortBy, pageSize)
		}
	}
}
