package service

import (
	"context"
	"time"

	"github.com/KOFI-GYIMAH/commit-risk/internal/analytics"
	"github.com/KOFI-GYIMAH/commit-risk/internal/models"
)

// * DashboardService takes one snapshot per call and reduces it in memory.
type DashboardService struct {
	db  models.Database
	now func() time.Time
}

func NewDashboardService(db models.Database) *DashboardService {
	return &DashboardService{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *DashboardService) snapshot(ctx context.Context, scope models.Scope) (*models.Snapshot, error) {
	if scope.RepositoryID != nil {
		if _, err := s.db.GetRepository(ctx, scope.OwnerID, *scope.RepositoryID); err != nil {
			return nil, err
		}
	}
	return s.db.Snapshot(ctx, scope)
}

func (s *DashboardService) Stats(ctx context.Context, scope models.Scope) (*analytics.Stats, error) {
	snap, err := s.snapshot(ctx, scope)
	if err != nil {
		return nil, err
	}
	stats := analytics.Summarize(snap, s.now())
	return &stats, nil
}

func (s *DashboardService) RiskDistribution(ctx context.Context, scope models.Scope) (*analytics.Distribution, error) {
	snap, err := s.snapshot(ctx, scope)
	if err != nil {
		return nil, err
	}
	dist := analytics.Distribute(snap.Rows)
	return &dist, nil
}

func (s *DashboardService) RecentActivity(ctx context.Context, scope models.Scope, limit int) ([]analytics.ActivityItem, error) {
	if err := analytics.ValidateActivityLimit(limit); err != nil {
		return nil, err
	}

	snap, err := s.snapshot(ctx, scope)
	if err != nil {
		return nil, err
	}
	return analytics.RecentActivity(snap.Rows, limit), nil
}

type CommitRiskPage struct {
	Items []analytics.CommitRiskItem `json:"items"`
	Total int                        `json:"total"`
	Skip  int                        `json:"skip"`
	Limit int                        `json:"limit"`
}

func (s *DashboardService) CommitsWithRisk(ctx context.Context, scope models.Scope, q analytics.ListQuery) (*CommitRiskPage, error) {
	q, err := q.Normalize()
	if err != nil {
		return nil, err
	}

	snap, err := s.snapshot(ctx, scope)
	if err != nil {
		return nil, err
	}

	items, total := analytics.List(snap.Rows, q)
	return &CommitRiskPage{Items: items, Total: total, Skip: q.Skip, Limit: q.Limit}, nil
}
