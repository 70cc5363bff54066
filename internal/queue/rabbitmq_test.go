package queue

import (
	"context"
	"fmt"
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/KOFI-GYIMAH/commit-risk/internal/models"
	"github.com/KOFI-GYIMAH/commit-risk/pkg/errors"
)

type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) AnalyzeCommit(ctx context.Context, commitID int64, modelVersion string) (*models.RiskAssessment, error) {
	args := m.Called(ctx, commitID, modelVersion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RiskAssessment), args.Error(1)
}

func TestHandleDelivery(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		body          string
		setup         func(a *MockAnalyzer)
		wantErr       bool
		wantPermanent bool
	}{
		{
			name: "scores the commit",
			body: `{"commit_id": 10, "repository_full_name": "acme/api", "model_version": "logit-v1"}`,
			setup: func(a *MockAnalyzer) {
				a.On("AnalyzeCommit", ctx, int64(10), "logit-v1").
					Return(&models.RiskAssessment{CommitID: 10, RiskScore: 40, RiskLevel: models.RiskMedium}, nil)
			},
		},
		{
			name:          "malformed body is dropped",
			body:          `{"commit_id": "ten"`,
			wantErr:       true,
			wantPermanent: true,
		},
		{
			name: "deleted commit is dropped",
			body: `{"commit_id": 11}`,
			setup: func(a *MockAnalyzer) {
				a.On("AnalyzeCommit", ctx, int64(11), "").
					Return(nil, errors.NotFound("COMMIT_NOT_FOUND", "Commit not found", "", nil))
			},
			wantErr:       true,
			wantPermanent: true,
		},
		{
			name: "store failure is retried",
			body: `{"commit_id": 12}`,
			setup: func(a *MockAnalyzer) {
				a.On("AnalyzeCommit", ctx, int64(12), "").Return(nil, fmt.Errorf("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := new(MockAnalyzer)
			if tt.setup != nil {
				tt.setup(analyzer)
			}

			err := HandleDelivery(ctx, []byte(tt.body), analyzer)

			if !tt.wantErr {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Equal(t, tt.wantPermanent, isPermanent(err))
			}
			analyzer.AssertExpectations(t)
		})
	}
}

func TestNextSettlement(t *testing.T) {
	storeDown := errors.New("DB_COMMIT_ERROR", "Failed to get commit", "", fmt.Errorf("connection refused"), errors.LevelError)
	missing := errors.NotFound("COMMIT_NOT_FOUND", "Commit not found", "", nil)

	tests := []struct {
		name        string
		headers     amqp.Table
		err         error
		wantAction  settlement
		wantRetries int
	}{
		{name: "success is acked", err: nil, wantAction: settleAck},
		{name: "first failure is retried", err: storeDown, wantAction: settleRetry, wantRetries: 1},
		{
			name:        "retry count carries over",
			headers:     amqp.Table{RetryCountHeader: int32(2)},
			err:         storeDown,
			wantAction:  settleRetry,
			wantRetries: 3,
		},
		{
			name:        "exhausted retries are dropped",
			headers:     amqp.Table{RetryCountHeader: int32(MaxRetries)},
			err:         storeDown,
			wantAction:  settleDrop,
			wantRetries: MaxRetries,
		},
		{
			name:        "int64 header is understood",
			headers:     amqp.Table{RetryCountHeader: int64(MaxRetries)},
			err:         storeDown,
			wantAction:  settleDrop,
			wantRetries: MaxRetries,
		},
		{name: "permanent failure is dropped at once", err: missing, wantAction: settleDrop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, retries := nextSettlement(tt.headers, tt.err)
			assert.Equal(t, tt.wantAction, action)
			assert.Equal(t, tt.wantRetries, retries)
		})
	}
}

func TestNextSettlement_StopsRepeatedFailures(t *testing.T) {
	err := fmt.Errorf("connection reset")
	headers := amqp.Table{}

	deliveries := 0
	for {
		deliveries++
		action, retries := nextSettlement(headers, err)
		if action != settleRetry {
			assert.Equal(t, settleDrop, action)
			break
		}
		headers = amqp.Table{RetryCountHeader: int32(retries)}
		if deliveries > 10 {
			t.Fatal("job was never dropped")
		}
	}

	assert.Equal(t, MaxRetries+1, deliveries)
}
