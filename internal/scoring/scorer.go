package scoring

import (
	"fmt"

	"github.com/KOFI-GYIMAH/commit-risk/internal/features"
	"github.com/KOFI-GYIMAH/commit-risk/internal/models"
	"github.com/KOFI-GYIMAH/commit-risk/pkg/errors"
)

// * Result is what every scorer returns. Score is always within [0,100].
type Result struct {
	Score      int              `json:"risk_score"`
	Level      models.RiskLevel `json:"risk_level"`
	Confidence float64          `json:"confidence"`
	Breakdown  map[string]int   `json:"score_breakdown,omitempty"`
}

// * Scorer is a versioned scoring strategy.
type Scorer interface {
	Version() string
	Score(v features.Vector) (Result, error)
}

func validate(v features.Vector) error {
	if field, bad := v.HasNegative(); bad {
		return errors.Validation(
			"INVALID_FEATURES",
			"Invalid feature vector",
			fmt.Sprintf("%s must not be negative", field),
			nil,
		)
	}
	return nil
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func levelFor(score int) models.RiskLevel {
	return models.LevelForScore(score)
}
