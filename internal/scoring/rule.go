package scoring

import "github.com/KOFI-GYIMAH/commit-risk/internal/features"

const (
	RuleVersion    = "rule-v1"
	ruleConfidence = 0.75
)

// * RuleScorer adds fixed points per rule; only the highest line tier counts.
type RuleScorer struct{}

func NewRuleScorer() *RuleScorer {
	return &RuleScorer{}
}

func (RuleScorer) Version() string {
	return RuleVersion
}

func (RuleScorer) Score(v features.Vector) (Result, error) {
	if err := validate(v); err != nil {
		return Result{}, err
	}

	breakdown := make(map[string]int)

	switch {
	case v.TotalLinesChanged > 500:
		breakdown["lines_changed"] = 40
	case v.TotalLinesChanged > 200:
		breakdown["lines_changed"] = 25
	}

	if v.FilesChanged > 20 {
		breakdown["files_changed"] = 30
	}

	if v.RiskyKeywordHit {
		breakdown["risky_keywords"] = 15
	}

	total := 0
	for _, points := range breakdown {
		total += points
	}
	score := clamp(total)

	return Result{
		Score:      score,
		Level:      levelFor(score),
		Confidence: ruleConfidence,
		Breakdown:  breakdown,
	}, nil
}
