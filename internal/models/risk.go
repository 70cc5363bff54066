package models

import (
	"encoding/json"
	"strings"
	"time"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// * Levels lists every risk level in reporting order.
var Levels = []RiskLevel{RiskLow, RiskMedium, RiskHigh}

// * LevelForScore buckets a 0-100 score: [0,29] LOW, [30,59] MEDIUM, [60,100] HIGH.
func LevelForScore(score int) RiskLevel {
	switch {
	case score >= 60:
		return RiskHigh
	case score >= 30:
		return RiskMedium
	default:
		return RiskLow
	}
}

// * ParseRiskLevel accepts a level name in any case.
func ParseRiskLevel(s string) (RiskLevel, bool) {
	switch RiskLevel(strings.ToUpper(strings.TrimSpace(s))) {
	case RiskLow:
		return RiskLow, true
	case RiskMedium:
		return RiskMedium, true
	case RiskHigh:
		return RiskHigh, true
	}
	return "", false
}

// * RiskAssessment is one immutable scoring result. A commit may have many.
type RiskAssessment struct {
	ID           int64           `json:"id"`
	CommitID     int64           `json:"commit_id"`
	RiskScore    int             `json:"risk_score"`
	RiskLevel    RiskLevel       `json:"risk_level"`
	Confidence   *float64        `json:"confidence"`
	ModelVersion string          `json:"model_version"`
	Features     json.RawMessage `json:"features,omitempty"`
	Breakdown    map[string]int  `json:"score_breakdown,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// * AnalysisJob is the queue message asking for a commit to be scored.
type AnalysisJob struct {
	CommitID           int64  `json:"commit_id"`
	RepositoryFullName string `json:"repository_full_name"`
	ModelVersion       string `json:"model_version,omitempty"`
}
