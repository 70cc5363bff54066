package features

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/KOFI-GYIMAH/commit-risk/internal/models"
)

// * RiskyKeywords are matched case-insensitively as substrings of the commit message.
var RiskyKeywords = []string{
	"hotfix",
	"urgent",
	"revert",
	"rollback",
	"security",
	"critical",
	"breaking",
	"emergency",
	"hack",
	"workaround",
	"wip",
}

// * Vector is the scoring input derived from a single commit.
type Vector struct {
	LinesAdded        int     `json:"lines_added"`
	LinesDeleted      int     `json:"lines_deleted"`
	TotalLinesChanged int     `json:"total_lines_changed"`
	FilesChanged      int     `json:"files_changed"`
	RiskyKeywordHit   bool    `json:"risky_keyword_hit"`
	RiskyKeywordCount int     `json:"risky_keyword_count"`
	CodeChurnRatio    float64 `json:"code_churn_ratio"`
	RiskDensity       float64 `json:"risk_density"`
	MessageLength     int     `json:"message_length"`
	Complexity        float64 `json:"complexity"`
	HourOfDay         int     `json:"hour_of_day"`
	WeekendFlag       bool    `json:"weekend_flag"`
}

// * Extract never fails: missing diff stats count as zero and a missing message as "".
func Extract(c models.Commit) Vector {
	v := Vector{
		LinesAdded:    deref(c.LinesAdded),
		LinesDeleted:  deref(c.LinesDeleted),
		FilesChanged:  deref(c.FilesChanged),
		MessageLength: len(c.Message),
	}
	v.TotalLinesChanged = v.LinesAdded + v.LinesDeleted

	if c.Complexity != nil {
		v.Complexity = *c.Complexity
	}

	if c.CommittedAt != nil {
		at := c.CommittedAt.UTC()
		v.HourOfDay = at.Hour()
		v.WeekendFlag = at.Weekday() == time.Saturday || at.Weekday() == time.Sunday
	}

	msg := strings.ToLower(c.Message)
	for _, kw := range RiskyKeywords {
		if strings.Contains(msg, kw) {
			v.RiskyKeywordCount++
		}
	}
	v.RiskyKeywordHit = v.RiskyKeywordCount > 0

	v.CodeChurnRatio = round4(float64(v.LinesAdded) / float64(v.LinesDeleted+1))
	v.RiskDensity = round4(float64(v.FilesChanged) / float64(v.TotalLinesChanged+1))

	return v
}

// * HasNegative reports the first field holding a negative value, if any.
func (v Vector) HasNegative() (string, bool) {
	checks := []struct {
		name  string
		value float64
	}{
		{"lines_added", float64(v.LinesAdded)},
		{"lines_deleted", float64(v.LinesDeleted)},
		{"total_lines_changed", float64(v.TotalLinesChanged)},
		{"files_changed", float64(v.FilesChanged)},
		{"risky_keyword_count", float64(v.RiskyKeywordCount)},
		{"code_churn_ratio", v.CodeChurnRatio},
		{"risk_density", v.RiskDensity},
		{"message_length", float64(v.MessageLength)},
		{"complexity", v.Complexity},
		{"hour_of_day", float64(v.HourOfDay)},
	}

	for _, c := range checks {
		if c.value < 0 || math.IsNaN(c.value) {
			return c.name, true
		}
	}
	return "", false
}

// * JSON is the audit copy stored next to each assessment.
func (v Vector) JSON() json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func round4(f float64) float64 {
	return math.Round(f*10000) / 10000
}
