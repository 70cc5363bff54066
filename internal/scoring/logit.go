package scoring

import (
	"math"

	"github.com/KOFI-GYIMAH/commit-risk/internal/features"
)

const LogitVersion = "logit-v1"

// * LogitCoefficients weight the log-scaled feature vector.
type LogitCoefficients struct {
	Intercept    float64
	LinesChanged float64
	FilesChanged float64
	KeywordCount float64
	ChurnRatio   float64
	Complexity   float64
	Weekend      float64
	OffHours     float64
}

// * DefaultLogitCoefficients put an undated empty commit near p=0.06 and a 650-line, 25-file hotfix above p=0.8.
var DefaultLogitCoefficients = LogitCoefficients{
	Intercept:    -3.0,
	LinesChanged: 0.35,
	FilesChanged: 0.45,
	KeywordCount: 0.6,
	ChurnRatio:   0.1,
	Complexity:   0.05,
	Weekend:      0.4,
	OffHours:     0.3,
}

// * LogitScorer maps a logistic probability p onto score round(100p) with confidence max(p, 1-p).
type LogitScorer struct {
	version string
	coef    LogitCoefficients
}

func NewLogitScorer(coef LogitCoefficients) *LogitScorer {
	return &LogitScorer{version: LogitVersion, coef: coef}
}

func (s *LogitScorer) Version() string {
	return s.version
}

func (s *LogitScorer) Probability(v features.Vector) float64 {
	z := s.coef.Intercept +
		s.coef.LinesChanged*math.Log1p(float64(v.TotalLinesChanged)) +
		s.coef.FilesChanged*math.Log1p(float64(v.FilesChanged)) +
		s.coef.KeywordCount*float64(v.RiskyKeywordCount) +
		s.coef.ChurnRatio*math.Log1p(v.CodeChurnRatio) +
		s.coef.Complexity*v.Complexity

	if v.WeekendFlag {
		z += s.coef.Weekend
	}
	if v.HourOfDay >= 22 || v.HourOfDay < 5 {
		z += s.coef.OffHours
	}

	return 1 / (1 + math.Exp(-z))
}

func (s *LogitScorer) Score(v features.Vector) (Result, error) {
	if err := validate(v); err != nil {
		return Result{}, err
	}

	p := s.Probability(v)
	score := clamp(int(math.Round(100 * p)))

	return Result{
		Score:      score,
		Level:      levelFor(score),
		Confidence: math.Round(math.Max(p, 1-p)*10000) / 10000,
	}, nil
}
