package scoring

import (
	"fmt"
	"sort"

	"github.com/KOFI-GYIMAH/commit-risk/pkg/errors"
)

// * Registry dispatches scoring by model version. Callers never branch on versions themselves.
type Registry struct {
	scorers        map[string]Scorer
	defaultVersion string
}

func NewRegistry(defaultVersion string, scorers ...Scorer) (*Registry, error) {
	r := &Registry{
		scorers:        make(map[string]Scorer, len(scorers)),
		defaultVersion: defaultVersion,
	}

	for _, s := range scorers {
		if _, dup := r.scorers[s.Version()]; dup {
			return nil, fmt.Errorf("scorer %q registered twice", s.Version())
		}
		r.scorers[s.Version()] = s
	}

	if _, ok := r.scorers[defaultVersion]; !ok {
		return nil, fmt.Errorf("default model version %q is not registered", defaultVersion)
	}

	return r, nil
}

// * NewDefaultRegistry registers every built-in scorer.
func NewDefaultRegistry(defaultVersion string) (*Registry, error) {
	return NewRegistry(defaultVersion, NewRuleScorer(), NewLogitScorer(DefaultLogitCoefficients))
}

// * Get returns the scorer for version; an empty version selects the default.
func (r *Registry) Get(version string) (Scorer, error) {
	if version == "" {
		version = r.defaultVersion
	}

	s, ok := r.scorers[version]
	if !ok {
		return nil, errors.Validation(
			"UNKNOWN_MODEL_VERSION",
			"Unknown model version",
			fmt.Sprintf("model version '%s' is not registered", version),
			nil,
		)
	}
	return s, nil
}

func (r *Registry) Default() string {
	return r.defaultVersion
}

func (r *Registry) Versions() []string {
	versions := make([]string, 0, len(r.scorers))
	for v := range r.scorers {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions
}
