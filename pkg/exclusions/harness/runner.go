package harness

import (
	"os"
	"time"

	"log/slog"

	"github.com/lunarbay/proviso/pkg/env"
	"github.com/lunarbay/proviso/pkg/exclusions"
)

const (
	INCLUDE_TAGS_KEY = "PROVISO_INCLUDE_TAGS"
	EXCLUDE_TAGS_KEY = "PROVISO_EXCLUDE_TAGS"

	BACKEND_KEY = "PROVISO_BACKEND"
	DRIVER_KEY  = "PROVISO_DRIVER"
	VERSION_KEY = "PROVISO_BACKEND_VERSION"
)

// ContextFromEnv builds the evaluation context for a suite run from the
// environment. PROVISO_BACKEND is required; PROVISO_DRIVER and
// PROVISO_BACKEND_VERSION (dotted integers) are optional.
func ContextFromEnv() *exclusions.Context {
	backend := env.Must(BACKEND_KEY)
	ctx := exclusions.NewContext(backend, os.Getenv(DRIVER_KEY))

	if v := os.Getenv(VERSION_KEY); v != "" {
		ver, err := exclusions.ParseVersion(v)
		if err != nil {
			slog.Error("invalid backend version", "key", VERSION_KEY, "value", v, "err", err)
			os.Exit(1)
		}
		ctx.OnVersion(func() exclusions.Version { return ver })
	}
	return ctx
}

// Case is a registered test: a name, the accumulated rule governing it, and
// the body.
type Case struct {
	Name string
	Rule *exclusions.Rule
	Fn   func(ctx *exclusions.Context) error
}

// Suite collects cases and runs them under a shared context with tag
// filtering. Registering the same name again merges the new rule into the
// existing one by set union, so exclusion declarations accumulate instead of
// nesting enforcement layers.
type Suite struct {
	name        string
	cases       []*Case
	index       map[string]*Case
	includeTags []string
	excludeTags []string
	enforcer    *Enforcer
}

func NewSuite(name string) *Suite {
	return &Suite{
		name:        name,
		index:       make(map[string]*Case),
		includeTags: env.List(INCLUDE_TAGS_KEY),
		excludeTags: env.List(EXCLUDE_TAGS_KEY),
		enforcer:    NewEnforcer(),
	}
}

// FilterTags overrides the env-derived include/exclude tag sets.
func (s *Suite) FilterTags(include []string, exclude []string) {
	s.includeTags = include
	s.excludeTags = exclude
}

func (s *Suite) Enforcer() *Enforcer {
	return s.enforcer
}

// Register adds a case, merging rules on repeated registration. A nil rule
// registers an empty one; a nil fn keeps the previously registered body.
func (s *Suite) Register(name string, rule *exclusions.Rule, fn func(ctx *exclusions.Context) error) {
	if rule == nil {
		rule = exclusions.Tags()
	}
	if c, ok := s.index[name]; ok {
		c.Rule = c.Rule.Add(rule)
		if fn != nil {
			c.Fn = fn
		}
		return
	}
	c := &Case{Name: name, Rule: rule, Fn: fn}
	s.cases = append(s.cases, c)
	s.index[name] = c
}

// Summary tallies one suite run.
type Summary struct {
	Outcomes []*Outcome    `json:"outcomes"`
	Passed   int           `json:"passed"`
	Skipped  int           `json:"skipped"`
	Expected int           `json:"expectedFailures"`
	Failed   int           `json:"failed"`
	Excluded int           `json:"excluded"`
	Duration time.Duration `json:"-"`
}

// Run executes every included case in registration order against ctx.
func (s *Suite) Run(ctx *exclusions.Context) *Summary {
	start := time.Now()
	sum := &Summary{}

	for _, c := range s.cases {
		if !c.Rule.IncludeInRun(s.includeTags, s.excludeTags) {
			slog.Debug("test excluded by tags", "suite", s.name, "name", c.Name, "tags", c.Rule.Tags())
			sum.Excluded++
			continue
		}

		outcome := s.enforcer.Run(ctx, c.Name, c.Rule, func() error {
			return c.Fn(ctx)
		})
		sum.Outcomes = append(sum.Outcomes, outcome)

		switch outcome.Kind {
		case OutcomePassed:
			sum.Passed++
		case OutcomeSkipped:
			sum.Skipped++
		case OutcomeExpectedFailure:
			sum.Expected++
		case OutcomeUnexpectedSuccess, OutcomeUnexpectedFailure:
			sum.Failed++
			slog.Warn("test failed", "suite", s.name, "name", c.Name, "kind", outcome.Kind, "err", outcome.Err)
		}
	}

	sum.Duration = time.Since(start)
	slog.Info("suite finished", "suite", s.name,
		"passed", sum.Passed, "skipped", sum.Skipped, "expectedFailures", sum.Expected,
		"failed", sum.Failed, "excluded", sum.Excluded)
	return sum
}
