// Package solver searches for an arithmetic expression over a small set of
// integers that evaluates to a target.
//
// The search is an exhaustive depth-first enumeration. At every level each
// pair of pool positions (i, j) with j < i is combined with +, *, - and /
// in that order; subtraction keeps the difference non-negative and division
// is tried only when it is exact. Every candidate built is compared with
// the best-so-far node, the first exact match ends the search, and
// otherwise the search recurses on the pool with the pair replaced by the
// result. The traversal order is fixed, so results are deterministic.
package solver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/UncatchableAlex/Coding-Projects/pkg/expr"
)

// PracticalLimit is the largest input the exhaustive search handles in
// reasonable time. Larger inputs are accepted.
const PracticalLimit = 7

var (
	// ErrNegativeOperand is returned when an input value is negative.
	ErrNegativeOperand = errors.New("operand must not be negative")
)

// Stats counts the work done by one search.
type Stats struct {
	Candidates   int `json:"candidates"`
	Improvements int `json:"improvements"`
	MaxDepth     int `json:"max_depth"`
}

// Result is the outcome of one search.
type Result struct {
	Target int64
	// Exact is set when Best evaluates to Target.
	Exact bool
	// Best is the exact match, or the candidate closest to Target. It is nil
	// only when the input had fewer than two operands.
	Best       *expr.Combination
	Value      int64
	Distance   int64
	Expression string
	Stats      Stats
}

// Found reports whether the search produced any expression at all.
func (r Result) Found() bool { return r.Best != nil }

// Solver runs searches. The zero value is not usable; call New.
type Solver struct {
	logger *slog.Logger
}

// Option configures a Solver.
type Option func(*Solver)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Solver) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Solver.
func New(opts ...Option) *Solver {
	s := &Solver{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Solve is shorthand for New().Solve.
func Solve(numbers []int64, target int64) (Result, error) {
	return New().Solve(numbers, target)
}

// Solve searches numbers for an expression equal to target. Each number is
// used at most once and not all numbers need be used.
//
// With fewer than two numbers there is nothing to combine and the result
// has no Best node; this is not an error.
func (s *Solver) Solve(numbers []int64, target int64) (Result, error) {
	for i, v := range numbers {
		if v < 0 {
			return Result{}, fmt.Errorf("operand %d (%d): %w", i, v, ErrNegativeOperand)
		}
	}

	ctx := context.Background()
	log := s.logger.With("operands", len(numbers), "target", target)

	st := newSearch(numbers, target)
	if log.Enabled(ctx, slog.LevelDebug) {
		st.onImprove = func(c *expr.Combination, stats Stats) {
			log.DebugContext(ctx, "closer candidate",
				"value", c.Result,
				"distance", distance(c.Result, target),
				"candidates", stats.Candidates,
			)
		}
	}
	st.run(0)

	res := Result{Target: target, Stats: st.stats}
	switch {
	case st.exact != nil:
		res.Exact = true
		res.Best = st.exact
	case st.best != nil:
		res.Best = st.best
	default:
		log.DebugContext(ctx, "nothing to combine")
		return res, nil
	}
	res.Value = res.Best.Result
	res.Distance = distance(res.Value, target)
	res.Expression = expr.Render(res.Best)

	log.DebugContext(ctx, "search finished",
		"exact", res.Exact,
		"value", res.Value,
		"distance", res.Distance,
		"candidates", res.Stats.Candidates,
		"improvements", res.Stats.Improvements,
	)
	return res, nil
}
