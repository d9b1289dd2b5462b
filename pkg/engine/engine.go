package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/UncatchableAlex/Coding-Projects/pkg/expr"
	"github.com/UncatchableAlex/Coding-Projects/pkg/preset"
	"github.com/UncatchableAlex/Coding-Projects/pkg/solver"
)

// Engine solves the puzzles of one run.
type Engine struct {
	cfg     Config
	puzzles []preset.Puzzle
	logger  *slog.Logger
	solver  *solver.Solver
}

// New creates a new engine from the given config. A nil logger discards
// all output.
func New(cfg Config, logger *slog.Logger) (*Engine, error) {
	switch cfg.Format {
	case "text", "json", "latex":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, cfg.Format)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	puzzles := make([]preset.Puzzle, 0, len(cfg.Puzzles)+len(cfg.Presets))
	for i, p := range cfg.Puzzles {
		if p.Name == "" {
			p.Name = fmt.Sprintf("puzzle-%d", i+1)
		}
		puzzles = append(puzzles, p)
	}
	for _, name := range cfg.Presets {
		p, err := preset.Get(name)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, preset.Names())
		}
		puzzles = append(puzzles, p)
	}
	if len(puzzles) == 0 {
		return nil, ErrNoPuzzles
	}
	for _, p := range puzzles {
		for _, v := range p.Numbers {
			if v < 0 {
				return nil, fmt.Errorf("puzzle %s: %w", p.Name, solver.ErrNegativeOperand)
			}
		}
	}

	return &Engine{
		cfg:     cfg,
		puzzles: puzzles,
		logger:  logger,
		solver:  solver.New(solver.WithLogger(logger)),
	}, nil
}

// Run solves every puzzle and returns the report in configuration order.
//
// Puzzles are independent and solved concurrently, at most cfg.Workers at a
// time; each search itself is single-threaded. The timeout and ctx are
// checked before a puzzle starts, a search in progress runs to completion.
func (e *Engine) Run(ctx context.Context) (Report, error) {
	start := time.Now()
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	workers := e.cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	e.logger.InfoContext(ctx, "starting run",
		"puzzles", len(e.puzzles),
		"workers", workers,
		"verify", e.cfg.Verify,
	)

	reports := make([]PuzzleReport, len(e.puzzles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range e.puzzles {
		i, p := i, p // per-iteration copies; go directive is 1.21
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("puzzle %s: %w", p.Name, err)
			}
			r, err := e.solve(gctx, p)
			if err != nil {
				return fmt.Errorf("puzzle %s: %w", p.Name, err)
			}
			reports[i] = r
			return nil
		})
	}
	err := g.Wait()

	report := Report{
		Config:  e.cfg,
		Puzzles: reports,
		Elapsed: time.Since(start),
	}
	if err != nil {
		e.logger.ErrorContext(ctx, "run failed", "error", err)
		return report, err
	}
	e.logger.InfoContext(ctx, "run finished", "elapsed", report.Elapsed)
	return report, nil
}

func (e *Engine) solve(ctx context.Context, p preset.Puzzle) (PuzzleReport, error) {
	log := e.logger.With("puzzle", p.Name)
	if len(p.Numbers) > solver.PracticalLimit {
		log.WarnContext(ctx, "large operand set, search may take a long time",
			"operands", len(p.Numbers),
			"limit", solver.PracticalLimit,
		)
	}

	start := time.Now()
	res, err := e.solver.Solve(p.Numbers, p.Target)
	if err != nil {
		return PuzzleReport{}, err
	}
	r := PuzzleReport{
		Name:       p.Name,
		Numbers:    p.Numbers,
		Target:     p.Target,
		Found:      res.Found(),
		Exact:      res.Exact,
		Expression: res.Expression,
		Value:      res.Value,
		Distance:   res.Distance,
		Stats:      res.Stats,
		Elapsed:    time.Since(start),
	}
	if res.Found() {
		r.LaTeX = res.Best.LaTeX()
		r.Operations = expr.Operations(res.Best)
	}

	if e.cfg.Verify && res.Found() {
		if err := Verify(p.Numbers, res.Expression, res.Value); err != nil {
			return r, err
		}
		r.Verified = true
	}

	log.InfoContext(ctx, "puzzle solved",
		"exact", r.Exact,
		"value", r.Value,
		"distance", r.Distance,
		"candidates", r.Stats.Candidates,
		"elapsed", r.Elapsed,
	)
	return r, nil
}

// Verify parses a rendered expression, re-evaluates it and checks that it
// states value and uses each operand of numbers at most as often as it
// occurs there.
func Verify(numbers []int64, expression string, value int64) error {
	node, stated, err := expr.Parse(expression)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVerification, err)
	}
	got, err := expr.Eval(node)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVerification, err)
	}
	if got != stated || got != value {
		return fmt.Errorf("%w: %q evaluates to %d, reported %d", ErrVerification, expression, got, value)
	}

	avail := make(map[int64]int, len(numbers))
	for _, v := range numbers {
		avail[v]++
	}
	for _, l := range expr.Leaves(node) {
		if avail[l.Val] == 0 {
			return fmt.Errorf("%w: operand %d used more often than given", ErrVerification, l.Val)
		}
		avail[l.Val]--
	}
	return nil
}
