package solver

import (
	"math"

	"github.com/UncatchableAlex/Coding-Projects/pkg/expr"
)

// operand is one entry of the working pool.
type operand struct {
	value int64
	step  int // index into search.steps, or -1 for an input leaf
	input int // index into the input slice when step == -1
}

// step is a candidate combination held in the depth-indexed arena. The
// arena slot for depth d is overwritten by every candidate tried at d, so
// steps[0..d] is always the path from the root to the current candidate.
type step struct {
	op          expr.Op
	left, right operand
	result      int64
}

// search is the state of one Solve call.
type search struct {
	target int64
	steps  []step
	pools  [][]operand // pools[d] is the pool searched at depth d

	best      *expr.Combination
	bestDist  int64
	exact     *expr.Combination
	stats     Stats
	onImprove func(*expr.Combination, Stats)
}

func newSearch(numbers []int64, target int64) *search {
	n := len(numbers)
	s := &search{target: target, pools: make([][]operand, n+1)}
	if n > 1 {
		s.steps = make([]step, n-1)
	}
	for d := range s.pools {
		size := n - d
		if size < 0 {
			size = 0
		}
		s.pools[d] = make([]operand, 0, size)
	}
	for i, v := range numbers {
		s.pools[0] = append(s.pools[0], operand{value: v, step: -1, input: i})
	}
	return s
}

// run searches the pool at depth d and reports whether an exact match was
// found below it.
func (s *search) run(d int) bool {
	pool := s.pools[d]
	if d+1 > s.stats.MaxDepth && len(pool) > 1 {
		s.stats.MaxDepth = d + 1
	}
	var cands [len(expr.Ops)]step
	for i := 0; i < len(pool); i++ {
		for j := 0; j < i; j++ {
			first, second := pool[i], pool[j]

			n := 0
			for _, op := range expr.Ops {
				left, _, result, ok := expr.Apply(op, first.value, second.value)
				if !ok {
					continue
				}
				l, r := first, second
				if left != first.value {
					l, r = second, first
				}
				cands[n] = step{op: op, left: l, right: r, result: result}
				n++
			}

			for k := 0; k < n; k++ {
				s.steps[d] = cands[k]
				s.consider(d)
			}
			for k := 0; k < n; k++ {
				if cands[k].result == s.target {
					s.steps[d] = cands[k]
					s.exact = s.materialize(d)
					return true
				}
			}
			for k := 0; k < n; k++ {
				s.steps[d] = cands[k]
				s.reduce(d, i, j, cands[k].result)
				if s.run(d + 1) {
					return true
				}
			}
		}
	}
	return false
}

// consider records steps[d] as the best-so-far node if it is strictly
// closer to the target than the current one.
func (s *search) consider(d int) {
	s.stats.Candidates++
	dist := distance(s.steps[d].result, s.target)
	if s.best != nil && dist >= s.bestDist {
		return
	}
	s.best = s.materialize(d)
	s.bestDist = dist
	s.stats.Improvements++
	if s.onImprove != nil {
		s.onImprove(s.best, s.stats)
	}
}

// reduce fills pools[d+1] with pools[d] minus positions i and j, followed
// by the result produced at depth d.
func (s *search) reduce(d, i, j int, result int64) {
	next := s.pools[d+1][:0]
	for k, o := range s.pools[d] {
		if k != i && k != j {
			next = append(next, o)
		}
	}
	s.pools[d+1] = append(next, operand{value: result, step: d, input: -1})
}

// materialize copies the path steps[0..d] into linked Combination nodes
// and returns the one for depth d.
func (s *search) materialize(d int) *expr.Combination {
	nodes := make([]*expr.Combination, d+1)
	var ancestor *expr.Combination
	for k := 0; k <= d; k++ {
		st := s.steps[k]
		nodes[k] = &expr.Combination{
			Op:       st.op,
			Left:     s.node(st.left, nodes),
			Right:    s.node(st.right, nodes),
			Result:   st.result,
			Ancestor: ancestor,
		}
		ancestor = nodes[k]
	}
	return nodes[d]
}

func (s *search) node(o operand, nodes []*expr.Combination) expr.Node {
	if o.step < 0 {
		return &expr.Leaf{Val: o.value, Index: o.input}
	}
	return nodes[o.step]
}

// distance returns |v - target|, saturating at math.MaxInt64.
func distance(v, target int64) int64 {
	var d uint64
	if v >= target {
		d = uint64(v) - uint64(target)
	} else {
		d = uint64(target) - uint64(v)
	}
	if d > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(d)
}
