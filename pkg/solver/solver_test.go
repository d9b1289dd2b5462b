package solver

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UncatchableAlex/Coding-Projects/pkg/expr"
)

// reachable enumerates every value the search rules can produce from pool.
func reachable(pool []int64, out map[int64]struct{}) {
	for i := range pool {
		for j := 0; j < i; j++ {
			for _, op := range expr.Ops {
				_, _, v, ok := expr.Apply(op, pool[i], pool[j])
				if !ok {
					continue
				}
				out[v] = struct{}{}
				next := make([]int64, 0, len(pool)-1)
				for k, x := range pool {
					if k != i && k != j {
						next = append(next, x)
					}
				}
				reachable(append(next, v), out)
			}
		}
	}
}

// checkExpression verifies that res.Expression parses, evaluates to
// res.Value and only uses operands from numbers.
func checkExpression(t *testing.T, numbers []int64, res Result) {
	t.Helper()
	node, stated, err := expr.Parse(res.Expression)
	require.NoError(t, err, res.Expression)
	v, err := expr.Eval(node)
	require.NoError(t, err, res.Expression)
	assert.Equal(t, res.Value, v)
	assert.Equal(t, res.Value, stated)

	seen := map[int]bool{}
	for _, l := range expr.Leaves(res.Best) {
		require.False(t, seen[l.Index], "operand %d used twice in %s", l.Index, res.Expression)
		seen[l.Index] = true
		assert.Equal(t, numbers[l.Index], l.Val)
	}
	assert.LessOrEqual(t, len(seen), len(numbers))
}

func TestSolve_TwoOperands(t *testing.T) {
	res, err := Solve([]int64{4, 5}, 20)
	require.NoError(t, err)
	assert.True(t, res.Exact)
	assert.Equal(t, "5 * 4 = 20", res.Expression)
	assert.Equal(t, int64(0), res.Distance)
	assert.Equal(t, 3, res.Stats.Candidates) // no division for 5 and 4
}

func TestSolve_ClosestWhenNoMatch(t *testing.T) {
	res, err := Solve([]int64{2, 3}, 100)
	require.NoError(t, err)
	assert.False(t, res.Exact)
	require.True(t, res.Found())
	assert.Equal(t, "3 * 2 = 6", res.Expression)
	assert.Equal(t, int64(6), res.Value)
	assert.Equal(t, int64(94), res.Distance)
}

func TestSolve_TiesGoToFirstFound(t *testing.T) {
	res, err := Solve([]int64{2, 2}, 3)
	require.NoError(t, err)
	require.True(t, res.Found())
	assert.Equal(t, expr.OpAdd, res.Best.Op)
	assert.Equal(t, "2 + 2 = 4", res.Expression)
}

func TestSolve_NothingToCombine(t *testing.T) {
	for _, numbers := range [][]int64{nil, {}, {7}} {
		res, err := Solve(numbers, 7)
		require.NoError(t, err)
		assert.False(t, res.Found())
		assert.False(t, res.Exact)
		assert.Empty(t, res.Expression)
		assert.Zero(t, res.Stats.Candidates)
	}
}

func TestSolve_NegativeOperand(t *testing.T) {
	_, err := Solve([]int64{3, -1}, 2)
	assert.ErrorIs(t, err, ErrNegativeOperand)
}

func TestSolve_OverflowNotOffered(t *testing.T) {
	res, err := Solve([]int64{math.MaxInt64, 2}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stats.Candidates)
	assert.Equal(t, expr.OpSub, res.Best.Op)
	assert.Equal(t, int64(math.MaxInt64-2), res.Value)
}

func TestSolve_NegativeTarget(t *testing.T) {
	res, err := Solve([]int64{3, 5}, math.MinInt64)
	require.NoError(t, err)
	assert.False(t, res.Exact)
	assert.Equal(t, int64(math.MaxInt64), res.Distance)
}

func TestSolve_SmallSet(t *testing.T) {
	numbers := []int64{1, 2, 3, 4, 5, 6}
	res, err := Solve(numbers, 20)
	require.NoError(t, err)
	require.True(t, res.Exact)
	assert.Equal(t, int64(20), res.Value)
	checkExpression(t, numbers, res)
}

func TestSolve_Duplicates(t *testing.T) {
	numbers := []int64{1000, 2, 1000, 1000, 1000}
	res, err := Solve(numbers, 2)
	require.NoError(t, err)
	require.True(t, res.Exact)
	checkExpression(t, numbers, res)
}

func TestSolve_PrimesExact(t *testing.T) {
	if testing.Short() {
		t.Skip("exhaustive search over seven operands")
	}
	numbers := []int64{37, 43, 61, 79, 119, 127, 197}
	res, err := Solve(numbers, 47000)
	require.NoError(t, err)
	require.True(t, res.Exact)
	want := "((43 + 37) - (197 - 127)) * ((79 * 61) - 119) = 47000"
	assert.Equal(t, want, res.Expression)
	assert.Equal(t, want, expr.RenderChain(res.Best))
	checkExpression(t, numbers, res)
	t.Logf("%s (%d candidates)", res.Expression, res.Stats.Candidates)
}

func TestSolve_PrimesClosest(t *testing.T) {
	if testing.Short() {
		t.Skip("exhaustive search over seven operands")
	}
	numbers := []int64{37, 43, 61, 79, 119, 127, 197}
	res, err := Solve(numbers, 470000)
	require.NoError(t, err)
	require.False(t, res.Exact)
	require.True(t, res.Found())
	want := "(((43 * 37) - (79 + 61)) * (197 + 127)) - 119 = 470005"
	assert.Equal(t, want, res.Expression)
	assert.Equal(t, want, expr.RenderChain(res.Best))
	assert.Equal(t, int64(470005), res.Value)
	assert.Equal(t, int64(5), res.Distance)
	checkExpression(t, numbers, res)
	t.Logf("%s (%d candidates)", res.Expression, res.Stats.Candidates)
}

// TestSolve_AgainstEnumeration compares the search with a plain enumeration
// of every reachable value on random small inputs.
func TestSolve_AgainstEnumeration(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 200; iter++ {
		n := rng.Intn(4) + 2
		numbers := make([]int64, n)
		for i := range numbers {
			numbers[i] = int64(rng.Intn(12) + 1)
		}
		target := int64(rng.Intn(400))

		values := map[int64]struct{}{}
		reachable(numbers, values)
		want := int64(math.MaxInt64)
		for v := range values {
			if d := distance(v, target); d < want {
				want = d
			}
		}

		res, err := Solve(numbers, target)
		require.NoError(t, err)
		require.True(t, res.Found())
		_, exists := values[target]
		assert.Equal(t, exists, res.Exact, "numbers=%v target=%d", numbers, target)
		assert.Equal(t, want, res.Distance, "numbers=%v target=%d", numbers, target)
		checkExpression(t, numbers, res)
	}
}

func TestSolve_Deterministic(t *testing.T) {
	numbers := []int64{3, 7, 11, 13, 25}
	first, err := Solve(numbers, 9999)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := Solve(numbers, 9999)
		require.NoError(t, err)
		assert.Equal(t, first.Expression, again.Expression)
		assert.Equal(t, first.Stats, again.Stats)
	}
}

func TestSolve_ImprovementsStrictlyCloser(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	res, err := New(WithLogger(logger)).Solve([]int64{3, 7, 11, 13, 25}, 9999)
	require.NoError(t, err)

	var dists []int64
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var rec struct {
			Msg      string `json:"msg"`
			Distance int64  `json:"distance"`
		}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		if rec.Msg == "closer candidate" {
			dists = append(dists, rec.Distance)
		}
	}
	require.Len(t, dists, res.Stats.Improvements)
	for i := 1; i < len(dists); i++ {
		assert.Less(t, dists[i], dists[i-1])
	}
	assert.Equal(t, res.Distance, dists[len(dists)-1])
}

func TestSolve_ConstraintConformance(t *testing.T) {
	numbers := []int64{2, 5, 9, 12, 30}
	res, err := Solve(numbers, 100000)
	require.NoError(t, err)
	require.True(t, res.Found())

	var walk func(expr.Node)
	walk = func(n expr.Node) {
		c, ok := n.(*expr.Combination)
		if !ok {
			return
		}
		l, r := c.Left.Value(), c.Right.Value()
		switch c.Op {
		case expr.OpSub:
			assert.GreaterOrEqual(t, l, r)
		case expr.OpDiv:
			require.NotZero(t, r)
			assert.Zero(t, l%r)
		}
		assert.GreaterOrEqual(t, c.Result, int64(0))
		walk(c.Left)
		walk(c.Right)
	}
	walk(res.Best)
	checkExpression(t, numbers, res)
}

func TestSolve_Lineage(t *testing.T) {
	numbers := []int64{1, 2, 3, 4, 5, 6}
	res, err := Solve(numbers, 20)
	require.NoError(t, err)
	require.True(t, res.Found())

	chain := res.Best.Chain()
	require.NotEmpty(t, chain)
	assert.Nil(t, chain[0].Ancestor)
	assert.Same(t, res.Best, chain[len(chain)-1])
	assert.LessOrEqual(t, len(chain), len(numbers)-1)
	// every operation of the tree appears on the path that built it
	assert.LessOrEqual(t, expr.Operations(res.Best), len(chain))

	rendered := expr.RenderChain(res.Best)
	assert.Equal(t, rendered, expr.RenderChain(res.Best))
	assert.Contains(t, rendered, "= 20")
}
