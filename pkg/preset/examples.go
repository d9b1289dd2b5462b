package preset

func init() {
	Register("simple", func() Puzzle {
		return Puzzle{Numbers: []int64{1, 2, 3, 4, 5, 6}, Target: 20}
	})
	Register("primes", func() Puzzle {
		return Puzzle{Numbers: []int64{37, 43, 61, 79, 119, 127, 197}, Target: 47000}
	})
	// No exact match; the closest reachable value is 470005.
	Register("primes-miss", func() Puzzle {
		return Puzzle{Numbers: []int64{37, 43, 61, 79, 119, 127, 197}, Target: 470000}
	})
	Register("duplicates", func() Puzzle {
		return Puzzle{Numbers: []int64{1000, 2, 1000, 1000, 1000}, Target: 2}
	})
	Register("wide", func() Puzzle {
		return Puzzle{Numbers: []int64{105, 67, 92, 36, 56, 28, 15}, Target: 455552}
	})
}
