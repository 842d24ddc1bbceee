package evaluator

// Combinations returns every k-sized subset of items, preserving the relative
// order of elements inside each subset. k == 0 yields a single empty subset,
// k outside [0, len(items)] yields none.
func Combinations[T any](items []T, k int) [][]T {
	if k < 0 || k > len(items) {
		return nil
	}
	if k == 0 {
		return [][]T{{}}
	}

	last := items[len(items)-1]
	rest := items[:len(items)-1]

	out := Combinations(rest, k)
	for _, c := range Combinations(rest, k-1) {
		subset := make([]T, 0, k)
		subset = append(subset, c...)
		out = append(out, append(subset, last))
	}
	return out
}

// Binomial returns n choose k.
func Binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := 1
	for i := 1; i <= k; i++ {
		result = result * (n - k + i) / i
	}
	return result
}
