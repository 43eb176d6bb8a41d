package mining

import "math"

// forEachCombination calls fn with every k-combination of 0..n-1 in lexicographic
// order. The slice passed to fn is reused between calls. Iteration stops early when
// fn returns false.
func forEachCombination(n, k int, fn func(idx []int) bool) {
	if k <= 0 || k > n {
		return
	}

	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}

	for {
		if !fn(idx) {
			return
		}

		// Find the rightmost index that can still move right.
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// binomial returns C(n, k), saturating at math.MaxUint64.
func binomial(n, k int) uint64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	var result uint64 = 1
	for i := 1; i <= k; i++ {
		num := uint64(n - k + i)
		if result > math.MaxUint64/num {
			return math.MaxUint64
		}
		// result*num is divisible by i at every step.
		result = result * num / uint64(i)
	}
	return result
}
