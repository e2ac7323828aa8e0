package reservoir

import (
	"math/rand"

	"github.com/ivfflat/ivfflat/internal/intlist"
)

// Sample draws m distinct ids from [0, n) uniformly without replacement,
// seeded for reproducibility. If m >= n, the full range [0, n) is returned.
//
// Algorithm R:
//  1. if m >= n, return the full range.
//  2. initialize the reservoir R = [0, 1, ..., m-1].
//  3. for i = m, m+1, ..., n-1: draw j in [0, i] uniformly; if j < m, set R[j] = i.
//
// The returned order is not specified and must not be relied upon.
func Sample(n, m int, seed int64) *intlist.List {
	if m >= n {
		full := make([]int32, n)
		for i := range full {
			full[i] = int32(i)
		}
		return intlist.NewFromSlice(full)
	}

	rng := rand.New(rand.NewSource(seed)) // nolint gosec

	reservoir := make([]int32, m)
	for i := 0; i < m; i++ {
		reservoir[i] = int32(i)
	}

	for i := m; i < n; i++ {
		j := rng.Intn(i + 1)
		if j < m {
			reservoir[j] = int32(i)
		}
	}

	return intlist.NewFromSlice(reservoir)
}
