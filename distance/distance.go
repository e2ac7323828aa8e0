// Package distance provides public API for vector distance calculations.
// The kernel itself lives in internal/math32.
package distance

import "github.com/ivfflat/ivfflat/internal/math32"

// SquaredL2 calculates the squared L2 (Euclidean) distance between two
// vectors: Σ(aᵢ−bᵢ)². Accumulates in single precision. Callers guarantee
// len(a) == len(b); behavior is undefined otherwise.
//
// Order of summation is stable between calls on identical inputs within one
// process, so repeated evaluation of the same pair yields the same tie
// behavior in the query engine's heaps.
func SquaredL2(a, b []float32) float32 {
	return math32.SquaredL2(a, b)
}
