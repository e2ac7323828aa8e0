// Package math32 provides the squared-Euclidean distance kernel used by the
// distance package. This is an internal package - external users should use
// the distance package.
package math32

import (
	"fmt"

	"golang.org/x/sys/cpu"
)

// LaneWidth reports the width (in float32 lanes) the detected CPU could in
// principle sustain for a hand-written SIMD kernel. The arithmetic in this
// package does not use one — no assembly kernel for this target shipped with
// the pack this module was grounded on — so LaneWidth is advisory only,
// reported through CapabilityString for diagnostics rather than used to pick
// an implementation.
var LaneWidth int

func init() {
	switch {
	case cpu.X86.HasAVX512F:
		LaneWidth = 16
	case cpu.X86.HasAVX2:
		LaneWidth = 8
	case cpu.ARM64.HasASIMD:
		LaneWidth = 4
	default:
		LaneWidth = 1
	}
}

// CapabilityString summarizes the detected CPU's relevant vector extensions
// as a single line of text. Nothing in this module logs it.
func CapabilityString() string {
	return fmt.Sprintf("lanes=%d avx2=%t avx512=%t asimd=%t",
		LaneWidth, cpu.X86.HasAVX2, cpu.X86.HasAVX512F, cpu.ARM64.HasASIMD)
}

// SquaredL2 calculates Σ(aᵢ−bᵢ)² for equal-length a, b. Unrolled into
// 8-wide lanes with a scalar tail so the common case has no per-element
// branch. The eight lane sums are combined pairwise before the tail is
// added, so the result can differ in the last bits from a single sequential
// loop; for the same input it is always the same.
func SquaredL2(a, b []float32) float32 {
	var acc0, acc1, acc2, acc3, acc4, acc5, acc6, acc7 float32

	n := len(a)
	i := 0
	for ; i+8 <= n; i += 8 {
		d0 := a[i] - b[i]
		d1 := a[i+1] - b[i+1]
		d2 := a[i+2] - b[i+2]
		d3 := a[i+3] - b[i+3]
		d4 := a[i+4] - b[i+4]
		d5 := a[i+5] - b[i+5]
		d6 := a[i+6] - b[i+6]
		d7 := a[i+7] - b[i+7]

		acc0 += d0 * d0
		acc1 += d1 * d1
		acc2 += d2 * d2
		acc3 += d3 * d3
		acc4 += d4 * d4
		acc5 += d5 * d5
		acc6 += d6 * d6
		acc7 += d7 * d7
	}

	sum := (acc0 + acc1) + (acc2 + acc3) + (acc4 + acc5) + (acc6 + acc7)

	for ; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}

	return sum
}
