// Package distance provides the squared Euclidean distance kernel used to
// rank vectors during clustering and search.
//
// This is the only metric the core supports: dot-product, cosine and
// quantized (PQ/SQ) variants are out of scope for this index.
//
// # Usage
//
//	d := distance.SquaredL2(a, b)
package distance
