// Package reservoir implements Algorithm R, producing a uniform
// without-replacement sample of M ids from [0, N) given a caller-supplied
// 64-bit seed for reproducibility.
package reservoir
