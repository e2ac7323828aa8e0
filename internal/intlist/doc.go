// Package intlist provides a growable array of signed 32-bit integers used
// for posting lists and reservoir-sample ID sets.
//
// Growth doubles capacity on overflow (initial capacity 16 if unspecified).
// All operations are O(1) amortized. There is no deletion: callers that need
// to replace an element use Update.
package intlist
