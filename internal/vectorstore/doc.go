// Package vectorstore provides the canonical D-dimensional vector storage
// abstraction shared by centroids, postings and raw vector data: a mapping
// VectorId -> Vector over keys {0,...,N-1} with a fixed dimension.
//
// # Variants
//
// Two interchangeable implementations share the Store interface:
//
//   - Heap-backed: one []float32 row per id. Higher per-row overhead,
//     suited to small datasets.
//   - Off-heap-backed: a single contiguous N*D*4 byte region allocated
//     through internal/mem's 64-byte-aligned allocator. Preferred for
//     large N - the contiguous layout is what lets persistence bulk-copy
//     the whole store in one zero-copy write/read (see the persistence
//     package).
//
// The choice is made once at construction via the caller's storage kind;
// the abstract contract - New, AddVector, LoadVectorInArray, GetSegment,
// GetVector, D, N - is identical for both.
//
// # Concurrency
//
// A Store is filled by a single writer during build, then frozen for
// concurrent reads. There is no internal locking: concurrent writers are
// undefined, matching the single-threaded cooperative model of the rest of
// this library.
package vectorstore
