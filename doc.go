// Package ivfflat implements an in-memory, single-threaded IVF
// (inverted-file) approximate nearest-neighbor index over squared
// Euclidean distance.
//
// # Quick start
//
//	idx := ivfflat.New(128, ivfflat.WithClusters(64))
//	if err := idx.Build(vectors); err != nil { ... }
//	ids, err := idx.Search(query, 10)
//
// # Build
//
// Build draws a sample of the input via reservoir sampling, fits cluster
// centroids with Lloyd's algorithm, and partitions every vector into the
// nearest centroid's posting list. Build may be called exactly once; a
// second call returns ErrAlreadyBuilt, and a Search before the first Build
// completes returns ErrNotBuilt.
//
// # Search
//
// Search probes the P nearest centroids, scans their posting lists, and
// returns up to K ids in ascending distance order.
//
// # Persistence
//
// Write/Read (see the persistence package) serialize a built index to two
// files, baseName+".clus" and baseName+".vec", and load it back in the
// off-heap VectorStore variant regardless of which variant built it.
//
// # Concurrency
//
// Everything here runs on the caller's goroutine; there are no internal
// threads or background work, and no operation is safe to call
// concurrently with another on the same Index.
package ivfflat
