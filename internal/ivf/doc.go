// Package ivf builds the inverted-file partition of an index: given full
// centroids and the complete vector store, it assigns every vector to its
// nearest centroid and emits one posting list per centroid.
//
// Assignment uses the "<=" (later-centroid-wins) tie rule - see
// internal/kmeans.NearestLastWins - which is deliberately different from
// the strict "<" rule used during centroid training and query-time heap
// insertion.
package ivf
