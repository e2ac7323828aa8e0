// Package kmeans trains cluster centroids over a sample of vectors using
// Lloyd's algorithm, and exposes the two nearest-centroid tie policies used
// elsewhere in the build pipeline.
//
// Two distinct tie rules appear by design and must not be normalized to one
// another: Fit's internal assignment sweep uses strict "<" (earlier centroid
// wins an exact tie, matching bounded max-heap insertion elsewhere in this
// library), while the IVF builder's full-dataset assignment sweep uses "<="
// (later centroid wins).
package kmeans
