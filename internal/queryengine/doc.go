// Package queryengine implements the two-stage IVF search: a centroid probe
// that narrows the search to the P nearest clusters, followed by a
// posting-list scan that ranks their members.
//
// Both stages use a bounded max-heap with a strict "<" insertion rule: an
// incoming candidate only displaces the current worst kept item when it is
// strictly closer, never on an exact tie. The heap wraps internal/queue's
// PriorityQueue in max-heap mode and adds the capacity bound on top.
package queryengine
