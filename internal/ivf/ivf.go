package ivf

import (
	"github.com/ivfflat/ivfflat/internal/intlist"
	"github.com/ivfflat/ivfflat/internal/kmeans"
	"github.com/ivfflat/ivfflat/internal/vectorstore"
	"github.com/ivfflat/ivfflat/model"
)

// Partition holds the k posting lists produced by Build, one per centroid,
// plus the empty-cluster count used by Index.Stats.
type Partition struct {
	Postings   []*intlist.List
	EmptyCount int
}

// Build scans every vector in store, assigns it to the nearest centroid
// row of centroids (k rows of dimension d = store.D()), and appends its id
// to that centroid's posting list.
//
// Ties are broken with kmeans.NearestLastWins: on equal distance the later
// (higher-index) centroid wins, matching the source's non-strict-improvement
// loop. Every vector is assigned to exactly one posting list, so
// sum(len(postings)) == store.N() and the lists partition [0, N).
func Build(store vectorstore.Store, centroids []float32, k int) (*Partition, error) {
	d := store.D()
	n := store.N()

	postings := make([]*intlist.List, k)
	for j := range postings {
		postings[j] = intlist.New(0)
	}

	for i := 0; i < n; i++ {
		id := model.VectorId(i)
		seg, err := store.GetSegment(id)
		if err != nil {
			return nil, err
		}
		cluster := kmeans.NearestLastWins(seg, centroids, k, d)
		postings[cluster].Add(int32(i))
	}

	empty := 0
	for _, p := range postings {
		if p.Size() == 0 {
			empty++
		}
	}

	return &Partition{Postings: postings, EmptyCount: empty}, nil
}
