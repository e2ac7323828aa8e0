package queryengine

import (
	"github.com/ivfflat/ivfflat/distance"
	"github.com/ivfflat/ivfflat/internal/intlist"
	"github.com/ivfflat/ivfflat/internal/vectorstore"
	"github.com/ivfflat/ivfflat/model"
)

// Search runs the two-stage probe-then-scan query: it narrows to the
// P = max(1, floor(probeFraction*k)) nearest centroids, then ranks every
// vector in their posting lists, returning up to topK ids in ascending
// distance order.
//
// Beyond the two bounded heaps (sized P and topK), a query allocates only
// the drained result slice and the returned id slice.
func Search(
	centroids vectorstore.Store,
	postings []*intlist.List,
	vectors vectorstore.Store,
	q []float32,
	topK int,
	probeFraction float64,
) ([]model.VectorId, error) {
	k := centroids.N()
	if k == 0 || topK <= 0 {
		return nil, nil
	}

	p := int(probeFraction * float64(k))
	if p < 1 {
		p = 1
	}

	centroidHeap := newBoundedMaxHeap(p)
	for c := 0; c < k; c++ {
		seg, err := centroids.GetSegment(model.VectorId(c))
		if err != nil {
			return nil, err
		}
		centroidHeap.tryInsert(item{id: int32(c), dist: distance.SquaredL2(q, seg)})
	}

	resultHeap := newBoundedMaxHeap(topK)
	for _, probed := range centroidHeap.probed() {
		list := postings[int32(probed.Node)]
		if list == nil {
			continue
		}
		for i := 0; i < list.Size(); i++ {
			v := list.Get(i)
			seg, err := vectors.GetSegment(model.VectorId(v))
			if err != nil {
				return nil, err
			}
			resultHeap.tryInsert(item{id: v, dist: distance.SquaredL2(q, seg)})
		}
	}

	ordered := resultHeap.drainAscending()
	ids := make([]model.VectorId, len(ordered))
	for i, it := range ordered {
		ids[i] = model.VectorId(it.id)
	}
	return ids, nil
}
