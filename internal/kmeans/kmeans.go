package kmeans

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/ivfflat/ivfflat/distance"
	"github.com/ivfflat/ivfflat/internal/intlist"
	"github.com/ivfflat/ivfflat/internal/vectorstore"
	"github.com/ivfflat/ivfflat/model"
)

// Fit trains k centroids over the vectors named by sampleIds, read from
// vectors, using Lloyd's algorithm seeded for determinism. It returns the
// flattened centroid matrix (k * vectors.D()).
//
// Init picks k distinct positions uniformly at random from sampleIds and
// copies those rows as the starting centroids. The assignment step uses a
// strict "<" tie rule (the first centroid encountered at the minimum
// distance wins; later equal-distance centroids do not displace it) -
// distinct from the IVF builder's full-dataset sweep, which uses "<=" (see
// NearestLastWins). A cluster that receives no points in the update step is
// left at the all-zero vector rather than reseeded; callers tolerate
// occasional zero centroids.
func Fit(vectors vectorstore.Store, sampleIds *intlist.List, k, maxIter int, seed int64) ([]float32, error) {
	d := vectors.D()
	m := sampleIds.Size()
	if m < k {
		return nil, fmt.Errorf("kmeans: sample size %d smaller than k %d", m, k)
	}
	if maxIter <= 0 {
		maxIter = 300
	}

	centroids := make([]float32, k*d)

	rng := rand.New(rand.NewSource(seed)) // nolint gosec
	perm := rng.Perm(m)
	for j := 0; j < k; j++ {
		id := model.VectorId(sampleIds.Get(perm[j]))
		seg, err := vectors.GetSegment(id)
		if err != nil {
			return nil, err
		}
		copy(centroids[j*d:(j+1)*d], seg)
	}

	labels := make([]int, m)
	for i := range labels {
		labels[i] = -1
	}

	newLabels := make([]int, m)
	sums := make([]float32, k*d)
	counts := make([]int, k)

	for iter := 0; iter < maxIter; iter++ {
		for i := 0; i < m; i++ {
			id := model.VectorId(sampleIds.Get(i))
			seg, err := vectors.GetSegment(id)
			if err != nil {
				return nil, err
			}
			newLabels[i] = NearestFirstWins(seg, centroids, k, d)
		}

		if labelsEqual(newLabels, labels) {
			break
		}
		copy(labels, newLabels)

		for i := range sums {
			sums[i] = 0
		}
		for j := range counts {
			counts[j] = 0
		}

		for i := 0; i < m; i++ {
			id := model.VectorId(sampleIds.Get(i))
			seg, err := vectors.GetSegment(id)
			if err != nil {
				return nil, err
			}
			c := labels[i]
			for dd := 0; dd < d; dd++ {
				sums[c*d+dd] += seg[dd]
			}
			counts[c]++
		}

		for j := 0; j < k; j++ {
			if counts[j] > 0 {
				scale := 1.0 / float32(counts[j])
				for dd := 0; dd < d; dd++ {
					centroids[j*d+dd] = sums[j*d+dd] * scale
				}
			} else {
				for dd := 0; dd < d; dd++ {
					centroids[j*d+dd] = 0
				}
			}
		}
	}

	return centroids, nil
}

func labelsEqual(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// NearestFirstWins returns argmin_j sqDist(vec, C[j]) scanning centroids in
// index order with a strict "<" improvement rule: an exact tie does not
// displace the earlier (lower-index) candidate.
func NearestFirstWins(vec []float32, centroids []float32, k, d int) int {
	best := -1
	bestDist := float32(math.MaxFloat32)
	for j := 0; j < k; j++ {
		c := centroids[j*d : (j+1)*d]
		dist := distance.SquaredL2(vec, c)
		if best == -1 || dist < bestDist {
			bestDist = dist
			best = j
		}
	}
	return best
}

// NearestLastWins returns argmin_j sqDist(vec, C[j]) scanning centroids in
// index order with a "<=" improvement rule: an exact tie displaces the
// earlier candidate, so the later (higher-index) centroid wins. This is the
// tie policy the IVF builder's full-dataset assignment sweep uses.
func NearestLastWins(vec []float32, centroids []float32, k, d int) int {
	best := -1
	bestDist := float32(math.MaxFloat32)
	for j := 0; j < k; j++ {
		c := centroids[j*d : (j+1)*d]
		dist := distance.SquaredL2(vec, c)
		if best == -1 || dist <= bestDist {
			bestDist = dist
			best = j
		}
	}
	return best
}
