package queryengine

import (
	"testing"

	"github.com/ivfflat/ivfflat/distance"
	"github.com/ivfflat/ivfflat/internal/intlist"
	"github.com/ivfflat/ivfflat/internal/ivf"
	"github.com/ivfflat/ivfflat/internal/kmeans"
	"github.com/ivfflat/ivfflat/internal/vectorstore"
	"github.com/ivfflat/ivfflat/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeOf(t *testing.T, rows [][]float32) vectorstore.Store {
	t.Helper()
	d := len(rows[0])
	s, err := vectorstore.New(vectorstore.OffHeap, d, len(rows))
	require.NoError(t, err)
	for i, row := range rows {
		require.NoError(t, s.AddVector(model.VectorId(i), row))
	}
	return s
}

// TestSearchTinyANNSanity reproduces spec scenario S1.
func TestSearchTinyANNSanity(t *testing.T) {
	rows := [][]float32{
		{1, 1}, {1.5, 2}, {3, 4}, {5, 7}, {3.5, 5}, {4.5, 5}, {3.5, 4.5},
	}
	vectors := storeOf(t, rows)
	defer vectors.Close()

	sampleIDs := intlist.New(len(rows))
	for i := range rows {
		sampleIDs.Add(int32(i))
	}
	flatCentroids, err := kmeans.Fit(vectors, sampleIDs, 2, 100, 7)
	require.NoError(t, err)

	centroids, err := vectorstore.New(vectorstore.OffHeap, 2, 2)
	require.NoError(t, err)
	defer centroids.Close()
	require.NoError(t, centroids.AddVector(0, flatCentroids[0:2]))
	require.NoError(t, centroids.AddVector(1, flatCentroids[2:4]))

	part, err := ivf.Build(vectors, flatCentroids, 2)
	require.NoError(t, err)

	ids, err := Search(centroids, part.Postings, vectors, []float32{1.2, 1.5}, 2, 1.0)
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.ElementsMatch(t, []model.VectorId{0, 1}, ids)
	assert.Equal(t, model.VectorId(0), ids[0], "id 0 must rank first: sqDist=0.29 < sqDist_to_1=0.34")
}

// TestSearchReturnsAscendingDistances covers P3.
func TestSearchReturnsAscendingDistances(t *testing.T) {
	rows := [][]float32{
		{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}, {5, 0},
	}
	vectors := storeOf(t, rows)
	defer vectors.Close()

	centroids, err := vectorstore.New(vectorstore.OffHeap, 2, 1)
	require.NoError(t, err)
	defer centroids.Close()
	require.NoError(t, centroids.AddVector(0, []float32{0, 0}))

	postings := []*intlist.List{intlist.New(0)}
	for i := range rows {
		postings[0].Add(int32(i))
	}

	q := []float32{0, 0}
	ids, err := Search(centroids, postings, vectors, q, 4, 1.0)
	require.NoError(t, err)
	require.Len(t, ids, 4)

	var prev float32 = -1
	for _, id := range ids {
		seg, err := vectors.GetSegment(id)
		require.NoError(t, err)
		d := distance.SquaredL2(q, seg)
		assert.GreaterOrEqual(t, d, prev)
		prev = d
	}
}

// TestSearchCapsAtAvailableCandidates covers P4: topK larger than the
// probed posting lists' total size yields fewer than topK results.
func TestSearchCapsAtAvailableCandidates(t *testing.T) {
	rows := [][]float32{{0, 0}, {1, 1}}
	vectors := storeOf(t, rows)
	defer vectors.Close()

	centroids, err := vectorstore.New(vectorstore.OffHeap, 2, 1)
	require.NoError(t, err)
	defer centroids.Close()
	require.NoError(t, centroids.AddVector(0, []float32{0, 0}))

	postings := []*intlist.List{intlist.New(0)}
	postings[0].Add(0)
	postings[0].Add(1)

	ids, err := Search(centroids, postings, vectors, []float32{0, 0}, 10, 1.0)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestSearchSkipsEmptyPostingLists(t *testing.T) {
	rows := [][]float32{{0, 0}}
	vectors := storeOf(t, rows)
	defer vectors.Close()

	centroids, err := vectorstore.New(vectorstore.OffHeap, 2, 2)
	require.NoError(t, err)
	defer centroids.Close()
	require.NoError(t, centroids.AddVector(0, []float32{0, 0}))
	require.NoError(t, centroids.AddVector(1, []float32{100, 100}))

	postings := []*intlist.List{intlist.New(0), nil}
	postings[0].Add(0)

	ids, err := Search(centroids, postings, vectors, []float32{0, 0}, 5, 1.0)
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}
