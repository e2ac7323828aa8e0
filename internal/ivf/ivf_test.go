package ivf

import (
	"testing"

	"github.com/ivfflat/ivfflat/distance"
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

// TestBuildPartitionsExactly covers P1: the posting lists' sizes sum to N
// and every id in [0,N) appears in exactly one list.
func TestBuildPartitionsExactly(t *testing.T) {
	rows := [][]float32{
		{1, 1}, {1.5, 2}, {3, 4}, {5, 7}, {3.5, 5}, {4.5, 5}, {3.5, 4.5},
	}
	store := storeOf(t, rows)
	defer store.Close()

	centroids := []float32{1, 1, 4, 5} // k=2

	part, err := Build(store, centroids, 2)
	require.NoError(t, err)

	seen := make([]bool, len(rows))
	total := 0
	for _, p := range part.Postings {
		total += p.Size()
		for i := 0; i < p.Size(); i++ {
			id := p.Get(i)
			assert.False(t, seen[id], "id %d assigned twice", id)
			seen[id] = true
		}
	}
	assert.Equal(t, len(rows), total)
	for i, s := range seen {
		assert.True(t, s, "id %d never assigned", i)
	}
}

// TestBuildAssignsToNearestCentroidUnderLastWinsTie covers P2.
func TestBuildAssignsToNearestCentroidUnderLastWinsTie(t *testing.T) {
	rows := [][]float32{{1, 1}}
	store := storeOf(t, rows)
	defer store.Close()

	centroids := []float32{0, 0, 2, 2} // both centroids equidistant from (1,1)
	part, err := Build(store, centroids, 2)
	require.NoError(t, err)

	assert.Equal(t, 0, part.Postings[0].Size())
	assert.Equal(t, 1, part.Postings[1].Size())

	got := kmeans.NearestLastWins(rows[0], centroids, 2, 2)
	assert.Equal(t, 1, got)

	d0 := distance.SquaredL2(rows[0], centroids[0:2])
	d1 := distance.SquaredL2(rows[0], centroids[2:4])
	assert.Equal(t, d0, d1)
}

func TestBuildReportsEmptyClusters(t *testing.T) {
	rows := [][]float32{{0, 0}, {0, 0.1}}
	store := storeOf(t, rows)
	defer store.Close()

	centroids := []float32{0, 0, 100, 100}
	part, err := Build(store, centroids, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, part.EmptyCount)
}
