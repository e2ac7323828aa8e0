package ivfflat

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ivfflat/ivfflat/internal/vectorstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clusteredVectors() [][]float32 {
	return [][]float32{
		{1, 1}, {1.5, 2}, {3, 4}, {5, 7}, {3.5, 5}, {4.5, 5}, {3.5, 4.5},
	}
}

func TestIndexBuildThenSearch(t *testing.T) {
	idx := New(2, WithClusters(2), WithSeed(7), WithProbeFraction(1.0))
	defer idx.Close()

	require.NoError(t, idx.Build(clusteredVectors()))

	ids, err := idx.Search([]float32{1.2, 1.5}, 2)
	require.NoError(t, err)
	require.Len(t, ids, 2)
}

func TestIndexBuildTwiceFails(t *testing.T) {
	idx := New(2, WithClusters(2), WithSeed(7))
	defer idx.Close()

	require.NoError(t, idx.Build(clusteredVectors()))
	err := idx.Build(clusteredVectors())
	assert.ErrorIs(t, err, ErrAlreadyBuilt)
}

func TestIndexSearchBeforeBuildFails(t *testing.T) {
	idx := New(2, WithClusters(2))
	_, err := idx.Search([]float32{0, 0}, 1)
	assert.ErrorIs(t, err, ErrNotBuilt)

	_, statsErr := idx.Stats()
	assert.ErrorIs(t, statsErr, ErrNotBuilt)

	assert.ErrorIs(t, idx.Write(filepath.Join(t.TempDir(), "idx")), ErrNotBuilt)
}

func TestIndexBuildRejectsDimensionMismatch(t *testing.T) {
	idx := New(2, WithClusters(1))
	err := idx.Build([][]float32{{1, 2}, {1, 2, 3}})
	var mismatch *ErrDimensionMismatch
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 2, mismatch.Expected)
	assert.Equal(t, 3, mismatch.Actual)
}

func TestIndexSearchRejectsDimensionMismatch(t *testing.T) {
	idx := New(2, WithClusters(2), WithSeed(7))
	require.NoError(t, idx.Build(clusteredVectors()))

	_, err := idx.Search([]float32{1, 2, 3}, 1)
	var mismatch *ErrDimensionMismatch
	assert.True(t, errors.As(err, &mismatch))
}

func TestIndexStatsReportsEmptyClusters(t *testing.T) {
	idx := New(2, WithClusters(4), WithSeed(7))
	require.NoError(t, idx.Build(clusteredVectors()))

	stats, err := idx.Stats()
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Clusters)
	assert.Equal(t, len(clusteredVectors()), stats.TotalVectorCount)
	assert.GreaterOrEqual(t, stats.EmptyClusters, 0)
	assert.LessOrEqual(t, stats.MaxPostingSize, len(clusteredVectors()))
}

func TestIndexWriteReadRoundTrip(t *testing.T) {
	base := filepath.Join(t.TempDir(), "idx")

	built := New(2, WithClusters(2), WithSeed(7), WithProbeFraction(1.0))
	require.NoError(t, built.Build(clusteredVectors()))
	require.NoError(t, built.Write(base))
	defer built.Close()

	loaded, err := Read(base, WithProbeFraction(1.0))
	require.NoError(t, err)
	defer loaded.Close()

	want, err := built.Search([]float32{1.2, 1.5}, 3)
	require.NoError(t, err)
	got, err := loaded.Search([]float32{1.2, 1.5}, 3)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadMissingFileReturnsError(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

// TestMapCapacityErrorWrapsOutOfRange covers spec §7's CapacityExceeded
// mapping: a store id-out-of-range error surfaces as ErrCapacityExceeded
// while still satisfying errors.Is against the underlying cause.
func TestMapCapacityErrorWrapsOutOfRange(t *testing.T) {
	store, err := vectorstore.New(vectorstore.OffHeap, 2, 1)
	require.NoError(t, err)
	defer store.Close()

	addErr := store.AddVector(5, []float32{1, 2})
	require.Error(t, addErr)

	mapped := mapCapacityError(addErr)
	assert.ErrorIs(t, mapped, ErrCapacityExceeded)
	assert.ErrorIs(t, mapped, vectorstore.ErrOutOfRange)
}

func TestMapCapacityErrorPassesThroughOtherErrors(t *testing.T) {
	other := errors.New("boom")
	assert.Same(t, other, mapCapacityError(other))
}

// TestWithLoggerNilFallsBackToNoop and TestWithMetricsCollectorNilFallsBackToNoop
// cover that passing nil disables the hook instead of leaving a nil
// receiver that panics on the first Build/Search.
func TestWithLoggerNilFallsBackToNoop(t *testing.T) {
	idx := New(2, WithClusters(1), WithLogger(nil))
	defer idx.Close()
	require.NoError(t, idx.Build([][]float32{{1, 1}, {2, 2}}))
	_, err := idx.Search([]float32{1, 1}, 1)
	require.NoError(t, err)
}

func TestWithMetricsCollectorNilFallsBackToNoop(t *testing.T) {
	idx := New(2, WithClusters(1), WithMetricsCollector(nil))
	defer idx.Close()
	require.NoError(t, idx.Build([][]float32{{1, 1}, {2, 2}}))
	_, err := idx.Search([]float32{1, 1}, 1)
	require.NoError(t, err)
}
