package ivfflat

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/ivfflat/ivfflat/internal/intlist"
	"github.com/ivfflat/ivfflat/internal/ivf"
	"github.com/ivfflat/ivfflat/internal/kmeans"
	"github.com/ivfflat/ivfflat/internal/queryengine"
	"github.com/ivfflat/ivfflat/internal/reservoir"
	"github.com/ivfflat/ivfflat/internal/vectorstore"
	"github.com/ivfflat/ivfflat/model"
	"github.com/ivfflat/ivfflat/persistence"
)

// Index is a built (or loaded) IVF index: centroids, their posting lists,
// and the full vector store, per spec.md's ClusterIndex. It is immutable
// once Build or persistence.Read populates it.
type Index struct {
	d      int
	config config

	built     bool
	centroids vectorstore.Store
	postings  []*intlist.List
	vectors   vectorstore.Store
}

// New creates an unbuilt Index over D-dimensional vectors.
func New(d int, opts ...Option) *Index {
	return &Index{
		d:      d,
		config: applyOptions(opts),
	}
}

// Build partitions vectors into clusters: it reservoir-samples a training
// subset, fits centroids with Lloyd's algorithm, and assigns every vector
// to its nearest centroid. Build may be called exactly once; a second call
// returns ErrAlreadyBuilt.
func (idx *Index) Build(vectors [][]float32) error {
	if idx.built {
		return ErrAlreadyBuilt
	}
	start := time.Now()

	n := len(vectors)
	store, err := vectorstore.New(idx.config.storageKind, idx.d, n)
	if err != nil {
		idx.recordBuild(n, start, err)
		return err
	}
	for i, v := range vectors {
		if len(v) != idx.d {
			err := newDimensionMismatch(idx.d, len(v), nil)
			idx.recordBuild(n, start, err)
			return err
		}
		if err := store.AddVector(model.VectorId(i), v); err != nil {
			err = mapCapacityError(err)
			idx.recordBuild(n, start, err)
			return err
		}
	}

	k := idx.clusters(n)
	sampleSize := int(idx.config.sampleFraction * float64(n))
	if sampleSize < k {
		sampleSize = k
	}
	if sampleSize > n {
		sampleSize = n
	}
	sampleIds := reservoir.Sample(n, sampleSize, idx.config.seed)

	flatCentroids, err := kmeans.Fit(store, sampleIds, k, idx.config.kMeansIters, idx.config.seed)
	if err != nil {
		idx.recordBuild(n, start, err)
		return err
	}

	centroids, err := vectorstore.New(idx.config.storageKind, idx.d, k)
	if err != nil {
		idx.recordBuild(n, start, err)
		return err
	}
	for c := 0; c < k; c++ {
		if err := centroids.AddVector(model.VectorId(c), flatCentroids[c*idx.d:(c+1)*idx.d]); err != nil {
			err = mapCapacityError(err)
			idx.recordBuild(n, start, err)
			return err
		}
	}

	partition, err := ivf.Build(store, flatCentroids, k)
	if err != nil {
		idx.recordBuild(n, start, err)
		return err
	}

	if idx.config.debug {
		idx.logDebugCentroidMatrix(flatCentroids, k)
	}

	idx.centroids = centroids
	idx.postings = partition.Postings
	idx.vectors = store
	idx.built = true

	idx.config.logger.LogBuild(context.Background(), k, n, sampleIds.Size(), partition.EmptyCount, nil)
	idx.recordBuild(n, start, nil)
	return nil
}

// clusters resolves the configured cluster count, defaulting to
// floor(sqrt(n)) clamped to at least 1.
func (idx *Index) clusters(n int) int {
	if idx.config.clusters > 0 {
		return idx.config.clusters
	}
	k := int(math.Sqrt(float64(n)))
	if k < 1 {
		k = 1
	}
	return k
}

func (idx *Index) recordBuild(n int, start time.Time, err error) {
	idx.config.metricsCollector.RecordBuild(n, time.Since(start), err)
	if err != nil {
		idx.config.logger.LogBuild(context.Background(), idx.config.clusters, n, 0, 0, err)
	}
}

func (idx *Index) logDebugCentroidMatrix(flatCentroids []float32, k int) {
	type pair struct {
		i, j int
		dist float32
	}
	pairs := make([]pair, 0, k*(k-1)/2)
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			d := distanceBetween(flatCentroids, idx.d, i, j)
			pairs = append(pairs, pair{i, j, d})
		}
	}
	sort.Slice(pairs, func(a, b int) bool { return pairs[a].dist < pairs[b].dist })
	idx.config.logger.Debug("centroid distance matrix", "pairs", len(pairs))
	for _, p := range pairs {
		idx.config.logger.Debug("centroid pair", "i", p.i, "j", p.j, "sq_dist", p.dist)
	}
}

// Search probes the nearest P = max(1, floor(probeFraction*k)) centroids
// and scans their posting lists, returning up to K ids in ascending
// distance order. Returns ErrNotBuilt if called before Build.
func (idx *Index) Search(q []float32, k int) ([]model.VectorId, error) {
	if !idx.built {
		return nil, ErrNotBuilt
	}
	if len(q) != idx.d {
		err := newDimensionMismatch(idx.d, len(q), nil)
		idx.config.metricsCollector.RecordSearch(k, 0, err)
		return nil, err
	}

	start := time.Now()
	ids, err := queryengine.Search(idx.centroids, idx.postings, idx.vectors, q, k, idx.config.probeFraction)
	idx.config.metricsCollector.RecordSearch(k, time.Since(start), err)
	idx.config.logger.LogSearch(context.Background(), k, len(ids), err)
	return ids, err
}

// Write persists the index to baseName+".clus" and baseName+".vec".
// Returns ErrNotBuilt if called before Build.
func (idx *Index) Write(baseName string) error {
	if !idx.built {
		return ErrNotBuilt
	}
	err := persistence.Write(baseName, idx.centroids, idx.postings, idx.vectors)
	idx.config.logger.LogPersist(context.Background(), baseName, err)
	return err
}

// Read loads an index previously persisted with Write. The loaded Index's
// VectorStore variants are always off-heap, regardless of which variant
// built the original.
func Read(baseName string, opts ...Option) (*Index, error) {
	centroids, postings, vectors, err := persistence.Read(baseName)
	cfg := applyOptions(opts)
	if err != nil {
		cfg.logger.LogLoad(context.Background(), baseName, 0, err)
		return nil, err
	}
	idx := &Index{
		d:         centroids.D(),
		config:    cfg,
		built:     true,
		centroids: centroids,
		postings:  postings,
		vectors:   vectors,
	}
	idx.config.logger.LogLoad(context.Background(), baseName, vectors.N(), nil)
	return idx, nil
}

// Stats is a snapshot of an Index's cluster geometry.
type Stats struct {
	Clusters         int
	EmptyClusters    int
	MinPostingSize   int
	AvgPostingSize   float64
	MaxPostingSize   int
	TotalVectorCount int
}

// Stats reports cluster count, empty-cluster count, min/avg/max posting
// list size, and total vector count. Returns ErrNotBuilt if called before
// Build.
func (idx *Index) Stats() (Stats, error) {
	if !idx.built {
		return Stats{}, ErrNotBuilt
	}
	s := Stats{
		Clusters:         len(idx.postings),
		TotalVectorCount: idx.vectors.N(),
		MinPostingSize:   -1,
	}
	total := 0
	for _, p := range idx.postings {
		size := 0
		if p != nil {
			size = p.Size()
		}
		if size == 0 {
			s.EmptyClusters++
		}
		if s.MinPostingSize == -1 || size < s.MinPostingSize {
			s.MinPostingSize = size
		}
		if size > s.MaxPostingSize {
			s.MaxPostingSize = size
		}
		total += size
	}
	if s.Clusters > 0 {
		s.AvgPostingSize = float64(total) / float64(s.Clusters)
	}
	if s.MinPostingSize == -1 {
		s.MinPostingSize = 0
	}
	return s, nil
}

// Close releases the index's backing storage. Safe to call once; a no-op
// on subsequent calls.
func (idx *Index) Close() error {
	var firstErr error
	if idx.centroids != nil {
		if err := idx.centroids.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if idx.vectors != nil {
		if err := idx.vectors.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// mapCapacityError translates the store's out-of-range id error into the
// public ErrCapacityExceeded sentinel per spec §7, preserving the
// underlying cause for errors.Is/errors.As.
func mapCapacityError(err error) error {
	if errors.Is(err, vectorstore.ErrOutOfRange) {
		return fmt.Errorf("%w: %w", ErrCapacityExceeded, err)
	}
	return err
}

func distanceBetween(flat []float32, d, i, j int) float32 {
	a := flat[i*d : (i+1)*d]
	b := flat[j*d : (j+1)*d]
	var sum float32
	for x := 0; x < d; x++ {
		diff := a[x] - b[x]
		sum += diff * diff
	}
	return sum
}
