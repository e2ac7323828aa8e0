// Command ivfflat-bench builds a synthetic clustered dataset, runs an IVF
// build, fires a batch of queries, and reports recall@K and latency
// percentiles. It plays the role of the external command-line driver
// collaborator: it is not part of the tested library surface.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/ivfflat/ivfflat"
	"github.com/ivfflat/ivfflat/util"
)

func main() {
	var (
		dim      = flag.Int("dim", 32, "vector dimensionality")
		n        = flag.Int("n", 50000, "number of base vectors")
		clusters = flag.Int("clusters", 0, "cluster count (0 = floor(sqrt(n)))")
		queries  = flag.Int("queries", 200, "number of query vectors")
		k        = flag.Int("k", 10, "neighbors requested per query")
		probe    = flag.Float64("probe", 0.05, "fraction of clusters probed per query")
		seed     = flag.Int64("seed", 1, "RNG seed for dataset generation and build")
		debug    = flag.Bool("debug", false, "enable diagnostic build logging")
	)
	flag.Parse()

	logger := ivfflat.NewTextLogger(slog.LevelInfo)
	if *debug {
		logger = ivfflat.NewTextLogger(slog.LevelDebug)
	}

	rng := util.NewRNG(*seed)
	numMeans := *clusters
	if numMeans <= 0 {
		numMeans = 1
		for numMeans*numMeans < *n {
			numMeans++
		}
	}
	means := generateMeans(rng, numMeans, *dim)
	vectors := generateClustered(rng, means, *n, *dim)

	idx := ivfflat.New(*dim,
		ivfflat.WithClusters(*clusters),
		ivfflat.WithSeed(*seed),
		ivfflat.WithProbeFraction(*probe),
		ivfflat.WithLogger(logger),
		ivfflat.WithDebug(*debug),
	)
	defer idx.Close()

	buildStart := time.Now()
	if err := idx.Build(vectors); err != nil {
		fmt.Fprintln(os.Stderr, "build failed:", err)
		os.Exit(1)
	}
	fmt.Printf("build: n=%d dim=%d took=%s\n", *n, *dim, time.Since(buildStart))

	stats, _ := idx.Stats()
	fmt.Printf("stats: clusters=%d empty=%d min=%d avg=%.1f max=%d\n",
		stats.Clusters, stats.EmptyClusters, stats.MinPostingSize, stats.AvgPostingSize, stats.MaxPostingSize)

	queryVecs := generateClustered(rng, means, *queries, *dim)
	groundTruth := make([][]int, *queries)
	for i, q := range queryVecs {
		groundTruth[i] = bruteForceTopK(vectors, q, *k)
	}

	latencies := make([]time.Duration, 0, *queries)
	var hits, total int
	for i, q := range queryVecs {
		start := time.Now()
		ids, err := idx.Search(q, *k)
		latencies = append(latencies, time.Since(start))
		if err != nil {
			fmt.Fprintln(os.Stderr, "search failed:", err)
			os.Exit(1)
		}
		got := make(map[int]bool, len(ids))
		for _, id := range ids {
			got[int(id)] = true
		}
		for _, id := range groundTruth[i] {
			total++
			if got[id] {
				hits++
			}
		}
	}

	recall := 0.0
	if total > 0 {
		recall = float64(hits) / float64(total)
	}
	fmt.Printf("recall@%d: %.4f\n", *k, recall)
	printLatencyPercentiles(latencies)
}

func generateMeans(rng *util.RNG, numMeans, dim int) [][]float32 {
	means := rng.GenerateRandomVectors(numMeans, dim)
	for _, row := range means {
		for j := range row {
			row[j] = row[j]*100 - 50
		}
	}
	return means
}

func generateClustered(rng *util.RNG, means [][]float32, n, dim int) [][]float32 {
	out := make([][]float32, n)
	for i := range out {
		mean := means[rng.Intn(len(means))]
		row := make([]float32, dim)
		for j := range row {
			row[j] = mean[j] + rng.Float32()*2 - 1
		}
		out[i] = row
	}
	return out
}

func bruteForceTopK(vectors [][]float32, q []float32, k int) []int {
	type cand struct {
		id   int
		dist float32
	}
	cands := make([]cand, len(vectors))
	for i, v := range vectors {
		var sum float32
		for d := range q {
			diff := q[d] - v[d]
			sum += diff * diff
		}
		cands[i] = cand{id: i, dist: sum}
	}
	sort.Slice(cands, func(a, b int) bool { return cands[a].dist < cands[b].dist })
	if k > len(cands) {
		k = len(cands)
	}
	out := make([]int, k)
	for i := 0; i < k; i++ {
		out[i] = cands[i].id
	}
	return out
}

func printLatencyPercentiles(latencies []time.Duration) {
	if len(latencies) == 0 {
		return
	}
	sorted := make([]time.Duration, len(latencies))
	copy(sorted, latencies)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a] < sorted[b] })
	pct := func(p float64) time.Duration {
		idx := int(p * float64(len(sorted)-1))
		return sorted[idx]
	}
	fmt.Printf("latency: p50=%s p95=%s p99=%s\n", pct(0.50), pct(0.95), pct(0.99))
}
