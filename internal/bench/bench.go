package bench

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/Jeffail/gabs/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"github.com/INLOpen/skiplist-classic/internal/config"
	"github.com/INLOpen/skiplist-classic/internal/stats"
)

const (
	searchBatch = 256
	windowSize  = 1024
)

var ErrLostKey = xerrors.New("target lost a key")

type Result struct {
	Name      string
	Target    string
	N         int
	Insert    time.Duration
	Search    time.Duration
	Delete    time.Duration
	SearchP50 time.Duration // per-op latency of a search batch
	SearchP99 time.Duration
	Levels    int // levels in use after the insert phase, 0 if not a skiplist
}

func nsPerOp(d time.Duration, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(d.Nanoseconds()) / float64(n)
}

// Keys returns n distinct keys in an order fixed by the seeds.
func Keys(n int, seed1, seed2 uint64) []int {
	r := rand.New(rand.NewPCG(seed1, seed2))
	return r.Perm(n)
}

// RunWorkload inserts, searches and deletes w.N keys and checks the target
// agrees at every step.
func RunWorkload(ctx context.Context, cfg config.Config, w config.Workload) (Result, error) {
	res := Result{Name: w.Name, Target: w.Target, N: w.N}
	target, err := NewTarget(w.Target, w.N, cfg)
	if err != nil {
		return res, err
	}
	s1, s2 := cfg.Seeds()
	keys := Keys(w.N, s1, s2)

	start := time.Now()
	for i, k := range keys {
		target.Insert(k, i)
	}
	res.Insert = time.Since(start)
	if lv, ok := target.(Leveled); ok {
		res.Levels = lv.Level()
	}
	if target.Len() != w.N {
		return res, xerrors.Errorf("%s after insert: len %d, want %d: %w", w.Name, target.Len(), w.N, ErrLostKey)
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	window := stats.NewWindow(windowSize)
	start = time.Now()
	for i := 0; i < len(keys); i += searchBatch {
		end := min(i+searchBatch, len(keys))
		batchStart := time.Now()
		for _, k := range keys[i:end] {
			if !target.Search(k) {
				return res, xerrors.Errorf("%s search %d: %w", w.Name, k, ErrLostKey)
			}
		}
		window.Add(time.Since(batchStart) / time.Duration(end-i))
	}
	res.Search = time.Since(start)
	res.SearchP50 = window.Percentile(0.5)
	res.SearchP99 = window.Percentile(0.99)
	if err := ctx.Err(); err != nil {
		return res, err
	}

	start = time.Now()
	for _, k := range keys {
		if !target.Delete(k) {
			return res, xerrors.Errorf("%s delete %d: %w", w.Name, k, ErrLostKey)
		}
	}
	res.Delete = time.Since(start)
	if target.Len() != 0 {
		return res, xerrors.Errorf("%s after delete: len %d: %w", w.Name, target.Len(), ErrLostKey)
	}

	log.Debug().Str("workload", w.Name).Int("n", w.N).
		Float64("insert_ns_op", nsPerOp(res.Insert, w.N)).
		Float64("search_ns_op", nsPerOp(res.Search, w.N)).
		Msg("workload done")
	return res, nil
}

// Run executes cfg.Workloads, at most cfg.Parallel at a time. Each workload
// owns its own target. Results keep the order of cfg.Workloads.
func Run(ctx context.Context, cfg config.Config) ([]Result, error) {
	results := make([]Result, len(cfg.Workloads))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallel)
	for i, w := range cfg.Workloads {
		g.Go(func() error {
			res, err := RunWorkload(ctx, cfg, w)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Report renders results as a JSON document.
func Report(cfg config.Config, results []Result) (*gabs.Container, error) {
	report := gabs.New()
	if _, err := report.Set(cfg.Seed, "Seed"); err != nil {
		return nil, err
	}
	if _, err := report.Set(cfg.MaxLevel, "MaxLevel"); err != nil {
		return nil, err
	}
	if _, err := report.Set(cfg.P, "P"); err != nil {
		return nil, err
	}
	if _, err := report.Array("Results"); err != nil {
		return nil, err
	}
	for _, r := range results {
		entry := map[string]interface{}{
			"Name":             r.Name,
			"Target":           r.Target,
			"N":                r.N,
			"InsertNsPerOp":    nsPerOp(r.Insert, r.N),
			"SearchNsPerOp":    nsPerOp(r.Search, r.N),
			"DeleteNsPerOp":    nsPerOp(r.Delete, r.N),
			"SearchP50NsPerOp": r.SearchP50.Nanoseconds(),
			"SearchP99NsPerOp": r.SearchP99.Nanoseconds(),
		}
		if r.Levels > 0 {
			entry["Levels"] = r.Levels
		}
		if err := report.ArrayAppend(entry, "Results"); err != nil {
			return nil, err
		}
	}
	return report, nil
}
