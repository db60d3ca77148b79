package main

import (
	"flag"
	"net/http"
	_ "net/http/pprof" // registers pprof handlers
	"runtime"
	"time"

	"github.com/rs/zerolog/log"

	skiplist "github.com/INLOpen/skiplist-classic"
	"github.com/INLOpen/skiplist-classic/internal/bench"
	"github.com/INLOpen/skiplist-classic/internal/config"
)

var (
	FLAGS_allocator string
	FLAGS_n         int
	FLAGS_addr      string
	FLAGS_seed      string
)

func main() {
	flag.StringVar(&FLAGS_allocator, "allocator", config.AllocatorPool, "node allocator: pool or arena")
	flag.IntVar(&FLAGS_n, "n", 2_000_000, "number of items to insert")
	flag.StringVar(&FLAGS_addr, "addr", "localhost:6060", "pprof listen address")
	flag.StringVar(&FLAGS_seed, "seed", "skiplist", "seed: a decimal number or any phrase")
	flag.Parse()

	config.SetupLogging()

	cfg := config.Default()
	cfg.N = FLAGS_n
	cfg.Allocator = FLAGS_allocator
	cfg.Seed = config.SeedFromPhrase(FLAGS_seed)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// เปิด pprof endpoint ใน goroutine แยก
	go func() {
		log.Info().Str("addr", FLAGS_addr).Msg("pprof server listening on /debug/pprof/")
		if err := http.ListenAndServe(FLAGS_addr, nil); err != nil {
			log.Fatal().Err(err).Msg("pprof server failed")
		}
	}()
	time.Sleep(100 * time.Millisecond)

	sl := createSkipList(cfg)
	s1, s2 := cfg.Seeds()
	keys := bench.Keys(cfg.N, s1, s2)

	log.Info().Int("n", cfg.N).Str("allocator", cfg.Allocator).Msg("starting insertion workload")
	start := time.Now()
	for i, k := range keys {
		sl.Insert(k, i)
	}
	log.Info().Dur("took", time.Since(start)).Int("len", sl.Len()).Int("levels", sl.Level()).
		Msg("insertion finished; keeping alive for profiling, Ctrl+C to exit")

	select {}
}

// createSkipList สร้าง skiplist ตาม allocator ที่เลือก
func createSkipList(cfg config.Config) *skiplist.SkipList[int, int] {
	s1, s2 := cfg.Seeds()
	opts := []skiplist.Option[int, int]{
		skiplist.WithSeed[int, int](s1, s2),
		skiplist.WithLogger[int, int](log.Logger),
	}
	if cfg.Allocator == config.AllocatorArena {
		log.Info().Int("nodes", cfg.N).Msg("using arena allocator")
		return skiplist.New(append(opts, skiplist.WithArena[int, int](cfg.N))...)
	}
	log.Info().Msg("using pool allocator")
	runtime.GC()
	return skiplist.New(opts...)
}
