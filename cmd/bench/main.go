package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"

	"github.com/INLOpen/skiplist-classic/internal/bench"
	"github.com/INLOpen/skiplist-classic/internal/config"
)

var (
	FLAGS_n        int
	FLAGS_seed     string
	FLAGS_maxLevel int
	FLAGS_p        float64
	FLAGS_parallel int
	FLAGS_config   string
	FLAGS_out      string
)

func main() {
	def := config.Default()
	flag.IntVar(&FLAGS_n, "n", def.N, "number of keys per workload")
	flag.StringVar(&FLAGS_seed, "seed", "skiplist", "seed: a decimal number or any phrase")
	flag.IntVar(&FLAGS_maxLevel, "max_level", def.MaxLevel, "skiplist height ceiling")
	flag.Float64Var(&FLAGS_p, "p", def.P, "skiplist promotion probability")
	flag.IntVar(&FLAGS_parallel, "parallel", def.Parallel, "workloads run at the same time")
	flag.StringVar(&FLAGS_config, "config", "", "JSON workload file; every target runs once when empty")
	flag.StringVar(&FLAGS_out, "out", "", "write the JSON report here instead of stdout")
	flag.Parse()

	config.SetupLogging()

	cfg := config.Default()
	cfg.N = FLAGS_n
	cfg.Seed = config.SeedFromPhrase(FLAGS_seed)
	cfg.MaxLevel = FLAGS_maxLevel
	cfg.P = FLAGS_p
	cfg.Parallel = FLAGS_parallel
	if FLAGS_config != "" {
		ws, err := config.LoadWorkloads(FLAGS_config, cfg.N)
		if err != nil {
			log.Fatal().Err(err).Str("config", FLAGS_config).Msg("load workloads failed")
		}
		cfg.Workloads = ws
	} else {
		cfg.Workloads = config.DefaultWorkloads(cfg.N)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info().Int("workloads", len(cfg.Workloads)).Uint64("seed", cfg.Seed).
		Int("max_level", cfg.MaxLevel).Float64("p", cfg.P).Msg("starting benchmark")
	results, err := bench.Run(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("benchmark failed")
	}

	report, err := bench.Report(cfg, results)
	if err != nil {
		log.Fatal().Err(err).Msg("build report failed")
	}
	out := report.StringIndent("", "  ") + "\n"
	if FLAGS_out == "" {
		os.Stdout.WriteString(out)
		return
	}
	if err := os.WriteFile(FLAGS_out, []byte(out), 0o644); err != nil {
		log.Fatal().Err(err).Str("out", FLAGS_out).Msg("write report failed")
	}
	log.Info().Str("out", FLAGS_out).Msg("report written")
}
