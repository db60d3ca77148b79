// Package config holds the settings shared by the command line tools:
// workload sizes, skiplist parameters, seeds and logging.
package config

import (
	"os"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/xerrors"
)

const (
	TargetSkipList      = "skiplist"
	TargetSkipListArena = "skiplist-arena"
	TargetBTree         = "btree"
	TargetSkipMap       = "skipmap"
	TargetMap           = "map"

	AllocatorPool  = "pool"
	AllocatorArena = "arena"

	// maxLevelLimit mirrors skiplist.MaxLevelLimit.
	maxLevelLimit = 64
)

var (
	ErrInvalidItems       = xerrors.New("number of items must be positive")
	ErrInvalidMaxLevel    = xerrors.New("max level must be between 1 and 64")
	ErrInvalidProbability = xerrors.New("probability must be in (0, 1)")
	ErrInvalidParallel    = xerrors.New("parallelism must be positive")
	ErrUnknownTarget      = xerrors.New("unknown benchmark target")
	ErrUnknownAllocator   = xerrors.New("unknown allocator")
)

// Workload is one benchmark run: N random keys inserted into, searched in
// and deleted from Target.
type Workload struct {
	Name   string
	Target string
	N      int
}

type Config struct {
	N         int
	Seed      uint64
	MaxLevel  int
	P         float64
	Parallel  int
	Allocator string
	Workloads []Workload
}

func Default() Config {
	return Config{
		N:         200_000,
		Seed:      SeedFromPhrase("skiplist"),
		MaxLevel:  16,
		P:         0.5,
		Parallel:  1,
		Allocator: AllocatorPool,
	}
}

// DefaultWorkloads runs every target once with n items.
func DefaultWorkloads(n int) []Workload {
	targets := []string{TargetSkipList, TargetSkipListArena, TargetBTree, TargetSkipMap, TargetMap}
	ws := make([]Workload, 0, len(targets))
	for _, t := range targets {
		ws = append(ws, Workload{Name: t, Target: t, N: n})
	}
	return ws
}

// Seeds returns the two PCG seeds derived from Seed.
func (c Config) Seeds() (uint64, uint64) {
	return c.Seed, c.Seed ^ 0x9e3779b97f4a7c15
}

// SeedFromPhrase turns a decimal number into itself and any other phrase
// into its xxhash, so runs can be named and reproduced.
func SeedFromPhrase(phrase string) uint64 {
	if n, err := strconv.ParseUint(phrase, 10, 64); err == nil {
		return n
	}
	return xxhash.Sum64String(phrase)
}

func validTarget(t string) bool {
	switch t {
	case TargetSkipList, TargetSkipListArena, TargetBTree, TargetSkipMap, TargetMap:
		return true
	}
	return false
}

func (c Config) Validate() error {
	if c.N <= 0 {
		return xerrors.Errorf("n=%d: %w", c.N, ErrInvalidItems)
	}
	if c.MaxLevel < 1 || c.MaxLevel > maxLevelLimit {
		return xerrors.Errorf("max_level=%d: %w", c.MaxLevel, ErrInvalidMaxLevel)
	}
	if c.P <= 0 || c.P >= 1 {
		return xerrors.Errorf("p=%v: %w", c.P, ErrInvalidProbability)
	}
	if c.Parallel <= 0 {
		return xerrors.Errorf("parallel=%d: %w", c.Parallel, ErrInvalidParallel)
	}
	if c.Allocator != AllocatorPool && c.Allocator != AllocatorArena {
		return xerrors.Errorf("allocator %q: %w", c.Allocator, ErrUnknownAllocator)
	}
	for _, w := range c.Workloads {
		if !validTarget(w.Target) {
			return xerrors.Errorf("workload %q target %q: %w", w.Name, w.Target, ErrUnknownTarget)
		}
		if w.N <= 0 {
			return xerrors.Errorf("workload %q n=%d: %w", w.Name, w.N, ErrInvalidItems)
		}
	}
	return nil
}

// LogLevelFromEnv parses LOG_LEVEL, falling back to warn.
func LogLevelFromEnv() zerolog.Level {
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		return zerolog.WarnLevel
	}
	if level, err := zerolog.ParseLevel(logLevel); err == nil {
		return level
	}
	return zerolog.WarnLevel
}

// SetupLogging sets the global level from LOG_LEVEL and switches the
// global logger to console output on stderr.
func SetupLogging() {
	zerolog.SetGlobalLevel(LogLevelFromEnv())
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
