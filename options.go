package skiplist

import (
	"math/rand/v2"

	"github.com/rs/zerolog"
)

// Option is a function that configures a SkipList.
// Option คือฟังก์ชันสำหรับกำหนดค่าของ SkipList
//
// Out-of-range values are ignored and the default is kept.
type Option[K any, V any] func(*SkipList[K, V])

// WithMaxLevel sets the height ceiling for nodes, between 1 and MaxLevelLimit.
// WithMaxLevel กำหนดจำนวนชั้นสูงสุดที่โหนดหนึ่งจะมีได้
func WithMaxLevel[K any, V any](maxLevel int) Option[K, V] {
	return func(sl *SkipList[K, V]) {
		if maxLevel >= 1 && maxLevel <= MaxLevelLimit {
			sl.maxLevel = maxLevel
		}
	}
}

// WithProbability sets the chance that a new node is promoted one more
// level. It must lie strictly between 0 and 1.
func WithProbability[K any, V any](p float64) Option[K, V] {
	return func(sl *SkipList[K, V]) {
		if p > 0.0 && p < 1.0 {
			sl.p = p
		}
	}
}

// WithSource makes the skiplist draw node heights from src.
// Tests use it to make heights reproducible.
// WithSource กำหนดแหล่งเลขสุ่มที่ใช้กำหนดความสูงของโหนด
func WithSource[K any, V any](src rand.Source) Option[K, V] {
	return func(sl *SkipList[K, V]) {
		if src != nil {
			sl.rand = rand.New(src)
		}
	}
}

// WithSeed seeds a PCG source for node heights.
func WithSeed[K any, V any](seed1, seed2 uint64) Option[K, V] {
	return WithSource[K, V](rand.NewPCG(seed1, seed2))
}

// WithLogger attaches a logger. The skiplist only logs at debug level,
// when the number of levels in use changes and on Clear.
func WithLogger[K any, V any](logger zerolog.Logger) Option[K, V] {
	return func(sl *SkipList[K, V]) {
		sl.logger = logger
	}
}

// WithArena makes the skiplist allocate nodes from an arena that starts
// with room for the given number of nodes and grows when full.
// WithArena กำหนดให้ SkipList ใช้ arena ในการจัดสรรโหนด
func WithArena[K any, V any](nodes int) Option[K, V] {
	return func(sl *SkipList[K, V]) {
		if nodes > 0 {
			sl.arena.initialNodes = nodes
		}
	}
}

// WithArenaGrowthFactor makes each new arena chunk factor times larger than
// the previous one. Only effective together with WithArena.
func WithArenaGrowthFactor[K any, V any](factor float64) Option[K, V] {
	return func(sl *SkipList[K, V]) {
		if factor > 1.0 {
			sl.arena.growthFactor = factor
		}
	}
}

// WithArenaGrowthNodes makes the arena grow by a fixed number of nodes.
// It takes precedence over WithArenaGrowthFactor. Only effective together
// with WithArena.
func WithArenaGrowthNodes[K any, V any](nodes int) Option[K, V] {
	return func(sl *SkipList[K, V]) {
		if nodes > 0 {
			sl.arena.growthNodes = nodes
		}
	}
}

// WithArenaGrowthThreshold makes the arena allocate its next chunk as soon
// as the last chunk is more than threshold full (e.g. 0.9).
// Only effective together with WithArena.
func WithArenaGrowthThreshold[K any, V any](threshold float64) Option[K, V] {
	return func(sl *SkipList[K, V]) {
		if threshold > 0.0 && threshold < 1.0 {
			sl.arena.growthThreshold = threshold
		}
	}
}
