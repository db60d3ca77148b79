// Package bench drives insert/search/delete workloads against the skiplist
// and a few ordered-map baselines.
package bench

import (
	"github.com/google/btree"
	"github.com/zhangyunhao116/skipmap"
	"golang.org/x/xerrors"

	skiplist "github.com/INLOpen/skiplist-classic"
	"github.com/INLOpen/skiplist-classic/internal/config"
)

// Target is the map surface a workload exercises.
type Target interface {
	Insert(key, value int)
	Search(key int) bool
	Delete(key int) bool
	Len() int
}

// Leveled is implemented by targets that can report how many levels they use.
type Leveled interface {
	Level() int
}

// NewTarget builds the named target sized for n items.
func NewTarget(name string, n int, cfg config.Config) (Target, error) {
	s1, s2 := cfg.Seeds()
	opts := []skiplist.Option[int, int]{
		skiplist.WithSeed[int, int](s1, s2),
		skiplist.WithMaxLevel[int, int](cfg.MaxLevel),
		skiplist.WithProbability[int, int](cfg.P),
	}
	switch name {
	case config.TargetSkipList:
		return &skipListTarget{sl: skiplist.New(opts...)}, nil
	case config.TargetSkipListArena:
		opts = append(opts, skiplist.WithArena[int, int](n), skiplist.WithArenaGrowthFactor[int, int](2.0))
		return &skipListTarget{sl: skiplist.New(opts...)}, nil
	case config.TargetBTree:
		return &btreeTarget{t: btree.NewG(32, btree.LessFunc[kv](func(a, b kv) bool {
			return a.key < b.key
		}))}, nil
	case config.TargetSkipMap:
		return &skipMapTarget{m: skipmap.NewFunc[int, int](func(a, b int) bool { return a < b })}, nil
	case config.TargetMap:
		return &mapTarget{m: make(map[int]int, n)}, nil
	default:
		return nil, xerrors.Errorf("target %q: %w", name, config.ErrUnknownTarget)
	}
}

type skipListTarget struct {
	sl *skiplist.SkipList[int, int]
}

func (t *skipListTarget) Insert(key, value int) { t.sl.Insert(key, value) }
func (t *skipListTarget) Search(key int) bool   { return t.sl.Contains(key) }
func (t *skipListTarget) Delete(key int) bool   { return t.sl.Delete(key) }
func (t *skipListTarget) Len() int              { return t.sl.Len() }
func (t *skipListTarget) Level() int            { return t.sl.Level() }

type kv struct {
	key, val int
}

type btreeTarget struct {
	t *btree.BTreeG[kv]
}

func (t *btreeTarget) Insert(key, value int) { t.t.ReplaceOrInsert(kv{key: key, val: value}) }
func (t *btreeTarget) Search(key int) bool {
	_, ok := t.t.Get(kv{key: key})
	return ok
}
func (t *btreeTarget) Delete(key int) bool {
	_, ok := t.t.Delete(kv{key: key})
	return ok
}
func (t *btreeTarget) Len() int { return t.t.Len() }

type skipMapTarget struct {
	m *skipmap.FuncMap[int, int]
}

func (t *skipMapTarget) Insert(key, value int) { t.m.Store(key, value) }
func (t *skipMapTarget) Search(key int) bool {
	_, ok := t.m.Load(key)
	return ok
}
func (t *skipMapTarget) Delete(key int) bool {
	_, ok := t.m.LoadAndDelete(key)
	return ok
}
func (t *skipMapTarget) Len() int { return t.m.Len() }

type mapTarget struct {
	m map[int]int
}

func (t *mapTarget) Insert(key, value int) { t.m[key] = value }
func (t *mapTarget) Search(key int) bool {
	_, ok := t.m[key]
	return ok
}
func (t *mapTarget) Delete(key int) bool {
	if _, ok := t.m[key]; !ok {
		return false
	}
	delete(t.m, key)
	return true
}
func (t *mapTarget) Len() int { return len(t.m) }
