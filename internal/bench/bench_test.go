package bench

import (
	"context"
	"testing"

	"github.com/Jeffail/gabs/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/INLOpen/skiplist-classic/internal/config"
)

func testConfig(n int) config.Config {
	cfg := config.Default()
	cfg.N = n
	cfg.Seed = 1234
	cfg.Parallel = 2
	cfg.Workloads = config.DefaultWorkloads(n)
	return cfg
}

func TestKeys_Deterministic(t *testing.T) {
	a := Keys(100, 1, 2)
	b := Keys(100, 1, 2)
	assert.Equal(t, a, b)

	seen := make(map[int]bool)
	for _, k := range a {
		assert.False(t, seen[k], "duplicate key %d", k)
		seen[k] = true
	}
	assert.Len(t, seen, 100)
}

func TestNewTarget(t *testing.T) {
	cfg := testConfig(10)
	for _, name := range []string{
		config.TargetSkipList, config.TargetSkipListArena,
		config.TargetBTree, config.TargetSkipMap, config.TargetMap,
	} {
		t.Run(name, func(t *testing.T) {
			target, err := NewTarget(name, 10, cfg)
			require.NoError(t, err)
			target.Insert(5, 50)
			target.Insert(5, 51)
			target.Insert(3, 30)
			assert.Equal(t, 2, target.Len())
			assert.True(t, target.Search(5))
			assert.False(t, target.Search(4))
			assert.True(t, target.Delete(5))
			assert.False(t, target.Delete(5))
			assert.Equal(t, 1, target.Len())
		})
	}

	_, err := NewTarget("avl", 10, cfg)
	assert.ErrorIs(t, err, config.ErrUnknownTarget)
}

func TestRun(t *testing.T) {
	cfg := testConfig(2000)
	results, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, results, len(cfg.Workloads))

	for i, r := range results {
		assert.Equal(t, cfg.Workloads[i].Name, r.Name)
		assert.Equal(t, 2000, r.N)
		switch r.Target {
		case config.TargetSkipList, config.TargetSkipListArena:
			assert.GreaterOrEqual(t, r.Levels, 1)
			assert.LessOrEqual(t, r.Levels, cfg.MaxLevel)
		default:
			assert.Zero(t, r.Levels)
		}
	}
}

func TestRun_Cancelled(t *testing.T) {
	cfg := testConfig(100)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, cfg)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReport(t *testing.T) {
	cfg := testConfig(500)
	results, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	report, err := Report(cfg, results)
	require.NoError(t, err)

	parsed, err := gabs.ParseJSON(report.Bytes())
	require.NoError(t, err)
	entries := parsed.S("Results").Children()
	require.Len(t, entries, len(results))
	assert.Equal(t, "skiplist", entries[0].S("Name").Data())
	assert.Equal(t, float64(500), entries[0].S("N").Data())
	assert.True(t, entries[0].Exists("Levels"))
	assert.False(t, entries[2].Exists("Levels"))
	assert.Equal(t, float64(1234), parsed.S("Seed").Data())
}
