package skiplist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain[K any, V any](it *Iterator[K, V]) []K {
	var keys []K
	for it.Next() {
		keys = append(keys, it.Key())
	}
	return keys
}

func TestIterator(t *testing.T) {
	for _, setup := range getTestSetups[int, string]() {
		t.Run(setup.name, func(t *testing.T) {
			sl := setup.constructor(nil)
			sl.Insert(10, "ten")
			sl.Insert(30, "thirty")
			sl.Insert(20, "twenty")
			sl.Insert(50, "fifty")
			sl.Insert(40, "forty")

			t.Run("Iterate from start", func(t *testing.T) {
				assert.Equal(t, []int{10, 20, 30, 40, 50}, drain(sl.NewIterator()))
			})

			t.Run("Exhausted stays exhausted", func(t *testing.T) {
				it := sl.NewIterator()
				drain(it)
				assert.False(t, it.Next())
				assert.False(t, it.Valid())
			})

			t.Run("Reset", func(t *testing.T) {
				it := sl.NewIterator()
				it.Next()
				it.Next()
				it.Reset()
				assert.False(t, it.Valid())
				require.True(t, it.Next())
				assert.Equal(t, 10, it.Key())
			})

			t.Run("Seek", func(t *testing.T) {
				cases := map[int][]int{
					30: {30, 40, 50},
					25: {30, 40, 50},
					5:  {10, 20, 30, 40, 50},
					55: nil,
				}
				for key, want := range cases {
					it := sl.NewIterator()
					it.Seek(key)
					assert.False(t, it.Valid(), "Seek only positions, Next lands")
					assert.Equal(t, want, drain(it), "Seek(%d)", key)
				}

				it := sl.NewIterator()
				it.Seek(30)
				require.True(t, it.Next())
				assert.Equal(t, "thirty", it.Value())
			})

			t.Run("First", func(t *testing.T) {
				it := sl.NewIterator()
				require.True(t, it.First())
				assert.Equal(t, 10, it.Key())
				require.True(t, it.Next())
				assert.Equal(t, 20, it.Key())

				assert.False(t, setup.constructor(nil).NewIterator().First())
			})

			t.Run("Last", func(t *testing.T) {
				it := sl.NewIterator()
				require.True(t, it.Last())
				assert.Equal(t, 50, it.Key())
				assert.False(t, it.Next())

				assert.False(t, setup.constructor(nil).NewIterator().Last())
			})

			t.Run("Prev", func(t *testing.T) {
				it := sl.NewIterator()
				require.True(t, it.Last())
				var got []int
				for ok := true; ok; ok = it.Prev() {
					got = append(got, it.Key())
				}
				assert.Equal(t, []int{50, 40, 30, 20, 10}, got)

				fresh := sl.NewIterator()
				assert.False(t, fresh.Prev(), "Prev before positioning")
			})

			t.Run("Clone", func(t *testing.T) {
				it := sl.NewIterator()
				it.Seek(20)
				require.True(t, it.Next())
				c := it.Clone()
				require.True(t, it.Next())
				assert.Equal(t, 30, it.Key())
				assert.Equal(t, 20, c.Key())
				assert.Equal(t, []int{30, 40, 50}, drain(c))
			})
		})
	}
}

func TestIterator_WithEnd(t *testing.T) {
	for _, setup := range getTestSetups[int, string]() {
		t.Run(setup.name, func(t *testing.T) {
			sl := setup.constructor(nil)
			for _, k := range []int{10, 20, 30, 40} {
				sl.Insert(k, "v")
			}

			it := sl.NewIterator(WithEnd[int, string](30))
			defer it.Close()
			assert.Equal(t, []int{10, 20, 30}, drain(it))

			it = sl.NewIterator(WithEnd[int, string](25))
			require.True(t, it.Last())
			assert.Equal(t, 20, it.Key())

			it = sl.NewIterator(WithEnd[int, string](25))
			it.Seek(30)
			assert.False(t, it.Next(), "seek past the end bound")
		})
	}
}

func TestIterator_Reverse(t *testing.T) {
	for _, setup := range getTestSetups[int, int]() {
		t.Run(setup.name, func(t *testing.T) {
			sl := setup.constructor(nil)
			for _, k := range []int{10, 20, 30, 40} {
				sl.Insert(k, k)
			}

			assert.Equal(t, []int{40, 30, 20, 10}, drain(sl.NewIterator(WithReverse[int, int]())))

			it := sl.NewIterator(WithReverse[int, int]())
			it.Seek(25)
			assert.Equal(t, []int{20, 10}, drain(it))

			// Prev walks towards larger keys on a reverse iterator
			it = sl.NewIterator(WithReverse[int, int]())
			require.True(t, it.First())
			got := []int{it.Key()}
			for it.Prev() {
				got = append(got, it.Key())
			}
			assert.Equal(t, []int{10, 20, 30, 40}, got)
		})
	}
}

func TestIterator_ReverseWithEnd(t *testing.T) {
	for _, setup := range getTestSetups[int, int]() {
		t.Run(setup.name, func(t *testing.T) {
			sl := setup.constructor(nil)
			for _, k := range []int{10, 20, 30, 40, 50} {
				sl.Insert(k, k)
			}
			reverseTo := func(end int) *Iterator[int, int] {
				return sl.NewIterator(WithReverse[int, int](), WithEnd[int, int](end))
			}

			assert.Equal(t, []int{30, 20, 10}, drain(reverseTo(35)))
			assert.Equal(t, []int{50, 40, 30, 20, 10}, drain(reverseTo(100)))
			assert.Empty(t, drain(reverseTo(5)))

			it := reverseTo(35)
			it.Seek(100)
			assert.Equal(t, []int{30, 20, 10}, drain(it), "seek clamps to the end bound")
		})
	}
}

func TestIterator_Close(t *testing.T) {
	sl := New[int, int]()
	calls := 0
	it := sl.NewIterator(withRelease[int, int](func() { calls++ }))
	c := it.Clone()
	c.Close()
	assert.Equal(t, 0, calls, "clone does not own the release")
	it.Close()
	it.Close()
	assert.Equal(t, 1, calls)
}
