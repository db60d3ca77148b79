package skiplist

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynchronized_Concurrent(t *testing.T) {
	for _, setup := range getTestSetups[int, int]() {
		t.Run(setup.name, func(t *testing.T) {
			s := Synchronize(setup.constructor(nil))
			var wg sync.WaitGroup

			numGoroutines := 100
			itemsPerGoroutine := 100
			totalItems := numGoroutines * itemsPerGoroutine

			for i := 0; i < numGoroutines; i++ {
				wg.Add(1)
				go func(id int) {
					defer wg.Done()
					for j := 0; j < itemsPerGoroutine; j++ {
						key := id*itemsPerGoroutine + j
						s.Insert(key, key)
					}
				}(i)
			}
			wg.Wait()
			require.Equal(t, totalItems, s.Len())

			// even goroutines delete their keys, odd ones read theirs
			for i := 0; i < numGoroutines; i++ {
				wg.Add(1)
				go func(id int) {
					defer wg.Done()
					for j := 0; j < itemsPerGoroutine; j++ {
						key := id*itemsPerGoroutine + j
						if id%2 == 0 {
							s.Delete(key)
						} else {
							v, ok := s.Get(key)
							assert.True(t, ok)
							assert.Equal(t, key, v)
						}
					}
				}(i)
			}
			wg.Wait()

			assert.Equal(t, totalItems/2, s.Len())
			s.View(func(sl *SkipList[int, int]) {
				require.NoError(t, sl.Validate())
			})
		})
	}
}

// A RangeIterator holds the read lock until Close, so writers wait for it.
func TestSynchronized_RangeIteratorBlocksWriters(t *testing.T) {
	s := NewSynchronized[int, int]()
	s.Insert(10, 10)
	s.Insert(20, 20)
	s.Insert(30, 30)

	it := s.RangeIterator(15, 40)
	defer it.Close()
	require.True(t, it.Next())
	assert.Equal(t, 20, it.Key())

	done := make(chan struct{})
	go func() {
		s.Insert(999, 999)
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Insert completed while RangeIterator still held the read lock")
	case <-time.After(100 * time.Millisecond):
	}

	require.True(t, it.Next())
	assert.Equal(t, 30, it.Key())
	assert.False(t, it.Next())
	it.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Insert did not complete after Close")
	}
	assert.True(t, s.Contains(999))
}

func TestSynchronized_Operations(t *testing.T) {
	s := NewSynchronized[int, string]()
	_, ok := s.Min()
	assert.False(t, ok)
	_, ok = s.PopMax()
	assert.False(t, ok)

	for _, k := range []int{30, 10, 20, 40} {
		s.Insert(k, "v")
	}
	old, replaced := s.Insert(20, "twenty")
	assert.True(t, replaced)
	assert.Equal(t, "v", old)

	p, ok := s.Min()
	require.True(t, ok)
	assert.Equal(t, Pair[int, string]{10, "v"}, p)
	p, ok = s.Max()
	require.True(t, ok)
	assert.Equal(t, 40, p.Key)

	assert.Equal(t, 2, s.Rank(30))
	assert.Equal(t, 2, s.CountRange(15, 30))
	assert.Equal(t, []Pair[int, string]{{20, "twenty"}, {30, "v"}}, s.Collect(15, 30))

	var keys []int
	s.Range(func(k int, _ string) bool {
		keys = append(keys, k)
		return true
	})
	assert.Equal(t, []int{10, 20, 30, 40}, keys)

	var reversed []int
	s.RangeWithIterator(func(it *Iterator[int, string]) {
		if it.Last() {
			for ok := true; ok; ok = it.Prev() {
				reversed = append(reversed, it.Key())
			}
		}
	})
	assert.Equal(t, []int{40, 30, 20, 10}, reversed)

	p, ok = s.PopMin()
	require.True(t, ok)
	assert.Equal(t, 10, p.Key)
	p, ok = s.PopMax()
	require.True(t, ok)
	assert.Equal(t, 40, p.Key)

	s.Update(func(sl *SkipList[int, string]) {
		sl.Delete(20)
		sl.Insert(25, "x")
	})
	assert.False(t, s.Contains(20))
	assert.True(t, s.Delete(25))

	s.Clear()
	assert.Equal(t, 0, s.Len())
}
