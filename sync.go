package skiplist

import (
	"cmp"

	"github.com/INLOpen/skiplist-classic/internal/syncutils"
)

// Synchronized guards a SkipList with a single read/write lock so it can be
// shared between goroutines. Reads run concurrently, writes exclusively.
//
// Synchronized ห่อ SkipList ด้วย RWMutex เพื่อให้ใช้งานพร้อมกันหลาย goroutine ได้
//
// Values are returned by copy; nodes never escape the lock.
type Synchronized[K any, V any] struct {
	mu syncutils.RWMutex
	sl *SkipList[K, V]
}

// NewSynchronized creates a guarded skiplist for cmp.Ordered keys.
func NewSynchronized[K cmp.Ordered, V any](opts ...Option[K, V]) *Synchronized[K, V] {
	return &Synchronized[K, V]{sl: New(opts...)}
}

// Synchronize takes ownership of sl. The caller must not use sl directly
// afterwards.
func Synchronize[K any, V any](sl *SkipList[K, V]) *Synchronized[K, V] {
	return &Synchronized[K, V]{sl: sl}
}

func (s *Synchronized[K, V]) Insert(key K, value V) (old V, replaced bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sl.Insert(key, value)
}

func (s *Synchronized[K, V]) Delete(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sl.Delete(key)
}

func (s *Synchronized[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sl.Get(key)
}

func (s *Synchronized[K, V]) Contains(key K) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sl.Contains(key)
}

func (s *Synchronized[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sl.Len()
}

func (s *Synchronized[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sl.Clear()
}

// PopMin removes and returns the smallest pair.
func (s *Synchronized[K, V]) PopMin() (Pair[K, V], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return detach(s.sl.PopMin())
}

// PopMax removes and returns the largest pair.
func (s *Synchronized[K, V]) PopMax() (Pair[K, V], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return detach(s.sl.PopMax())
}

func (s *Synchronized[K, V]) Min() (Pair[K, V], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return detach(s.sl.Min())
}

func (s *Synchronized[K, V]) Max() (Pair[K, V], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return detach(s.sl.Max())
}

func (s *Synchronized[K, V]) Rank(key K) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sl.Rank(key)
}

func (s *Synchronized[K, V]) Collect(start, end K) []Pair[K, V] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sl.Collect(start, end)
}

func (s *Synchronized[K, V]) CountRange(start, end K) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sl.CountRange(start, end)
}

// Range calls f for every pair in ascending order under the read lock.
// f must not call back into s.
func (s *Synchronized[K, V]) Range(f func(key K, value V) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.sl.Range(f)
}

// View runs f with the underlying list under the read lock.
// f must not modify the list or keep references to it.
func (s *Synchronized[K, V]) View(f func(sl *SkipList[K, V])) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f(s.sl)
}

// Update runs f with the underlying list under the write lock.
func (s *Synchronized[K, V]) Update(f func(sl *SkipList[K, V])) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(s.sl)
}

// RangeWithIterator hands f an iterator that is only valid inside f. One
// read lock is held for the whole call.
// RangeWithIterator ให้ Iterator ที่ถูก lock ไปยัง callback function
func (s *Synchronized[K, V]) RangeWithIterator(f func(it *Iterator[K, V])) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f(s.sl.NewIterator())
}

// RangeIterator returns an iterator over start <= key <= end that holds the
// read lock until Close is called. Writers block until then.
func (s *Synchronized[K, V]) RangeIterator(start, end K) *Iterator[K, V] {
	s.mu.RLock()
	it := s.sl.NewIterator(WithEnd[K, V](end), withRelease[K, V](s.mu.RUnlock))
	it.Seek(start)
	return it
}

func detach[K any, V any](n INode[K, V], ok bool) (Pair[K, V], bool) {
	if !ok {
		return Pair[K, V]{}, false
	}
	return Pair[K, V]{Key: n.Key(), Value: n.Value()}, true
}
