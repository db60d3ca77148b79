package skiplist

type iterState uint8

const (
	iterStart  iterState = iota // before the first element in iteration order
	iterSought                  // Seek picked the element the next Next lands on
	iterAt                      // positioned on current
	iterDone                    // ran off either end
)

// Iterator provides a way to iterate over the elements of a SkipList.
// The typical use is:
//
//	it := sl.NewIterator()
//	defer it.Close()
//	for it.Next() {
//		key := it.Key()
//		value := it.Value()
//		// ...
//	}
//
// Iterator คือโครงสร้างที่ใช้สำหรับวนลูปผ่านรายการใน Skiplist
//
// An iterator is invalidated by any Insert or Delete on its list.
type Iterator[K any, V any] struct {
	sl      *SkipList[K, V]
	current *node[K, V]
	target  *node[K, V] // landing node chosen by Seek
	state   iterState
	end     K
	hasEnd  bool
	reverse bool
	release func()
}

// IteratorOption configures an Iterator.
type IteratorOption[K any, V any] func(*Iterator[K, V])

// WithEnd bounds the iterator to keys <= end (inclusive).
// In reverse mode iteration starts at the largest key <= end.
func WithEnd[K any, V any](end K) IteratorOption[K, V] {
	return func(it *Iterator[K, V]) {
		it.end = end
		it.hasEnd = true
	}
}

// WithReverse makes Next walk from larger to smaller keys and Prev the
// other way round.
func WithReverse[K any, V any]() IteratorOption[K, V] {
	return func(it *Iterator[K, V]) {
		it.reverse = true
	}
}

// withRelease registers a function that Close calls once.
func withRelease[K any, V any](release func()) IteratorOption[K, V] {
	return func(it *Iterator[K, V]) {
		it.release = release
	}
}

// NewIterator creates an iterator positioned before the first element.
// A call to Next() is required to advance to the first element.
// NewIterator สร้าง Iterator ใหม่ที่ชี้ไปยังตำแหน่งก่อนรายการแรก
func (sl *SkipList[K, V]) NewIterator(opts ...IteratorOption[K, V]) *Iterator[K, V] {
	it := &Iterator[K, V]{sl: sl}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// lastAtOrBefore returns the node with the largest key <= key, or nil.
func (sl *SkipList[K, V]) lastAtOrBefore(key K) *node[K, V] {
	current := sl.header
	for i := sl.level; i >= 0; i-- {
		for current.forward[i] != nil && sl.compare(current.forward[i].key, key) <= 0 {
			current = current.forward[i]
		}
	}
	if current == sl.header {
		return nil
	}
	return current
}

func (it *Iterator[K, V]) inBounds(n *node[K, V]) bool {
	return !it.hasEnd || it.sl.compare(n.key, it.end) <= 0
}

func (it *Iterator[K, V]) land(n *node[K, V]) bool {
	if n == nil || !it.inBounds(n) {
		it.current = nil
		it.state = iterDone
		return false
	}
	it.current = n
	it.state = iterAt
	return true
}

func (it *Iterator[K, V]) lastNode() *node[K, V] {
	if it.hasEnd {
		return it.sl.lastAtOrBefore(it.end)
	}
	return it.sl.last()
}

// step moves one element forward (towards larger keys) or backward.
func (it *Iterator[K, V]) step(forward bool) bool {
	if it.state != iterAt {
		it.current = nil
		it.state = iterDone
		return false
	}
	if forward {
		return it.land(it.current.forward[0])
	}
	return it.land(it.current.backward)
}

// Next moves the iterator to the next element and returns true if the move was successful.
// It returns false if there are no more elements.
// Next เลื่อน Iterator ไปยังรายการถัดไป และคืนค่า true หากสำเร็จ
func (it *Iterator[K, V]) Next() bool {
	switch it.state {
	case iterStart:
		if it.reverse {
			return it.land(it.lastNode())
		}
		return it.land(it.sl.header.forward[0])
	case iterSought:
		return it.land(it.target)
	case iterAt:
		return it.step(!it.reverse)
	default:
		return false
	}
}

// Prev moves the iterator one element against the direction of Next.
// It returns false, and exhausts the iterator, when there is no such element.
// Prev เลื่อน Iterator ไปยังรายการก่อนหน้า
func (it *Iterator[K, V]) Prev() bool {
	return it.step(it.reverse)
}

// First moves the iterator to the element with the smallest key.
// First เลื่อน Iterator ไปยังรายการแรกใน Skiplist
func (it *Iterator[K, V]) First() bool {
	return it.land(it.sl.header.forward[0])
}

// Last moves the iterator to the element with the largest key, honoring WithEnd.
// Last เลื่อน Iterator ไปยังรายการสุดท้ายใน Skiplist
func (it *Iterator[K, V]) Last() bool {
	return it.land(it.lastNode())
}

// Seek positions the iterator so that the following Next lands on the first
// element with a key >= key, or in reverse mode on the last element with a
// key <= key.
// Seek เลื่อน Iterator ไปยังตำแหน่งก่อนหน้าของรายการที่ต้องการ
func (it *Iterator[K, V]) Seek(key K) {
	it.current = nil
	it.state = iterSought
	if !it.reverse {
		it.target = it.sl.findGreaterOrEqual(key)
		return
	}
	if it.hasEnd && it.sl.compare(key, it.end) > 0 {
		key = it.end
	}
	it.target = it.sl.lastAtOrBefore(key)
}

// Reset moves the iterator back to its initial state.
// Reset เลื่อน Iterator กลับไปยังสถานะเริ่มต้น
func (it *Iterator[K, V]) Reset() {
	it.current = nil
	it.target = nil
	it.state = iterStart
}

// Key returns the key at the current position. It must only be called
// after a move that returned true.
func (it *Iterator[K, V]) Key() K {
	return it.current.key
}

// Value returns the value at the current position. It must only be called
// after a move that returned true.
func (it *Iterator[K, V]) Value() V {
	return it.current.value
}

// Valid reports whether the iterator is positioned on an element.
func (it *Iterator[K, V]) Valid() bool {
	return it.state == iterAt
}

// Clone creates an independent copy of the iterator at its current position.
// The clone does not own any lock held by the original.
// Clone สร้างสำเนาของ Iterator ณ ตำแหน่งปัจจุบัน
func (it *Iterator[K, V]) Clone() *Iterator[K, V] {
	c := *it
	c.release = nil
	return &c
}

// Close releases resources held by the iterator. It is safe to call more
// than once.
func (it *Iterator[K, V]) Close() {
	if it.release != nil {
		release := it.release
		it.release = nil
		release()
	}
}
