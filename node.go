package skiplist

import "sync"

// INode is a read-only view of an entry stored in the skiplist.
type INode[K any, V any] interface {
	Key() K
	Value() V
}

// Pair is a detached key/value copy, returned by Collect.
type Pair[K any, V any] struct {
	Key   K
	Value V
}

// node คือโหนดแต่ละตัวใน skiplist
// The height of a node is len(forward) and never changes after insertion.
type node[K any, V any] struct {
	key      K
	value    V
	backward *node[K, V]   // ตัวชี้ไปยังโหนดก่อนหน้า (เฉพาะชั้น 0)
	forward  []*node[K, V] // ตัวชี้ไปยังโหนดถัดไปในแต่ละชั้น
	span     []int         // จำนวนโหนดในชั้น 0 ที่ forward[i] ข้ามไป
}

func (n *node[K, V]) Key() K {
	return n.key
}

func (n *node[K, V]) Value() V {
	return n.value
}

func (n *node[K, V]) height() int {
	return len(n.forward)
}

// reset clears the node so an allocator can hand it out again.
// Slices keep their backing arrays.
// reset เคลียร์ข้อมูลในโหนดเพื่อให้ allocator นำกลับมาใช้ใหม่ได้
func (n *node[K, V]) reset() {
	var zeroK K
	var zeroV V
	n.key, n.value, n.backward = zeroK, zeroV, nil
	clear(n.forward)
	clear(n.span)
	n.forward = n.forward[:0]
	n.span = n.span[:0]
}

// setHeight sizes forward and span for a node of the given height,
// reusing capacity left over from a previous life of the node.
func (n *node[K, V]) setHeight(h int) {
	if cap(n.forward) < h {
		n.forward = make([]*node[K, V], h)
		n.span = make([]int, h)
		return
	}
	n.forward = n.forward[:h]
	n.span = n.span[:h]
}

// --- Node Allocator Abstraction ---

// nodeAllocator hands out nodes and takes back nodes that have been
// unlinked from every level.
// nodeAllocator คือ interface สำหรับกลยุทธ์การจัดสรรหน่วยความจำสำหรับโหนด
type nodeAllocator[K any, V any] interface {
	Get() *node[K, V]
	Put(*node[K, V])
	Reset()
}

// poolAllocator implements nodeAllocator using a sync.Pool.
type poolAllocator[K any, V any] struct {
	pool sync.Pool
}

func newPoolAllocator[K any, V any]() *poolAllocator[K, V] {
	return &poolAllocator[K, V]{
		pool: sync.Pool{
			New: func() any { return &node[K, V]{} },
		},
	}
}

func (p *poolAllocator[K, V]) Get() *node[K, V] {
	return p.pool.Get().(*node[K, V])
}

func (p *poolAllocator[K, V]) Put(n *node[K, V]) {
	n.reset()
	p.pool.Put(n)
}

// Reset is a no-op; SkipList.Clear replaces the whole pool instead so the
// old one can be collected.
func (p *poolAllocator[K, V]) Reset() {}
