// Package skiplist implements a generic skiplist, an ordered map built from
// several linked levels of decreasing density.
// Search, insertion and deletion take O(log n) expected time.
//
// A SkipList is not safe for concurrent use. Wrap it in a Synchronized
// when it is shared between goroutines.
//
// package skiplist คือโครงสร้างข้อมูล skiplist แบบ generic
// ค้นหา เพิ่ม และลบข้อมูลได้ในเวลา O(log n) โดยเฉลี่ย
package skiplist

import (
	"cmp"
	"math/rand/v2"

	"github.com/rs/zerolog"
)

const (
	// DefaultMaxLevel is the height ceiling used when WithMaxLevel is not given.
	// With p = 0.5 it keeps searches logarithmic up to about 2^16 items per
	// level of headroom.
	// DefaultMaxLevel คือจำนวนชั้นสูงสุดเริ่มต้น
	DefaultMaxLevel = 16
	// MaxLevelLimit is the largest value WithMaxLevel accepts.
	MaxLevelLimit = 64
	// DefaultP is the default probability of promoting a node one level up.
	// DefaultP คือค่าความน่าจะเป็นเริ่มต้นในการเพิ่มชั้นของโหนดใหม่
	DefaultP = 0.5
)

// Comparator is a function that compares two keys.
// It should return:
//   - a negative value if a < b
//   - zero if a == b
//   - a positive value if a > b
//
// Comparator คือฟังก์ชันสำหรับเปรียบเทียบ key สองตัว
type Comparator[K any] func(a, b K) int

// SkipList is an ordered key/value map.
// The zero value for a SkipList is not ready to use; one of the New functions must be called.
// ค่า zero value ของ SkipList จะยังไม่พร้อมใช้งาน, ต้องสร้างผ่านฟังก์ชัน New... เท่านั้น
type SkipList[K any, V any] struct {
	header           *node[K, V]         // โหนดเริ่มต้น (sentinel node)
	level            int                 // index ของชั้นสูงสุดที่ใช้งานอยู่ (0-based)
	maxLevel         int                 // ความสูงสูงสุดของโหนด
	length           int                 // จำนวนรายการทั้งหมด
	p                float64             // ความน่าจะเป็นในการเพิ่มชั้น
	rand             *rand.Rand          // ตัวสร้างเลขสุ่มสำหรับกำหนดชั้น
	updateCache      []*node[K, V]       // predecessors ของแต่ละชั้น
	updateCacheRanks []int               // rank ของ predecessors ที่ใช้ใน Insert
	allocator        nodeAllocator[K, V] // กลยุทธ์การจัดสรรหน่วยความจำ
	arena            arenaConfig
	compare          Comparator[K]
	logger           zerolog.Logger
}

// New creates a new skiplist for key types that implement cmp.Ordered (e.g., int, string).
// It uses cmp.Compare as the comparator.
// New สร้าง skiplist ใหม่สำหรับ key type ที่รองรับ `cmp.Ordered`
func New[K cmp.Ordered, V any](opts ...Option[K, V]) *SkipList[K, V] {
	return NewWithComparator(cmp.Compare[K], opts...)
}

// NewWithComparator creates a new skiplist ordered by compare.
// The comparator function must not be nil.
// NewWithComparator สร้าง skiplist ใหม่พร้อมกับฟังก์ชันเปรียบเทียบที่กำหนดเอง
func NewWithComparator[K any, V any](compare Comparator[K], opts ...Option[K, V]) *SkipList[K, V] {
	if compare == nil {
		panic("skiplist: comparator cannot be nil")
	}

	sl := &SkipList[K, V]{
		maxLevel: DefaultMaxLevel,
		p:        DefaultP,
		compare:  compare,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(sl)
	}
	if sl.rand == nil {
		sl.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	// header มีตัวชี้ครบทุกชั้นแต่ไม่เก็บข้อมูลจริง
	sl.header = &node[K, V]{
		forward: make([]*node[K, V], sl.maxLevel),
		span:    make([]int, sl.maxLevel),
	}
	sl.updateCache = make([]*node[K, V], sl.maxLevel)
	sl.updateCacheRanks = make([]int, sl.maxLevel)

	if sl.arena.initialNodes > 0 {
		sl.allocator = newArenaAllocator[K, V](sl.arena)
	} else {
		sl.allocator = newPoolAllocator[K, V]()
	}
	return sl
}

// randomLevel draws the height of a new node from a geometric distribution,
// capped at maxLevel.
// randomLevel สุ่มความสูง (จำนวนชั้น) ของโหนดใหม่
func (sl *SkipList[K, V]) randomLevel() int {
	level := 1
	if sl.p != DefaultP {
		for level < sl.maxLevel && sl.rand.Float64() < sl.p {
			level++
		}
		return level
	}

	// p = 1/2: one random bit per coin flip, refilled every 64 flips.
	x := sl.rand.Uint64()
	bits := 64
	for x&1 == 1 && level < sl.maxLevel {
		level++
		x >>= 1
		bits--
		if bits == 0 {
			x = sl.rand.Uint64()
			bits = 64
		}
	}
	return level
}

// findGreaterOrEqual finds the first node with a key >= the given key.
// It returns nil if no such node is found.
func (sl *SkipList[K, V]) findGreaterOrEqual(key K) *node[K, V] {
	current := sl.header
	for i := sl.level; i >= 0; i-- {
		for current.forward[i] != nil && sl.compare(current.forward[i].key, key) < 0 {
			current = current.forward[i]
		}
	}
	return current.forward[0]
}

// findPath fills update with the last node visited on every level before
// the search for key drops down, and returns the level-0 candidate.
func (sl *SkipList[K, V]) findPath(key K, update []*node[K, V]) *node[K, V] {
	current := sl.header
	for i := sl.level; i >= 0; i-- {
		for current.forward[i] != nil && sl.compare(current.forward[i].key, key) < 0 {
			current = current.forward[i]
		}
		update[i] = current
	}
	return current.forward[0]
}

// Search searches for a node by its key.
// It returns the node and true if the key is found, otherwise it returns nil and false.
// The node stays valid until its key is deleted or the list is cleared.
// Search ค้นหาโหนดจาก key ที่กำหนด คืนค่าโหนดและ true หากพบ
func (sl *SkipList[K, V]) Search(key K) (INode[K, V], bool) {
	n := sl.findGreaterOrEqual(key)
	if n != nil && sl.compare(n.key, key) == 0 {
		return n, true
	}
	return nil, false
}

// Get returns the value stored under key.
func (sl *SkipList[K, V]) Get(key K) (V, bool) {
	n := sl.findGreaterOrEqual(key)
	if n != nil && sl.compare(n.key, key) == 0 {
		return n.value, true
	}
	var zero V
	return zero, false
}

// Contains reports whether key is present.
func (sl *SkipList[K, V]) Contains(key K) bool {
	_, ok := sl.Get(key)
	return ok
}

// Insert adds a key-value pair to the skiplist.
// If the key already exists its value is replaced in place, and the previous
// value is returned with replaced == true. Keys are never duplicated.
// Insert เพิ่ม key-value คู่ใหม่เข้าไปใน skiplist
// หาก key มีอยู่แล้ว จะทำการแทนที่ value และคืนค่า value เดิม
func (sl *SkipList[K, V]) Insert(key K, value V) (old V, replaced bool) {
	update := sl.updateCache
	ranks := sl.updateCacheRanks
	current := sl.header

	// ค้นหาตำแหน่งที่จะเพิ่มโหนดใหม่ พร้อมทั้งบันทึกโหนดที่จะต้องอัปเดต และ rank
	for i := sl.level; i >= 0; i-- {
		if i == sl.level {
			ranks[i] = 0
		} else {
			ranks[i] = ranks[i+1]
		}
		for current.forward[i] != nil && sl.compare(current.forward[i].key, key) < 0 {
			ranks[i] += current.span[i]
			current = current.forward[i]
		}
		update[i] = current
	}

	current = current.forward[0]
	if current != nil && sl.compare(current.key, key) == 0 {
		old = current.value
		current.value = value
		return old, true
	}

	newLevel := sl.randomLevel()

	// newLevel is 1-based, sl.level is 0-based
	if newLevel-1 > sl.level {
		for i := sl.level + 1; i < newLevel; i++ {
			// ชั้นใหม่เริ่มจาก header และ span ครอบคลุมโหนดทั้งหมดที่มีอยู่
			update[i] = sl.header
			ranks[i] = 0
			sl.header.span[i] = sl.length
		}
		sl.logger.Debug().Int("from", sl.level+1).Int("to", newLevel).Msg("skiplist level raised")
		sl.level = newLevel - 1
	}

	n := sl.allocator.Get()
	n.setHeight(newLevel)
	n.key = key
	n.value = value

	// เชื่อมโหนดใหม่เข้ากับแต่ละชั้น พร้อมทั้งอัปเดต span
	for i := 0; i < newLevel; i++ {
		prev := update[i]
		n.forward[i] = prev.forward[i]
		prev.forward[i] = n

		newSpan := (ranks[0] - ranks[i]) + 1
		n.span[i] = prev.span[i] - (newSpan - 1)
		prev.span[i] = newSpan
	}

	// ชั้นที่สูงกว่า newLevel: path ข้ามโหนดใหม่ไป
	for i := newLevel; i <= sl.level; i++ {
		update[i].span[i]++
	}

	if update[0] != sl.header {
		n.backward = update[0]
	}
	if n.forward[0] != nil {
		n.forward[0].backward = n
	}

	sl.length++
	return old, false
}

// deleteNode unlinks target from every level it participates in and
// releases it. update must hold the predecessors of target on levels
// 0..sl.level.
func (sl *SkipList[K, V]) deleteNode(target *node[K, V], update []*node[K, V]) {
	for i := 0; i <= sl.level; i++ {
		prev := update[i]
		if prev.forward[i] == target {
			prev.span[i] += target.span[i] - 1
			prev.forward[i] = target.forward[i]
		} else {
			// path ชั้นนี้ข้ามโหนดที่ถูกลบไป
			prev.span[i]--
		}
	}

	if target.forward[0] != nil {
		target.forward[0].backward = target.backward
	}

	// ลดระดับของ skiplist หากชั้นบนสุดว่างลง
	if sl.level > 0 && sl.header.forward[sl.level] == nil {
		from := sl.level
		for sl.level > 0 && sl.header.forward[sl.level] == nil {
			sl.level--
		}
		sl.logger.Debug().Int("from", from+1).Int("to", sl.level+1).Msg("skiplist level lowered")
	}

	sl.allocator.Put(target)
	sl.length--
}

// Delete removes a key-value pair from the skiplist.
// It returns true if the key was found and removed, otherwise false and
// the list is left untouched.
// Delete ลบ key-value ออกจาก skiplist คืนค่า true หากลบสำเร็จ
func (sl *SkipList[K, V]) Delete(key K) bool {
	target := sl.findPath(key, sl.updateCache)
	if target == nil || sl.compare(target.key, key) != 0 {
		return false
	}
	sl.deleteNode(target, sl.updateCache)
	return true
}

// Clear removes all items from the skiplist. Nodes handed out by Search
// before the call must not be used afterwards.
// Clear ลบรายการทั้งหมดออกจาก skiplist และรีเซ็ตให้อยู่ในสถานะว่างเปล่า
func (sl *SkipList[K, V]) Clear() {
	clear(sl.header.forward)
	clear(sl.header.span)
	clear(sl.updateCache)
	sl.level = 0
	sl.length = 0

	if _, ok := sl.allocator.(*arenaAllocator[K, V]); ok {
		sl.allocator.Reset()
	} else {
		sl.allocator = newPoolAllocator[K, V]()
	}
	sl.logger.Debug().Msg("skiplist cleared")
}

// Len returns the total number of items in the skiplist.
// Len คืนค่าจำนวนรายการทั้งหมดใน skiplist
func (sl *SkipList[K, V]) Len() int {
	return sl.length
}

// Level returns the number of levels in use, 0 for an empty list.
func (sl *SkipList[K, V]) Level() int {
	if sl.length == 0 {
		return 0
	}
	return sl.level + 1
}

// MaxLevel returns the configured height ceiling.
func (sl *SkipList[K, V]) MaxLevel() int {
	return sl.maxLevel
}

// Range iterates over all items in ascending key order.
// The iteration stops if f returns false.
// Range วนลูปไปตามรายการทั้งหมดใน skiplist ตามลำดับ key
func (sl *SkipList[K, V]) Range(f func(key K, value V) bool) {
	for current := sl.header.forward[0]; current != nil; current = current.forward[0] {
		if !f(current.key, current.value) {
			return
		}
	}
}

// Keys returns all keys in ascending order.
func (sl *SkipList[K, V]) Keys() []K {
	keys := make([]K, 0, sl.length)
	for current := sl.header.forward[0]; current != nil; current = current.forward[0] {
		keys = append(keys, current.key)
	}
	return keys
}

// Min returns the first (smallest) key-value pair in the skiplist.
// Min คืนค่า key-value คู่แรก (น้อยที่สุด) ใน skiplist
func (sl *SkipList[K, V]) Min() (INode[K, V], bool) {
	if sl.length == 0 {
		return nil, false
	}
	return sl.header.forward[0], true
}

// last returns the last node, or nil when the list is empty.
func (sl *SkipList[K, V]) last() *node[K, V] {
	current := sl.header
	for i := sl.level; i >= 0; i-- {
		for current.forward[i] != nil {
			current = current.forward[i]
		}
	}
	if current == sl.header {
		return nil
	}
	return current
}

// Max returns the last (largest) key-value pair in the skiplist.
// Max คืนค่า key-value คู่สุดท้าย (มากที่สุด) ใน skiplist
func (sl *SkipList[K, V]) Max() (INode[K, V], bool) {
	if n := sl.last(); n != nil {
		return n, true
	}
	return nil, false
}

// RangeQuery iterates over items where the key is between start and end (inclusive).
// The iteration stops if f returns false.
// RangeQuery วนลูปไปตามรายการที่ key อยู่ระหว่าง start และ end (รวมทั้งสองค่า)
func (sl *SkipList[K, V]) RangeQuery(start, end K, f func(key K, value V) bool) {
	for current := sl.findGreaterOrEqual(start); current != nil && sl.compare(current.key, end) <= 0; current = current.forward[0] {
		if !f(current.key, current.value) {
			return
		}
	}
}

// Collect copies the items with start <= key <= end into a slice.
func (sl *SkipList[K, V]) Collect(start, end K) []Pair[K, V] {
	var out []Pair[K, V]
	sl.RangeQuery(start, end, func(key K, value V) bool {
		out = append(out, Pair[K, V]{Key: key, Value: value})
		return true
	})
	return out
}

// CountRange counts the number of items where the key is between start and end (inclusive).
func (sl *SkipList[K, V]) CountRange(start, end K) int {
	if sl.compare(start, end) > 0 {
		return 0
	}
	count := 0
	for current := sl.findGreaterOrEqual(start); current != nil && sl.compare(current.key, end) <= 0; current = current.forward[0] {
		count++
	}
	return count
}

// Predecessor returns the node with the largest key strictly smaller than key.
// Predecessor คือโหนดที่มี key มากที่สุดซึ่งน้อยกว่า key ที่กำหนด
func (sl *SkipList[K, V]) Predecessor(key K) (INode[K, V], bool) {
	current := sl.header
	for i := sl.level; i >= 0; i-- {
		for current.forward[i] != nil && sl.compare(current.forward[i].key, key) < 0 {
			current = current.forward[i]
		}
	}
	if current != sl.header {
		return current, true
	}
	return nil, false
}

// Successor returns the node with the smallest key strictly larger than key.
// Successor คือโหนดที่มี key น้อยที่สุดที่มากกว่า key ที่กำหนด
func (sl *SkipList[K, V]) Successor(key K) (INode[K, V], bool) {
	current := sl.header
	for i := sl.level; i >= 0; i-- {
		// '<=' advances past a node equal to key.
		for current.forward[i] != nil && sl.compare(current.forward[i].key, key) <= 0 {
			current = current.forward[i]
		}
	}
	if current.forward[0] != nil {
		return current.forward[0], true
	}
	return nil, false
}

// Seek returns the first node with a key greater than or equal to key.
// Seek ค้นหาโหนดแรกที่มี key เท่ากับหรือมากกว่า key ที่กำหนด
func (sl *SkipList[K, V]) Seek(key K) (INode[K, V], bool) {
	if n := sl.findGreaterOrEqual(key); n != nil {
		return n, true
	}
	return nil, false
}

// PopMin removes and returns the smallest key-value pair.
// The returned node is a detached copy.
// PopMin ดึง key-value คู่ที่มี key น้อยที่สุดออกจาก skiplist
func (sl *SkipList[K, V]) PopMin() (INode[K, V], bool) {
	if sl.length == 0 {
		return nil, false
	}

	target := sl.header.forward[0]
	popped := &node[K, V]{key: target.key, value: target.value}

	// predecessor ของโหนดแรกคือ header ในทุกชั้น
	update := sl.updateCache
	for i := 0; i <= sl.level; i++ {
		update[i] = sl.header
	}
	sl.deleteNode(target, update)
	return popped, true
}

// PopMax removes and returns the largest key-value pair.
// The returned node is a detached copy.
// PopMax ดึง key-value คู่ที่มี key มากที่สุดออกจาก skiplist
func (sl *SkipList[K, V]) PopMax() (INode[K, V], bool) {
	lastNode := sl.last()
	if lastNode == nil {
		return nil, false
	}

	target := sl.findPath(lastNode.key, sl.updateCache)
	popped := &node[K, V]{key: target.key, value: target.value}
	sl.deleteNode(target, sl.updateCache)
	return popped, true
}

// Rank returns the number of keys strictly smaller than key, which is the
// 0-based position key has, or would have if it were inserted.
// Rank คืนค่าอันดับ (0-based) ของ key ที่กำหนด
func (sl *SkipList[K, V]) Rank(key K) int {
	rank := 0
	current := sl.header
	for i := sl.level; i >= 0; i-- {
		for current.forward[i] != nil && sl.compare(current.forward[i].key, key) < 0 {
			rank += current.span[i]
			current = current.forward[i]
		}
	}
	return rank
}

// GetByRank returns the node at the given 0-based rank.
// If the rank is out of bounds it returns nil and false.
// GetByRank คืนค่าโหนด ณ อันดับที่กำหนด (0-based)
func (sl *SkipList[K, V]) GetByRank(rank int) (INode[K, V], bool) {
	if rank < 0 || rank >= sl.length {
		return nil, false
	}

	traversed := -1 // header อยู่ที่อันดับ -1
	current := sl.header
	for i := sl.level; i >= 0; i-- {
		for current.forward[i] != nil && traversed+current.span[i] <= rank {
			traversed += current.span[i]
			current = current.forward[i]
		}
	}
	return current, true
}
