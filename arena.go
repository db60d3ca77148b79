package skiplist

// defaultArenaGrowthFactor is used when the arena is full and neither a
// growth factor nor a fixed growth size was configured.
const defaultArenaGrowthFactor = 2.0

type arenaConfig struct {
	initialNodes    int
	growthFactor    float64
	growthNodes     int
	growthThreshold float64
}

// nodeArena hands out nodes from large typed chunks, carved front to back.
// Memory is only reclaimed when the whole arena is reset.
// nodeArena จัดสรรโหนดจาก chunk ขนาดใหญ่ที่จองไว้ล่วงหน้า
// หน่วยความจำจะถูกนำกลับมาใช้ใหม่ได้ก็ต่อเมื่อมีการ reset ทั้ง arena เท่านั้น
//
// Chunks are []node rather than raw bytes so the garbage collector keeps
// seeing the pointers stored inside nodes.
type nodeArena[K any, V any] struct {
	cfg    arenaConfig
	chunks [][]node[K, V]
	chunk  int // chunk currently being carved
	offset int // next free slot in chunks[chunk]
}

func newNodeArena[K any, V any](cfg arenaConfig) *nodeArena[K, V] {
	if cfg.initialNodes < 1 {
		cfg.initialNodes = 1
	}
	return &nodeArena[K, V]{
		cfg:    cfg,
		chunks: [][]node[K, V]{make([]node[K, V], cfg.initialNodes)},
	}
}

func (a *nodeArena[K, V]) nextChunkSize() int {
	if a.cfg.growthNodes > 0 {
		return a.cfg.growthNodes
	}
	factor := a.cfg.growthFactor
	if factor <= 1.0 {
		factor = defaultArenaGrowthFactor
	}
	last := len(a.chunks[len(a.chunks)-1])
	size := int(float64(last) * factor)
	if size <= last {
		size = last + 1
	}
	return size
}

func (a *nodeArena[K, V]) grow() {
	a.chunks = append(a.chunks, make([]node[K, V], a.nextChunkSize()))
}

func (a *nodeArena[K, V]) alloc() *node[K, V] {
	for a.offset >= len(a.chunks[a.chunk]) {
		a.chunk++
		a.offset = 0
		if a.chunk == len(a.chunks) {
			a.grow()
		}
	}
	n := &a.chunks[a.chunk][a.offset]
	a.offset++

	// Allocate the next chunk ahead of time once the last chunk is past the
	// configured threshold.
	if a.cfg.growthThreshold > 0 && a.chunk == len(a.chunks)-1 {
		used := float64(a.offset) / float64(len(a.chunks[a.chunk]))
		if used > a.cfg.growthThreshold {
			a.grow()
		}
	}
	return n
}

// reset zeroes every chunk and rewinds to the first slot. Grown chunks are
// kept for reuse.
func (a *nodeArena[K, V]) reset() {
	for i := range a.chunks {
		clear(a.chunks[i])
	}
	a.chunk, a.offset = 0, 0
}

func (a *nodeArena[K, V]) capacity() int {
	total := 0
	for _, c := range a.chunks {
		total += len(c)
	}
	return total
}

// arenaAllocator implements nodeAllocator on top of a nodeArena.
type arenaAllocator[K any, V any] struct {
	arena *nodeArena[K, V]
}

func newArenaAllocator[K any, V any](cfg arenaConfig) *arenaAllocator[K, V] {
	return &arenaAllocator[K, V]{arena: newNodeArena[K, V](cfg)}
}

func (a *arenaAllocator[K, V]) Get() *node[K, V] {
	return a.arena.alloc()
}

// Put drops the node's references so keys and values can be collected.
// The slot itself is only reused after Reset.
func (a *arenaAllocator[K, V]) Put(n *node[K, V]) {
	*n = node[K, V]{}
}

func (a *arenaAllocator[K, V]) Reset() {
	a.arena.reset()
}
