package skiplist

import "golang.org/x/xerrors"

var (
	ErrUnsorted       = xerrors.New("skiplist: keys out of order")
	ErrLevelInclusion = xerrors.New("skiplist: node missing from a lower level")
	ErrSpan           = xerrors.New("skiplist: span does not match level-0 distance")
	ErrLength         = xerrors.New("skiplist: length does not match node count")
	ErrLevelOverflow  = xerrors.New("skiplist: node taller than the level ceiling")
	ErrBackward       = xerrors.New("skiplist: backward link does not mirror level 0")
)

// Validate walks every level and checks the structural invariants of the
// list. It returns nil for a well-formed list. It is O(n * levels) and
// meant for tests and debugging.
// Validate ตรวจสอบความถูกต้องของโครงสร้าง skiplist ทุกชั้น
func (sl *SkipList[K, V]) Validate() error {
	// level 0: order, backward links, heights, positions
	pos := make(map[*node[K, V]]int, sl.length)
	count := 0
	var prev *node[K, V]
	for n := sl.header.forward[0]; n != nil; n = n.forward[0] {
		count++
		if count > sl.length {
			return xerrors.Errorf("more than %d nodes on level 0: %w", sl.length, ErrLength)
		}
		pos[n] = count
		if prev != nil && sl.compare(prev.key, n.key) >= 0 {
			return xerrors.Errorf("level 0 at position %d: %w", count, ErrUnsorted)
		}
		if n.backward != prev {
			return xerrors.Errorf("position %d: %w", count, ErrBackward)
		}
		if h := n.height(); h < 1 || h > sl.maxLevel {
			return xerrors.Errorf("position %d has height %d, ceiling %d: %w", count, h, sl.maxLevel, ErrLevelOverflow)
		}
		if h := n.height(); h > sl.level+1 {
			return xerrors.Errorf("position %d has height %d above top level %d: %w", count, h, sl.level+1, ErrLevelOverflow)
		}
		prev = n
	}
	if count != sl.length {
		return xerrors.Errorf("counted %d nodes, length %d: %w", count, sl.length, ErrLength)
	}

	// upper levels: order, inclusion and spans
	for i := 0; i <= sl.level; i++ {
		tall := 0
		for n := range pos {
			if n.height() > i {
				tall++
			}
		}
		reached := 0
		current := sl.header
		at := 0
		for {
			next := current.forward[i]
			want := sl.length - at
			if next != nil {
				p, ok := pos[next]
				if !ok || next.height() <= i {
					return xerrors.Errorf("level %d: %w", i, ErrLevelInclusion)
				}
				reached++
				if current != sl.header && sl.compare(current.key, next.key) >= 0 {
					return xerrors.Errorf("level %d at position %d: %w", i, p, ErrUnsorted)
				}
				want = p - at
			}
			if current.span[i] != want {
				return xerrors.Errorf("level %d at position %d: span %d, want %d: %w", i, at, current.span[i], want, ErrSpan)
			}
			if next == nil {
				break
			}
			current = next
			at = pos[next]
		}
		if reached != tall {
			return xerrors.Errorf("level %d links %d of %d nodes: %w", i, reached, tall, ErrLevelInclusion)
		}
	}
	return nil
}
