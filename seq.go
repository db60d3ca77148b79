package skiplist

import "iter"

// All returns an iterator over all key-value pairs in ascending key order.
// The list must not be modified while the sequence is being ranged over.
//
//	for k, v := range sl.All() {
//		// ...
//	}
func (sl *SkipList[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		sl.Range(yield)
	}
}

// Backward returns an iterator over all key-value pairs in descending key order.
func (sl *SkipList[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for current := sl.last(); current != nil; current = current.backward {
			if !yield(current.key, current.value) {
				return
			}
		}
	}
}

// From returns an iterator over the pairs with key >= start, in ascending order.
func (sl *SkipList[K, V]) From(start K) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for current := sl.findGreaterOrEqual(start); current != nil; current = current.forward[0] {
			if !yield(current.key, current.value) {
				return
			}
		}
	}
}
