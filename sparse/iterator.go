package sparse

import (
	"iter"
	"math/bits"
)

// All yields the index and a pointer to every live element in ascending
// index order. Holes are skipped a chunk at a time: each occupancy word is
// bit-scanned, so a fully free chunk costs one comparison.
//
// The sequence reads the Vector lazily; it is invalidated by any mutation
// (Push, Insert, Erase, growth, shrink, Clear).
func (v *Vector[T]) All() iter.Seq2[int, *T] {
	return v.From(0)
}

// Values yields pointers to the live elements in ascending index order.
func (v *Vector[T]) Values() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for _, item := range v.From(0) {
			if !yield(item) {
				return
			}
		}
	}
}

// From yields live elements starting at the first live index at or after
// start, in ascending index order.
func (v *Vector[T]) From(start int) iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		if start < 0 {
			start = 0
		}
		chunks := v.chunks()
		for chunk := chunkOf(start); chunk < chunks; chunk++ {
			word := v.occ.word(chunk)
			if chunk == chunkOf(start) {
				// Mask off slots below the starting index.
				word &= fullWord << bitOf(start)
			}
			for word != 0 {
				bit := bits.TrailingZeros64(word)
				index := int(chunk)*ChunkSize + bit
				if !yield(index, &v.buf.slots[index]) {
					return
				}
				word &= word - 1
			}
		}
	}
}
