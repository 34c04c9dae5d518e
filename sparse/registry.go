package sparse

import "github.com/bits-and-blooms/bitset"

// freeChunkSet is the registry of chunks with at least one free slot. It
// mirrors the occupancy table: a chunk is a member exactly while its
// occupancy word is not all ones. Membership is a bit per chunk, so finding
// the lowest free chunk is a single scan.
type freeChunkSet struct {
	chunks *bitset.BitSet
}

// newFreeChunkSet registers chunks [0, chunks) as free.
func newFreeChunkSet(chunks uint32) freeChunkSet {
	s := freeChunkSet{chunks: bitset.New(uint(chunks))}
	for chunk := uint32(0); chunk < chunks; chunk++ {
		s.chunks.Set(uint(chunk))
	}
	return s
}

func (s *freeChunkSet) add(chunk uint32) {
	s.chunks.Set(uint(chunk))
}

func (s *freeChunkSet) remove(chunk uint32) {
	s.chunks.Clear(uint(chunk))
}

// lowest returns the smallest registered chunk index. The tie-break for slot
// reuse lives here: the lowest chunk always wins.
func (s *freeChunkSet) lowest() (uint32, bool) {
	chunk, ok := s.chunks.NextSet(0)
	return uint32(chunk), ok
}

func (s *freeChunkSet) empty() bool {
	return s.chunks.None()
}

func (s *freeChunkSet) reset() {
	s.chunks.ClearAll()
}

func (s *freeChunkSet) clone() freeChunkSet {
	return freeChunkSet{chunks: s.chunks.Clone()}
}
