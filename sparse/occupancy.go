package sparse

import "github.com/kamstrup/intmap"

// fullWord is an occupancy word with every slot of the chunk live.
const fullWord = ^uint64(0)

// occupancyTable tracks, per 64-slot chunk, which slots hold a live element.
// Bit b of a chunk's word is set when slot chunk*ChunkSize+b is live; the
// least significant bit is the lowest slot index.
//
// Two implementations exist: a dense word-per-chunk slice and a sparse
// int-keyed map where an absent chunk is entirely free. Both satisfy the same
// contract; a Vector commits to one at construction.
type occupancyTable interface {
	test(chunk uint32, bit uint) bool
	set(chunk uint32, bit uint)
	clear(chunk uint32, bit uint)
	full(chunk uint32) bool
	// word returns the chunk's raw occupancy word, 0 for chunks it has
	// never materialized.
	word(chunk uint32) uint64
	// grow extends coverage to chunks [0, chunks); new chunks are free.
	grow(chunks uint32)
	// truncate drops every chunk at or above the given count.
	truncate(chunks uint32)
	reset()
	clone() occupancyTable
	// fresh returns an empty table of the same representation.
	fresh() occupancyTable
}

// denseTable keeps one word per chunk, indexed directly.
type denseTable struct {
	words []uint64
}

func newDenseTable(chunks uint32) *denseTable {
	return &denseTable{words: make([]uint64, chunks)}
}

func (t *denseTable) test(chunk uint32, bit uint) bool {
	return t.words[chunk]&(1<<bit) != 0
}

func (t *denseTable) set(chunk uint32, bit uint) {
	t.words[chunk] |= 1 << bit
}

func (t *denseTable) clear(chunk uint32, bit uint) {
	t.words[chunk] &^= 1 << bit
}

func (t *denseTable) full(chunk uint32) bool {
	return t.words[chunk] == fullWord
}

func (t *denseTable) word(chunk uint32) uint64 {
	if chunk >= uint32(len(t.words)) {
		return 0
	}
	return t.words[chunk]
}

func (t *denseTable) grow(chunks uint32) {
	if chunks <= uint32(len(t.words)) {
		return
	}
	words := make([]uint64, chunks)
	copy(words, t.words)
	t.words = words
}

func (t *denseTable) truncate(chunks uint32) {
	if chunks < uint32(len(t.words)) {
		t.words = t.words[:chunks:chunks]
	}
}

func (t *denseTable) reset() {
	t.words = nil
}

func (t *denseTable) clone() occupancyTable {
	words := make([]uint64, len(t.words))
	copy(words, t.words)
	return &denseTable{words: words}
}

func (t *denseTable) fresh() occupancyTable {
	return newDenseTable(0)
}

// sparseTable maps chunk index to occupancy word. Chunks with no live slot
// carry no entry, which keeps memory proportional to the occupied region when
// live indices are clustered.
type sparseTable struct {
	words *intmap.Map[uint32, uint64]
}

func newSparseTable() *sparseTable {
	return &sparseTable{words: intmap.New[uint32, uint64](16)}
}

func (t *sparseTable) test(chunk uint32, bit uint) bool {
	w, _ := t.words.Get(chunk)
	return w&(1<<bit) != 0
}

func (t *sparseTable) set(chunk uint32, bit uint) {
	w, _ := t.words.Get(chunk)
	t.words.Put(chunk, w|1<<bit)
}

func (t *sparseTable) clear(chunk uint32, bit uint) {
	w, _ := t.words.Get(chunk)
	w &^= 1 << bit
	if w == 0 {
		t.words.Del(chunk)
		return
	}
	t.words.Put(chunk, w)
}

func (t *sparseTable) full(chunk uint32) bool {
	w, _ := t.words.Get(chunk)
	return w == fullWord
}

func (t *sparseTable) word(chunk uint32) uint64 {
	w, _ := t.words.Get(chunk)
	return w
}

// grow is a no-op: absent chunks already read as free.
func (t *sparseTable) grow(uint32) {}

func (t *sparseTable) truncate(chunks uint32) {
	var dead []uint32
	t.words.ForEach(func(chunk uint32, _ uint64) bool {
		if chunk >= chunks {
			dead = append(dead, chunk)
		}
		return true
	})
	for _, chunk := range dead {
		t.words.Del(chunk)
	}
}

func (t *sparseTable) reset() {
	t.words = intmap.New[uint32, uint64](16)
}

func (t *sparseTable) clone() occupancyTable {
	out := newSparseTable()
	t.words.ForEach(func(chunk uint32, w uint64) bool {
		out.words.Put(chunk, w)
		return true
	})
	return out
}

func (t *sparseTable) fresh() occupancyTable {
	return newSparseTable()
}
