// Package sparse provides a contiguous container that hands out stable
// integer handles for inserted elements, with O(1) erase by handle, slot
// reuse, and iteration that skips holes via bit-scan.
package sparse

import "math/bits"

// ChunkSize is the number of slots covered by one occupancy word. Capacity
// is always a multiple of it.
const ChunkSize = 64

// Vector stores elements of type T in allocator-backed contiguous storage.
// Push assigns the lowest free slot index and returns it as the element's
// handle; the handle stays valid until the slot is erased. Erasing never
// moves surviving elements.
//
// A Vector is not safe for concurrent use.
type Vector[T any] struct {
	buf  buffer[T]
	occ  occupancyTable
	free freeChunkSet
	size int
}

// New creates a Vector with one chunk of capacity and a dense occupancy
// table.
func New[T any]() *Vector[T] {
	return NewWithCapacity[T](ChunkSize)
}

// NewWithCapacity creates a Vector with at least the given capacity, rounded
// up to a chunk multiple and never below one chunk.
func NewWithCapacity[T any](capacity int) *Vector[T] {
	return NewWithAllocator[T](heapAllocator[T]{}, capacity)
}

// NewWithAllocator creates a Vector that routes all storage through alloc.
func NewWithAllocator[T any](alloc Allocator[T], capacity int) *Vector[T] {
	capacity = roundUpCapacity(capacity)
	chunks := uint32(capacity / ChunkSize)
	return &Vector[T]{
		buf:  newBuffer(alloc, capacity),
		occ:  newDenseTable(chunks),
		free: newFreeChunkSet(chunks),
	}
}

// NewSparse creates a Vector whose occupancy table is an int-keyed map
// holding only chunks with at least one live slot. Prefer it when live
// indices cluster far apart across a large capacity.
func NewSparse[T any]() *Vector[T] {
	v := NewWithCapacity[T](ChunkSize)
	v.occ = newSparseTable()
	return v
}

func roundUpCapacity(capacity int) int {
	if capacity < ChunkSize {
		return ChunkSize
	}
	if rem := capacity % ChunkSize; rem != 0 {
		capacity += ChunkSize - rem
	}
	return capacity
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int {
	return v.size
}

// Cap returns the number of slots currently backed by storage.
func (v *Vector[T]) Cap() int {
	return v.buf.cap()
}

// Empty reports whether the Vector holds no live elements.
func (v *Vector[T]) Empty() bool {
	return v.size == 0
}

// Push stores value in the lowest free slot, growing the Vector if every
// slot is occupied, and returns the slot index as the element's handle.
func (v *Vector[T]) Push(value T) int {
	index := v.freeIndex()
	v.place(index, value)
	return index
}

// Insert stores value at a caller-chosen free slot, bypassing free-index
// discovery. The index must be within capacity and the slot must be free;
// otherwise Insert panics.
func (v *Vector[T]) Insert(index int, value T) {
	if index < 0 || index >= v.buf.cap() {
		panic("insert index out of range")
	}
	if v.occ.test(chunkOf(index), bitOf(index)) {
		panic("insert into an occupied slot")
	}
	v.place(index, value)
}

// Erase frees the slot at index and destroys its element. Surviving
// elements keep their handles. Erasing a free or out-of-range index panics.
func (v *Vector[T]) Erase(index int) {
	if index < 0 || index >= v.buf.cap() {
		panic("erase index out of range")
	}
	chunk, bit := chunkOf(index), bitOf(index)
	if !v.occ.test(chunk, bit) {
		panic("erase of a free slot")
	}
	if v.occ.full(chunk) {
		v.free.add(chunk)
	}
	v.occ.clear(chunk, bit)
	v.buf.destroy(index)
	v.size--
}

// At returns a pointer to the slot at index without checking liveness. The
// index must be within capacity. Reading a free slot is the caller's
// mistake; use Get when liveness is in question.
func (v *Vector[T]) At(index int) *T {
	return &v.buf.slots[index]
}

// Get returns a pointer to the element at index, or false when the index is
// out of range or the slot is free.
func (v *Vector[T]) Get(index int) (*T, bool) {
	if !v.Has(index) {
		return nil, false
	}
	return &v.buf.slots[index], true
}

// Has reports whether index addresses a live element.
func (v *Vector[T]) Has(index int) bool {
	if index < 0 || index >= v.buf.cap() {
		return false
	}
	return v.occ.test(chunkOf(index), bitOf(index))
}

// Clear destroys every live element, releases the storage, and resets the
// Vector to its initial one-chunk capacity.
func (v *Vector[T]) Clear() {
	v.buf.release()
	v.buf.slots = v.buf.alloc.Allocate(ChunkSize)
	v.occ.reset()
	v.occ.grow(1)
	v.free.reset()
	v.free.add(0)
	v.size = 0
}

// ShrinkToFit drops trailing chunks with no live slots, reallocating to the
// smallest chunk-multiple capacity that still covers every live element. An
// empty Vector releases its storage entirely.
func (v *Vector[T]) ShrinkToFit() {
	if v.size == 0 {
		v.buf.release()
		v.occ.reset()
		v.free.reset()
		return
	}

	chunks := v.chunks()
	keep := chunks
	for keep > 0 && v.occ.word(keep-1) == 0 {
		keep--
	}
	if keep == chunks {
		return
	}

	v.buf.relocate(int(keep) * ChunkSize)
	v.occ.truncate(keep)
	v.free.reset()
	for chunk := uint32(0); chunk < keep; chunk++ {
		if !v.occ.full(chunk) {
			v.free.add(chunk)
		}
	}
}

// Clone returns a deep copy with independent storage. Every live element
// keeps its handle in the copy. The allocator is shared with the original.
func (v *Vector[T]) Clone() *Vector[T] {
	out := &Vector[T]{
		buf:  newBuffer(v.buf.alloc, v.buf.cap()),
		occ:  v.occ.clone(),
		free: v.free.clone(),
		size: v.size,
	}
	copy(out.buf.slots, v.buf.slots)
	return out
}

// Move transfers the storage, occupancy table, and free registry to a new
// Vector and leaves the receiver valid and empty with no storage. A
// subsequent Push on the receiver grows it from zero.
func (v *Vector[T]) Move() *Vector[T] {
	out := &Vector[T]{
		buf:  v.buf,
		occ:  v.occ,
		free: v.free,
		size: v.size,
	}
	v.buf = buffer[T]{alloc: v.buf.alloc, clearOnDestroy: v.buf.clearOnDestroy}
	v.occ = out.occ.fresh()
	v.free = newFreeChunkSet(0)
	v.size = 0
	return out
}

func (v *Vector[T]) chunks() uint32 {
	return uint32(v.buf.cap() / ChunkSize)
}

// freeIndex picks the lowest free slot index, doubling capacity first when
// no chunk has room. The slot is not marked occupied yet; place does that
// together with storing the element.
func (v *Vector[T]) freeIndex() int {
	if v.free.empty() {
		v.grow(2 * v.buf.cap())
	}
	chunk, _ := v.free.lowest()
	bit := bits.TrailingZeros64(^v.occ.word(chunk))
	return int(chunk)*ChunkSize + bit
}

func (v *Vector[T]) place(index int, value T) {
	chunk, bit := chunkOf(index), bitOf(index)
	v.occ.set(chunk, bit)
	if v.occ.full(chunk) {
		v.free.remove(chunk)
	}
	v.buf.slots[index] = value
	v.size++
}

// grow extends storage to the given capacity; added chunks are fully free.
// Doubling from zero capacity yields one chunk.
func (v *Vector[T]) grow(capacity int) {
	capacity = roundUpCapacity(capacity)
	oldChunks := v.chunks()
	v.buf.relocate(capacity)
	chunks := v.chunks()
	v.occ.grow(chunks)
	for chunk := oldChunks; chunk < chunks; chunk++ {
		v.free.add(chunk)
	}
}

func chunkOf(index int) uint32 {
	return uint32(index / ChunkSize)
}

func bitOf(index int) uint {
	return uint(index % ChunkSize)
}
