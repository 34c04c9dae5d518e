package sparse

import "reflect"

// buffer owns the contiguous slot storage of a Vector. Slot lifetime is
// tracked externally by the occupancy table; the buffer itself only moves
// memory around and never decides which slots are live.
type buffer[T any] struct {
	slots []T
	alloc Allocator[T]

	// clearOnDestroy is true when T holds pointers, in which case erased
	// slots are zeroed so the GC can reclaim what they referenced. For
	// pointer-free types a stale value in a free slot is unobservable.
	clearOnDestroy bool
}

func newBuffer[T any](alloc Allocator[T], capacity int) buffer[T] {
	b := buffer[T]{
		alloc:          alloc,
		clearOnDestroy: typeHasPointers(reflect.TypeFor[T]()),
	}
	if capacity > 0 {
		b.slots = alloc.Allocate(capacity)
	}
	return b
}

func (b *buffer[T]) cap() int {
	return len(b.slots)
}

// destroy ends the lifetime of the element at index.
func (b *buffer[T]) destroy(index int) {
	if b.clearOnDestroy {
		var zero T
		b.slots[index] = zero
	}
}

// relocate swaps the storage for a buffer of the given capacity, carrying
// over the overlapping prefix. The new buffer is fully acquired before the
// old one is released, so a failed allocation leaves the original intact.
func (b *buffer[T]) relocate(capacity int) {
	next := b.alloc.Allocate(capacity)
	copy(next, b.slots)
	b.release()
	b.slots = next
}

// release returns the storage to the allocator. Live elements must already
// have been destroyed or moved out.
func (b *buffer[T]) release() {
	if b.slots == nil {
		return
	}
	if b.clearOnDestroy {
		clear(b.slots)
	}
	b.alloc.Deallocate(b.slots)
	b.slots = nil
}

// typeHasPointers reports whether values of t contain pointers the GC cares
// about.
func typeHasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && typeHasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if typeHasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		// Pointers, slices, maps, channels, funcs, strings, interfaces.
		return true
	}
}
