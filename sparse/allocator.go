package sparse

// Allocator supplies raw slot storage for a Vector. Every buffer the
// container acquires or releases goes through its Allocator, so callers can
// substitute pooling or arena strategies without touching the container.
//
// Allocate must return a zeroed slice of exactly n slots. Deallocate receives
// a buffer previously obtained from Allocate; the container guarantees it no
// longer reads or writes the buffer afterwards.
type Allocator[T any] interface {
	Allocate(n int) []T
	Deallocate(buf []T)
}

// heapAllocator is the default allocator: plain make, release to the GC.
type heapAllocator[T any] struct{}

func (heapAllocator[T]) Allocate(n int) []T { return make([]T, n) }

func (heapAllocator[T]) Deallocate([]T) {}

// PoolAllocator retains released buffers and hands them back out for later
// allocations of the same capacity, trading memory for fewer allocations
// under push/erase churn. Buffers are zeroed before reuse.
type PoolAllocator[T any] struct {
	bufs map[int][][]T
}

// NewPoolAllocator creates an empty buffer pool.
func NewPoolAllocator[T any]() *PoolAllocator[T] {
	return &PoolAllocator[T]{
		bufs: make(map[int][][]T),
	}
}

// Allocate returns a pooled buffer of exactly n slots if one is available,
// otherwise a fresh one.
func (p *PoolAllocator[T]) Allocate(n int) []T {
	if free := p.bufs[n]; len(free) > 0 {
		buf := free[len(free)-1]
		p.bufs[n] = free[:len(free)-1]
		clear(buf)
		return buf
	}
	return make([]T, n)
}

// Deallocate returns a buffer to the pool.
func (p *PoolAllocator[T]) Deallocate(buf []T) {
	if len(buf) == 0 {
		return
	}
	p.bufs[len(buf)] = append(p.bufs[len(buf)], buf)
}

// Pooled reports how many buffers are currently held for reuse.
func (p *PoolAllocator[T]) Pooled() int {
	total := 0
	for _, free := range p.bufs {
		total += len(free)
	}
	return total
}
