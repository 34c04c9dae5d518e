package sparse_test

import (
	"fmt"

	"github.com/guardeat/sparse-vector/sparse"
)

// ExampleVector demonstrates the basic handle lifecycle. Push returns a
// stable index for each element; erasing frees the slot for reuse without
// disturbing the indices of surviving elements.
func ExampleVector() {
	v := sparse.New[string]()

	ship := v.Push("ship")
	rock := v.Push("rock")
	crew := v.Push("crew")

	v.Erase(rock)
	flare := v.Push("flare") // reuses the freed slot

	fmt.Println("ship:", ship, "crew:", crew, "flare:", flare)
	for index, name := range v.All() {
		fmt.Println(index, *name)
	}

	// Output:
	// ship: 0 crew: 2 flare: 1
	// 0 ship
	// 1 flare
	// 2 crew
}

// ExampleVector_From shows iteration from an arbitrary starting index. The
// sequence begins at the first live slot at or after the start.
func ExampleVector_From() {
	v := sparse.New[int]()
	for i := 0; i < 6; i++ {
		v.Push(i * 10)
	}
	v.Erase(3)

	for index, value := range v.From(3) {
		fmt.Println(index, *value)
	}

	// Output:
	// 4 40
	// 5 50
}

// ExampleNewWithAllocator routes all storage through a caller-supplied
// allocator, here a pooling one that recycles buffers across growth.
func ExampleNewWithAllocator() {
	pool := sparse.NewPoolAllocator[int]()
	v := sparse.NewWithAllocator[int](pool, sparse.ChunkSize)

	for i := 0; i <= sparse.ChunkSize; i++ {
		v.Push(i)
	}

	fmt.Println("len:", v.Len())
	fmt.Println("cap:", v.Cap())
	fmt.Println("pooled buffers:", pool.Pooled())

	// Output:
	// len: 65
	// cap: 128
	// pooled buffers: 1
}
