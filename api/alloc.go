package api

import "unsafe"

// Mallocer interface for custom memory management over a fixed size
// backing buffer. Implementations return failures as ordinary error
// values and shall not panic on the allocation path.
type Mallocer interface {
	// Alloc a chunk of `n` bytes whose address is aligned to `align`
	// bytes, where align shall be a power of 2. A zero byte request
	// is valid, it returns a usable pointer distinct from every other
	// live chunk. Fails with ErrorOutofMemory when the backing buffer
	// cannot satisfy size and alignment.
	Alloc(n, align int64) (ptr unsafe.Pointer, err error)

	// Resize chunk to newsize without moving it, `size` is the
	// chunk's current length. Policies without the book-keeping to
	// resize shall fail with ErrorUnsupportedOp and leave every
	// chunk untouched.
	Resize(ptr unsafe.Pointer, size, newsize int64) error

	// Free chunk. Policies that cannot reclaim individual chunks
	// treat this as a silent no-op, callers are free to call Free
	// unconditionally.
	Free(ptr unsafe.Pointer)

	// Realloc chunk to newsize, relocating it when required. When
	// relocated, minimum of size and newsize bytes are copied into
	// the new chunk before the pointer is returned.
	Realloc(ptr unsafe.Pointer, size, newsize int64) (unsafe.Pointer, error)

	// Info of memory accounting for this allocator.
	Info() (capacity, heap, alloc, overhead int64)

	// Release this allocator's hold on its backing buffer. Allocators
	// never own the buffer, Release only forgets it.
	Release()
}

// Resetter is the optional bulk reclamation capability. Reset
// invalidates every chunk issued since construction, or since the
// previous Reset, and makes the entire backing buffer allocatable
// again. Callers shall guarantee that no stale pointer is used across
// a Reset, allocators do not enforce this.
type Resetter interface {
	Reset()
}
