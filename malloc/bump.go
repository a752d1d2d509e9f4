// Functions and methods are not thread safe.

package malloc

import "fmt"
import "unsafe"

import "github.com/bnclabs/gomem/api"
import humanize "github.com/dustin/go-humanize"

// Bump monotonic allocator over a caller-owned backing buffer. The
// allocation offset only ever moves forward, individual chunks cannot
// be reclaimed, Reset reclaims the entire buffer in one call.
type Bump struct {
	// 64-bit aligned stats
	nallocs int64

	buf      []byte // keeps the backing array reachable
	base     unsafe.Pointer
	capacity int64
	offset   int64

	logprefix string
}

// NewBump create a bump allocator over buf. The buffer stays owned by
// the caller, its lifetime shall exceed the allocator's, and it shall
// not be shared with another allocator instance.
func NewBump(buf []byte) *Bump {
	base, capacity := alignbuffer(buf)
	if capacity > Maxarenasize {
		panicerr("bump buffer cannot exceed %v bytes (%v)", Maxarenasize, capacity)
	}
	bump := &Bump{buf: buf, base: base, capacity: capacity}
	bump.logprefix = fmt.Sprintf("BUMP [%p]", base)
	infof("%v started with capacity %v\n",
		bump.logprefix, humanize.IBytes(uint64(capacity)))
	return bump
}

//---- operations

// Alloc implement api.Mallocer{} interface.
func (bump *Bump) Alloc(n, align int64) (unsafe.Pointer, error) {
	if !ispow2(align) || n < 0 {
		return nil, api.ErrorUnsupportedOp
	} else if n == 0 {
		// degenerate chunk, consumes one byte so that every live
		// chunk keeps a distinct address.
		n = 1
	}
	off := int64(alignup(uintptr(bump.base)+uintptr(bump.offset), align) -
		uintptr(bump.base))
	if off > bump.capacity || n > bump.capacity-off {
		return nil, api.ErrorOutofMemory
	}
	ptr := unsafe.Pointer(uintptr(bump.base) + uintptr(off))
	bump.offset = off + n
	bump.nallocs++
	initblock(ptr, n)
	return ptr, nil
}

// Resize implement api.Mallocer{} interface. Bump keeps no record of
// chunk boundaries, so it conservatively refuses every resize path.
func (bump *Bump) Resize(ptr unsafe.Pointer, size, newsize int64) error {
	return api.ErrorUnsupportedOp
}

// Free implement api.Mallocer{} interface, a no-op for bump policy.
func (bump *Bump) Free(ptr unsafe.Pointer) {
	debugf("%v Free is a no-op for bump policy\n", bump.logprefix)
}

// Realloc implement api.Mallocer{} interface.
func (bump *Bump) Realloc(
	ptr unsafe.Pointer, size, newsize int64) (unsafe.Pointer, error) {

	return nil, api.ErrorUnsupportedOp
}

// Reset implement api.Resetter{} interface, move the allocation
// offset back to the base of the buffer. Chunks issued so far are
// invalidated all at once, callers shall guarantee that none of them
// is used after this call.
func (bump *Bump) Reset() {
	bump.offset, bump.nallocs = 0, 0
	debugf("%v reset\n", bump.logprefix)
}

//---- statistics and maintenance

// Info implement api.Mallocer{} interface.
func (bump *Bump) Info() (capacity, heap, alloc, overhead int64) {
	self := int64(unsafe.Sizeof(*bump))
	return bump.capacity, bump.capacity, bump.offset, self
}

// Allocated return number of bytes handed out and not yet reclaimed.
func (bump *Bump) Allocated() int64 {
	return bump.offset
}

// Available return number of bytes free in the backing buffer.
func (bump *Bump) Available() int64 {
	return bump.capacity - bump.offset
}

// Release implement api.Mallocer{} interface, forget the backing
// buffer. Subsequent Alloc calls fail with ErrorOutofMemory.
func (bump *Bump) Release() {
	infof("%v released\n", bump.logprefix)
	bump.buf, bump.base = nil, nil
	bump.capacity, bump.offset, bump.nallocs = 0, 0, 0
}
