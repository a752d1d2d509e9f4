// Functions and methods are not thread safe.

package malloc

import "fmt"
import "unsafe"

import "github.com/bnclabs/gomem/api"
import "github.com/bnclabs/gomem/lib"
import s "github.com/bnclabs/gosettings"
import humanize "github.com/dustin/go-humanize"

// Pool manages a backing buffer sliced up into equal sized slabs.
// Free slabs are tracked by a free-list of slab indexes, the slab
// index, not the address, is the primary handle internally. Addresses
// are translated back to indexes only at the Free/Resize boundary.
type Pool struct {
	// 64-bit aligned stats
	mallocated int64

	buf      []byte // keeps the backing array reachable
	base     unsafe.Pointer
	capacity int64
	slabsize int64
	nblocks  int64
	freelist []uint16 // free slab indexes, allocation pops from tail
	freeoff  int
	occupied []uint8 // slab occupancy bitmap, guards invalid release

	logprefix string
}

// NewPool create a pool allocator over buf, slicing it into slabs of
// `slabsize` bytes picked from setts. Slabsize shall be a multiple of
// Alignment and the number of slabs is capped at Maxchunks, any tail
// bytes beyond the last whole slab are left unused.
func NewPool(buf []byte, setts s.Settings) *Pool {
	setts = make(s.Settings).Mixin(Defaultsettings(), setts)
	slabsize := setts.Int64("slabsize")
	if slabsize <= 0 || (slabsize%Alignment) != 0 {
		panicerr("slabsize %v shall be a multiple of %v", slabsize, Alignment)
	}
	base, capacity := alignbuffer(buf)
	nblocks := capacity / slabsize
	if nblocks == 0 {
		fmsg := "buffer of %v bytes cannot hold a single %v byte slab"
		panicerr(fmsg, capacity, slabsize)
	} else if nblocks > Maxchunks {
		nblocks = Maxchunks
	}
	pool := &Pool{
		buf:      buf,
		base:     base,
		capacity: nblocks * slabsize,
		slabsize: slabsize,
		nblocks:  nblocks,
		freelist: make([]uint16, nblocks),
		freeoff:  int(nblocks - 1),
		occupied: make([]uint8, ceil(nblocks, 8)),
	}
	for i := int64(0); i < nblocks; i++ {
		pool.freelist[i] = uint16(i)
	}
	pool.logprefix = fmt.Sprintf("POOL [%v:%v]", slabsize, nblocks)
	infof("%v started with capacity %v\n",
		pool.logprefix, humanize.IBytes(uint64(pool.capacity)))
	return pool
}

//---- operations

// Alloc implement api.Mallocer{} interface. Requests larger than the
// slabsize fail with ErrorOutofMemory, they can never be satisfied by
// this pool. Alignments up to Alignment always hold, coarser ones are
// honoured only when the candidate slab happens to fall on the
// requested boundary.
func (pool *Pool) Alloc(n, align int64) (unsafe.Pointer, error) {
	if !ispow2(align) || n < 0 {
		return nil, api.ErrorUnsupportedOp
	} else if n > pool.slabsize {
		return nil, api.ErrorOutofMemory
	} else if pool.freeoff < 0 {
		return nil, api.ErrorOutofMemory // pool exhausted
	}
	nthblock := int64(pool.freelist[pool.freeoff])
	ptr := uintptr(pool.base) + uintptr(nthblock*pool.slabsize)
	if align > Alignment && (ptr&uintptr(align-1)) != 0 {
		return nil, api.ErrorUnsupportedOp
	}
	pool.freelist = pool.freelist[:pool.freeoff]
	pool.freeoff--
	pool.setoccupied(nthblock)
	pool.mallocated += pool.slabsize
	initblock(unsafe.Pointer(ptr), pool.slabsize)
	return unsafe.Pointer(ptr), nil
}

// Resize implement api.Mallocer{} interface, in-place resize holds
// trivially as long as newsize fits within the slab.
func (pool *Pool) Resize(ptr unsafe.Pointer, size, newsize int64) error {
	if _, ok := pool.slabindex(ptr); !ok {
		return api.ErrorInvalidPointer
	} else if newsize > pool.slabsize {
		return api.ErrorOutofMemory
	}
	return nil
}

// Free implement api.Mallocer{} interface, restore the slab to the
// free-list. Pointers that were not issued by this pool, and slabs
// that are already free, are ignored after logging, Free never
// panics.
func (pool *Pool) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		errorf("%v Free: nil pointer\n", pool.logprefix)
		return
	}
	nthblock, ok := pool.slabindex(ptr)
	if !ok {
		errorf("%v Free: invalid pointer %p\n", pool.logprefix, ptr)
		return
	}
	pool.clearoccupied(nthblock)
	pool.freelist = append(pool.freelist, uint16(nthblock))
	pool.freeoff++
	pool.mallocated -= pool.slabsize
}

// Realloc implement api.Mallocer{} interface. Within the slab the
// chunk never moves, beyond the slab no slab can hold it.
func (pool *Pool) Realloc(
	ptr unsafe.Pointer, size, newsize int64) (unsafe.Pointer, error) {

	if _, ok := pool.slabindex(ptr); !ok {
		return nil, api.ErrorInvalidPointer
	} else if newsize > pool.slabsize {
		return nil, api.ErrorOutofMemory
	}
	return ptr, nil
}

// Reset implement api.Resetter{} interface, restore every slab to the
// free-list. Callers shall guarantee that no chunk pointer is used
// after this call.
func (pool *Pool) Reset() {
	pool.freelist = pool.freelist[:pool.nblocks]
	for i := int64(0); i < pool.nblocks; i++ {
		pool.freelist[i] = uint16(i)
	}
	pool.freeoff = int(pool.nblocks - 1)
	for i := range pool.occupied {
		pool.occupied[i] = 0
	}
	pool.mallocated = 0
	debugf("%v reset\n", pool.logprefix)
}

//---- statistics and maintenance

// Slabsize return the fixed chunk size managed by this pool.
func (pool *Pool) Slabsize() int64 {
	return pool.slabsize
}

// Info implement api.Mallocer{} interface.
func (pool *Pool) Info() (capacity, heap, alloc, overhead int64) {
	self := int64(unsafe.Sizeof(*pool))
	slicesz := int64(cap(pool.freelist))*2 + int64(cap(pool.occupied))
	return pool.capacity, pool.capacity, pool.mallocated, self + slicesz
}

// Allocated return number of bytes handed out and not yet freed.
func (pool *Pool) Allocated() int64 {
	return pool.mallocated
}

// Available return number of bytes free with this pool.
func (pool *Pool) Available() int64 {
	return pool.capacity - pool.mallocated
}

// Utilization percentage of pool capacity handed out.
func (pool *Pool) Utilization() float64 {
	if pool.capacity == 0 {
		return 0
	}
	return (float64(pool.mallocated) / float64(pool.capacity)) * 100
}

// Release implement api.Mallocer{} interface, forget the backing
// buffer. Subsequent Alloc calls fail with ErrorOutofMemory.
func (pool *Pool) Release() {
	infof("%v released\n", pool.logprefix)
	pool.buf, pool.base = nil, nil
	pool.freelist, pool.freeoff, pool.occupied = nil, -1, nil
	pool.capacity, pool.nblocks, pool.mallocated = 0, 0, 0
}

//---- local functions

// slabindex translate chunk address to slab index, the only place
// where addresses flow back into index arithmetic. Returns false for
// addresses outside the pool, addresses that do not fall on a slab
// boundary and slabs that are not currently allocated.
func (pool *Pool) slabindex(ptr unsafe.Pointer) (int64, bool) {
	if ptr == nil || pool.base == nil {
		return -1, false
	}
	diffptr := uintptr(ptr) - uintptr(pool.base)
	nthblock := int64(diffptr / uintptr(pool.slabsize))
	if (diffptr%uintptr(pool.slabsize)) != 0 || nthblock >= pool.nblocks {
		return -1, false
	} else if pool.isoccupied(nthblock) == false {
		return -1, false
	}
	return nthblock, true
}

func (pool *Pool) isoccupied(nthblock int64) bool {
	q, r := nthblock>>3, uint8(nthblock&0x7)
	return lib.Bit8(pool.occupied[q]).Getbit(r)
}

func (pool *Pool) setoccupied(nthblock int64) {
	q, r := nthblock>>3, uint8(nthblock&0x7)
	pool.occupied[q] = lib.Bit8(pool.occupied[q]).Setbit(r)
}

func (pool *Pool) clearoccupied(nthblock int64) {
	q, r := nthblock>>3, uint8(nthblock&0x7)
	pool.occupied[q] = lib.Bit8(pool.occupied[q]).Clearbit(r)
}
