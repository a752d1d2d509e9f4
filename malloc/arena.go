// Functions and methods are not thread safe.

package malloc

import "fmt"
import "unsafe"

import "github.com/bnclabs/gomem/api"
import s "github.com/bnclabs/gosettings"

// Arena groups many allocations under one lifetime. The mechanics of
// finding free bytes stay with the inner allocator, the arena only
// decides when everything is reclaimed, via Reset. Every chunk issued
// by the arena comes out of the inner allocator's backing buffer.
type Arena struct {
	inner     api.Mallocer
	logprefix string
}

// NewArena create an arena over buf, constructing the inner allocator
// from setts.
//
// "allocator" (string, default: "bump")
//		Inner allocation policy, can be "bump" or "pool".
//
// Settings for the chosen policy, like "slabsize", are forwarded.
func NewArena(buf []byte, setts s.Settings) *Arena {
	setts = make(s.Settings).Mixin(Defaultsettings(), setts)
	var inner api.Mallocer
	allocator := setts.String("allocator")
	switch allocator {
	case "bump":
		inner = NewBump(buf)
	case "pool":
		inner = NewPool(buf, setts)
	default:
		panicerr("unknown allocator %q", allocator)
	}
	arena := &Arena{inner: inner}
	arena.logprefix = fmt.Sprintf("ARENA [%v]", allocator)
	infof("%v started ...\n", arena.logprefix)
	return arena
}

// Wraparena create an arena over a caller supplied inner allocator.
// For bulk reclamation to work the inner allocator shall implement
// api.Resetter{}.
func Wraparena(inner api.Mallocer) *Arena {
	arena := &Arena{inner: inner, logprefix: "ARENA [wrapped]"}
	infof("%v started ...\n", arena.logprefix)
	return arena
}

//---- operations, all of them forward to the inner allocator.

// Alloc implement api.Mallocer{} interface.
func (arena *Arena) Alloc(n, align int64) (unsafe.Pointer, error) {
	return arena.inner.Alloc(n, align)
}

// Resize implement api.Mallocer{} interface.
func (arena *Arena) Resize(ptr unsafe.Pointer, size, newsize int64) error {
	return arena.inner.Resize(ptr, size, newsize)
}

// Free implement api.Mallocer{} interface.
func (arena *Arena) Free(ptr unsafe.Pointer) {
	arena.inner.Free(ptr)
}

// Realloc implement api.Mallocer{} interface.
func (arena *Arena) Realloc(
	ptr unsafe.Pointer, size, newsize int64) (unsafe.Pointer, error) {

	return arena.inner.Realloc(ptr, size, newsize)
}

// Reset implement api.Resetter{} interface, reclaim the entire
// backing region in one call. Every pointer issued since the arena
// was created, or last reset, is invalidated simultaneously. This is
// the only way to reclaim memory from an arena over a bump allocator.
func (arena *Arena) Reset() {
	if resetter, ok := arena.inner.(api.Resetter); ok {
		resetter.Reset()
		return
	}
	errorf("%v inner allocator cannot reset\n", arena.logprefix)
}

//---- statistics and maintenance

// Info implement api.Mallocer{} interface.
func (arena *Arena) Info() (capacity, heap, alloc, overhead int64) {
	return arena.inner.Info()
}

// Release implement api.Mallocer{} interface.
func (arena *Arena) Release() {
	arena.inner.Release()
	infof("%v released\n", arena.logprefix)
}
