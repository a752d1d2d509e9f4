package malloc

import "sync"
import "unsafe"

import "github.com/bnclabs/gomem/api"

// Locked add mutual exclusion over an inner allocator. The baseline
// allocators provide no synchronization of their own, sharing one
// instance across goroutines requires this wrapper, or an equivalent
// discipline at the call site.
type Locked struct {
	mu    sync.Mutex
	inner api.Mallocer
}

// Newlocked wrap inner for concurrent use.
func Newlocked(inner api.Mallocer) *Locked {
	return &Locked{inner: inner}
}

// Alloc implement api.Mallocer{} interface.
func (l *Locked) Alloc(n, align int64) (unsafe.Pointer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Alloc(n, align)
}

// Resize implement api.Mallocer{} interface.
func (l *Locked) Resize(ptr unsafe.Pointer, size, newsize int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Resize(ptr, size, newsize)
}

// Free implement api.Mallocer{} interface.
func (l *Locked) Free(ptr unsafe.Pointer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.inner.Free(ptr)
}

// Realloc implement api.Mallocer{} interface.
func (l *Locked) Realloc(
	ptr unsafe.Pointer, size, newsize int64) (unsafe.Pointer, error) {

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Realloc(ptr, size, newsize)
}

// Reset implement api.Resetter{} interface, when the inner allocator
// supports it.
func (l *Locked) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if resetter, ok := l.inner.(api.Resetter); ok {
		resetter.Reset()
	}
}

// Info implement api.Mallocer{} interface.
func (l *Locked) Info() (capacity, heap, alloc, overhead int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Info()
}

// Release implement api.Mallocer{} interface.
func (l *Locked) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.inner.Release()
}
