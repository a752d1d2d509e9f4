package malloc

import "testing"
import "unsafe"

import s "github.com/bnclabs/gosettings"
import "github.com/stretchr/testify/require"

import "github.com/bnclabs/gomem/api"

func TestNewpool(t *testing.T) {
	buf := make([]byte, 64*100)
	pool := NewPool(buf, s.Settings{"slabsize": int64(64)})
	require.Equal(t, int64(64), pool.Slabsize())
	capacity, _, alloc, _ := pool.Info()
	require.Equal(t, int64(6400), capacity)
	require.Equal(t, int64(0), alloc)
	pool.Release()

	// panic cases
	require.Panics(t, func() {
		NewPool(buf, s.Settings{"slabsize": int64(63)})
	})
	require.Panics(t, func() {
		NewPool(make([]byte, 32), s.Settings{"slabsize": int64(64)})
	})
}

func TestPoolExhaustion(t *testing.T) {
	n := 100
	buf := make([]byte, 64*n)
	pool := NewPool(buf, s.Settings{"slabsize": int64(64)})

	ptrs := make([]unsafe.Pointer, 0, n)
	seen := map[unsafe.Pointer]bool{}
	for i := 0; i < n; i++ {
		ptr, err := pool.Alloc(64, 8)
		require.NoError(t, err)
		require.False(t, seen[ptr], "slab %p handed out twice", ptr)
		seen[ptr] = true
		ptrs = append(ptrs, ptr)
	}
	// (N+1)th allocation fails with pool exhaustion.
	_, err := pool.Alloc(64, 8)
	require.Equal(t, api.ErrorOutofMemory, err)

	// freeing one slab makes exactly one allocation succeed.
	pool.Free(ptrs[42])
	ptr, err := pool.Alloc(64, 8)
	require.NoError(t, err)
	require.Equal(t, ptrs[42], ptr)
	_, err = pool.Alloc(64, 8)
	require.Equal(t, api.ErrorOutofMemory, err)

	pool.Release()
}

func TestPoolReuse(t *testing.T) {
	buf := make([]byte, 64*100)
	pool := NewPool(buf, s.Settings{"slabsize": int64(64)})

	ptr1, err := pool.Alloc(10, 8)
	require.NoError(t, err)
	ptr2, err := pool.Alloc(10, 8)
	require.NoError(t, err)
	require.NotEqual(t, ptr1, ptr2)

	pool.Free(ptr1)
	ptr3, err := pool.Alloc(10, 8)
	require.NoError(t, err)
	require.Equal(t, ptr1, ptr3)

	pool.Release()
}

func TestPoolOversize(t *testing.T) {
	buf := make([]byte, 64*100)
	pool := NewPool(buf, s.Settings{"slabsize": int64(64)})

	// larger than slabsize shall fail, never truncate.
	_, err := pool.Alloc(65, 8)
	require.Equal(t, api.ErrorOutofMemory, err)
	require.Equal(t, int64(0), pool.Allocated())

	// the failure leaves the pool usable.
	_, err = pool.Alloc(64, 8)
	require.NoError(t, err)
	require.Equal(t, int64(64), pool.Allocated())

	pool.Release()
}

func TestPoolInvalidFree(t *testing.T) {
	buf := make([]byte, 64*10)
	pool := NewPool(buf, s.Settings{"slabsize": int64(64)})
	ptr, err := pool.Alloc(64, 8)
	require.NoError(t, err)

	// nil, foreign and misaligned pointers are ignored.
	var x int64
	pool.Free(nil)
	pool.Free(unsafe.Pointer(&x))
	pool.Free(unsafe.Pointer(uintptr(ptr) + 1))
	require.Equal(t, int64(64), pool.Allocated())

	// double free is ignored.
	pool.Free(ptr)
	require.Equal(t, int64(0), pool.Allocated())
	pool.Free(ptr)
	require.Equal(t, int64(0), pool.Allocated())

	pool.Release()
}

func TestPoolResize(t *testing.T) {
	buf := make([]byte, 64*10)
	pool := NewPool(buf, s.Settings{"slabsize": int64(64)})
	ptr, err := pool.Alloc(32, 8)
	require.NoError(t, err)

	// in place within the slab.
	require.NoError(t, pool.Resize(ptr, 32, 64))
	nptr, err := pool.Realloc(ptr, 32, 48)
	require.NoError(t, err)
	require.Equal(t, ptr, nptr)

	// beyond the slab.
	require.Equal(t, api.ErrorOutofMemory, pool.Resize(ptr, 32, 65))
	_, err = pool.Realloc(ptr, 32, 65)
	require.Equal(t, api.ErrorOutofMemory, err)

	// pointers this pool never issued.
	var x int64
	require.Equal(t, api.ErrorInvalidPointer,
		pool.Resize(unsafe.Pointer(&x), 32, 48))

	pool.Release()
}

func TestPoolReset(t *testing.T) {
	buf := make([]byte, 64*10)
	pool := NewPool(buf, s.Settings{"slabsize": int64(64)})
	for i := 0; i < 10; i++ {
		_, err := pool.Alloc(64, 8)
		require.NoError(t, err)
	}
	require.Equal(t, float64(100), pool.Utilization())

	pool.Reset()
	require.Equal(t, int64(0), pool.Allocated())
	require.Equal(t, int64(640), pool.Available())
	for i := 0; i < 10; i++ {
		_, err := pool.Alloc(64, 8)
		require.NoError(t, err)
	}

	pool.Release()
}

func TestPoolZerosize(t *testing.T) {
	buf := make([]byte, 64*10)
	pool := NewPool(buf, s.Settings{"slabsize": int64(64)})
	ptr1, err := pool.Alloc(0, 1)
	require.NoError(t, err)
	ptr2, err := pool.Alloc(0, 1)
	require.NoError(t, err)
	require.NotEqual(t, ptr1, ptr2)
	pool.Release()
}

func BenchmarkPoolAlloc(b *testing.B) {
	buf := make([]byte, 96*1024)
	pool := NewPool(buf, s.Settings{"slabsize": int64(96)})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ptr, err := pool.Alloc(96, 8)
		if err != nil {
			b.Fatalf("unexpected %v", err)
		}
		pool.Free(ptr)
	}
}

func BenchmarkPoolFree(b *testing.B) {
	buf := make([]byte, 96*1024)
	pool := NewPool(buf, s.Settings{"slabsize": int64(96)})
	ptrs := make([]unsafe.Pointer, 0, 1024)
	for i := 0; i < 1024; i++ {
		ptr, _ := pool.Alloc(96, 8)
		ptrs = append(ptrs, ptr)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.Free(ptrs[i%1024])
	}
}
