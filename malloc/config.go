package malloc

import "fmt"

import s "github.com/bnclabs/gosettings"
import sigar "github.com/cloudfoundry/gosigar"

// Alignment backing buffers and slab sizes are rounded to 8-byte
// boundary, alignment requests up to this value come free of cost.
const Alignment = int64(8)

// Maxarenasize maximum size of a backing buffer. Can be used as
// default for configuration parameter `capacity`.
const Maxarenasize = int64(1024 * 1024 * 1024 * 1024) // 1TB

// Maxchunks maximum number of slabs allowed in a pool, slab indexes
// are tracked as 16-bit numbers in the free-list.
const Maxchunks = int64(65536)

// Defaultsettings for allocators in this package.
//
// "allocator" (string, default: "bump")
//		Inner allocation policy for NewArena, can be "bump" or "pool".
//
// "slabsize" (int64, default: 96)
//		Fixed chunk size for pool allocators, shall be a multiple
//		of Alignment.
//
// "capacity" (int64, default: computed)
//		Size in bytes for backing buffers created via Newarenabuffer.
//		Default is a small fraction of free system memory.
//
func Defaultsettings() s.Settings {
	_, _, free := getsysmem()
	capacity := int64(free / 128)
	if capacity > Maxarenasize {
		capacity = Maxarenasize
	} else if capacity == 0 {
		capacity = int64(1024 * 1024)
	}
	return s.Settings{
		"allocator": "bump",
		"slabsize":  int64(96),
		"capacity":  capacity,
	}
}

// Newarenabuffer create a backing buffer of `capacity` bytes, for
// hosts that do not hand one in. The returned buffer is owned by the
// caller and shall be given to exactly one allocator.
func Newarenabuffer(setts s.Settings) []byte {
	setts = make(s.Settings).Mixin(Defaultsettings(), setts)
	capacity := setts.Int64("capacity")
	if capacity <= 0 || capacity > Maxarenasize {
		panicerr("capacity %v out of range (0, %v]", capacity, Maxarenasize)
	}
	return make([]byte, capacity)
}

func getsysmem() (total, used, free uint64) {
	mem := sigar.Mem{}
	mem.Get()
	return mem.Total, mem.Used, mem.Free
}

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}
