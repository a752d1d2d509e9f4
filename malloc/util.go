package malloc

import "unsafe"

// alignup round addr up to the next multiple of align, align shall be
// a power of 2.
func alignup(addr uintptr, align int64) uintptr {
	mask := uintptr(align - 1)
	return (addr + mask) &^ mask
}

func ispow2(align int64) bool {
	return align > 0 && (align&(align-1)) == 0
}

// alignbuffer align buffer's base address to Alignment boundary,
// usable capacity shrinks by the pad bytes.
func alignbuffer(buf []byte) (unsafe.Pointer, int64) {
	if len(buf) == 0 {
		panicerr("empty backing buffer")
	}
	base := uintptr(unsafe.Pointer(&buf[0]))
	aligned := alignup(base, Alignment)
	capacity := int64(len(buf)) - int64(aligned-base)
	if capacity <= 0 {
		panicerr("buffer of %v bytes too small to align", len(buf))
	}
	return unsafe.Pointer(aligned), capacity
}

func ceil(divident, divisor int64) int64 {
	if divident%divisor == 0 {
		return divident / divisor
	}
	return (divident / divisor) + 1
}

var poolblkinit = make([]byte, 1024)
var zeroblkinit = make([]byte, 1024)

func init() {
	for i := 0; i < len(poolblkinit); i++ {
		poolblkinit[i] = 0xff
	}
}
