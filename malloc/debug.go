//go:build debug
// +build debug

package malloc

import "unsafe"

// poison fresh chunks so that stale reads stand out.
func initblock(block unsafe.Pointer, size int64) {
	dst := unsafe.Slice((*byte)(block), size)
	initsz := int64(len(poolblkinit))
	for off := int64(0); off < size; off += initsz {
		copy(dst[off:], poolblkinit)
	}
}
