// Package gomem implement a small family of memory allocators for
// programs that must live within a fixed budget of memory, like
// sandboxed linear-memory runtimes where there is no operating system
// heap to fall back on.
//
// api:
//
// Interface specification to access gomem allocators. Calling code
// shall depend only on this package, so that allocation policies can
// be swapped without touching call sites.
//
// lib:
//
// Convinience functions that can be used by other packages. Package
// shall not import packages other than golang's standard packages.
//
// malloc:
//
// Custom memory management over caller-owned backing buffers. Three
// policies are supplied, a monotonic bump allocator, a fixed slab-size
// pool allocator and an arena wrapper that adds bulk reclamation over
// any inner allocator.
package gomem
