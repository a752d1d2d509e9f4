package api

import "errors"

// ErrorOutofMemory requested size and alignment cannot be satisfied
// from the remaining backing buffer, or every pool slab is in use.
var ErrorOutofMemory = errors.New("malloc.outofmemory")

// ErrorUnsupportedOp operation is not supported by the allocation
// policy, recoverable, callers can fall back to another strategy.
var ErrorUnsupportedOp = errors.New("malloc.unsupportedop")

// ErrorInvalidPointer pointer was not issued by this allocator, or
// the chunk it names was already released.
var ErrorInvalidPointer = errors.New("malloc.invalidpointer")
