// Package malloc supplies custom memory management over fixed,
// caller-owned backing buffers. Note that Types and Functions exported
// by this package are not thread safe, wrap allocators with Locked
// before sharing them across goroutines.
//
// Three allocation policies are supplied, all of them implementing
// the api.Mallocer interface:
//
// Bump is a monotonic allocator, it only ever advances an offset
// into its buffer. Allocation is O(1), individual chunks cannot be
// reclaimed, Reset reclaims the whole buffer in one call.
//
// Pool slices its buffer into equal sized slabs and maintains a
// free-list of slab indexes. Allocation and Free are both O(1) and
// individual slabs cycle between allocated and free for the life of
// the pool.
//
// Arena delegates allocation to an inner allocator, typically a Bump,
// and adds bulk reclamation as a lifetime policy. How free bytes are
// found is the inner allocator's business, when everything is
// reclaimed is the arena's.
package malloc
