// Package vram manages GPU-backed resources against a bounded
// video-memory budget.
//
// Callers describe resources with a Descriptor (layout, format,
// pending writes, memory policy) and hand them to a Store, which
// lazily materializes backend objects, tracks which are bound to a
// slot, and evicts least-recently-used resources when the budget is
// exceeded. Evicted resources are transparently rebuilt on next use
// from writes produced by their Restorer.
//
// The concrete graphics API is abstracted behind the narrow Backend
// interface; see the backend/wgpu subpackage for a gogpu/wgpu
// implementation.
//
// A Store and its Descriptors are NOT safe for concurrent use. They
// are meant to be driven from a single render goroutine; a re-entrant
// call into a Store during one of its own operations fails fast with
// ErrReentrantCall instead of corrupting the recency line.
package vram
