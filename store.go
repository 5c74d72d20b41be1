package vram

import (
	"fmt"
	"sync/atomic"

	"github.com/gogpu/vram/internal/lru"
)

// DefaultAvailableMemory is the budget used when Config leaves
// AvailableMemory zero.
const DefaultAvailableMemory uint64 = 1<<31 - 1

// Config holds configuration for creating a Store.
type Config struct {
	// AvailableMemory is the video-memory budget in bytes.
	// Defaults to DefaultAvailableMemory if 0.
	AvailableMemory uint64
}

// nextStoreID issues store ids, used to tell stores apart in errors
// and log records.
var nextStoreID atomic.Uint64

// occupancyKey names one bind point: resources of different kinds may
// occupy the same slot simultaneously.
type occupancyKey struct {
	slot Slot
	kind Kind
}

// runtime is the live backend allocation materialized for a
// descriptor. It exists only inside the store's runtime table; all
// mutation routes through the store.
type runtime struct {
	handle     Handle
	byteLength uint64
	node       lru.Handle
	bindings   map[Slot]struct{}
}

// inUse reports whether the runtime is bound to any slot.
func (rt *runtime) inUse() bool {
	return len(rt.bindings) > 0
}

// Store is a budget-enforcing cache and allocator for GPU resources.
// It owns the memory budget, the recency line, the runtime table and
// the slot occupancy map; descriptors hold only their id and a
// reference back to their store.
//
// A Store is NOT safe for concurrent use: it expects to be driven from
// a single render goroutine. Re-entrant calls, such as a restorer
// calling back in during an eviction pass, fail with ErrReentrantCall.
type Store struct {
	id      uint64
	backend Backend

	availableMemory uint64
	usedMemory      uint64

	line        *lru.List[ResourceID]
	descriptors map[ResourceID]*Descriptor
	runtimes    map[ResourceID]*runtime
	occupancy   map[occupancyKey]ResourceID

	evictions uint64

	// busy is held for a whole public operation, including the eviction
	// pass and any restorer it runs.
	busy   bool
	closed bool
}

// New creates a store over a backend.
func New(backend Backend, cfg Config) *Store {
	available := cfg.AvailableMemory
	if available == 0 {
		available = DefaultAvailableMemory
	}

	return &Store{
		id:              nextStoreID.Add(1),
		backend:         backend,
		availableMemory: available,
		line:            lru.New[ResourceID](),
		descriptors:     make(map[ResourceID]*Descriptor),
		runtimes:        make(map[ResourceID]*runtime),
		occupancy:       make(map[occupancyKey]ResourceID),
	}
}

// ID returns the store id.
func (s *Store) ID() uint64 {
	return s.id
}

// AvailableMemory returns the budget in bytes.
func (s *Store) AvailableMemory() uint64 {
	return s.availableMemory
}

// UsedMemory returns the bytes currently held by live runtimes. It can
// exceed AvailableMemory when every resident resource is bound or
// unfree; callers that pin heavily should watch this.
func (s *Store) UsedMemory() uint64 {
	return s.usedMemory
}

// SetAvailableMemory replaces the budget. Lowering it below current
// usage triggers an eviction pass.
func (s *Store) SetAvailableMemory(bytes uint64) error {
	if err := s.enter(); err != nil {
		return err
	}
	defer s.leave()

	s.availableMemory = bytes
	s.free()
	return nil
}

// Register binds a descriptor to this store without materializing it.
// The first store a descriptor meets owns it for life: registering it
// with a second store fails with ErrAlreadyRegistered and leaves the
// first store's bookkeeping untouched. Registering twice with the same
// store is a no-op.
func (s *Store) Register(d *Descriptor) error {
	if err := s.enter(); err != nil {
		return err
	}
	defer s.leave()

	return s.register(d)
}

// Use materializes the descriptor's runtime if needed, binds it to the
// slot, flushes its pending writes and finishes with an eviction pass.
//
// A warm resource is touched to the front of the recency line. A cold
// one allocates a backend object sized from its layout and format and
// is charged against the budget. Either way the slot must be free or
// already held by this resource, or Use fails with ErrSlotOccupied.
func (s *Store) Use(d *Descriptor, slot Slot) error {
	if err := s.enter(); err != nil {
		return err
	}
	defer s.leave()

	if err := s.register(d); err != nil {
		return err
	}

	key := occupancyKey{slot: slot, kind: d.layout.Kind}
	if owner, held := s.occupancy[key]; held && owner != d.id {
		return fmt.Errorf("%w: slot %d (%v) held by resource %d",
			ErrSlotOccupied, slot, d.layout.Kind, owner)
	}

	rt := s.runtimes[d.id]
	if rt == nil {
		handle, err := s.backend.CreateObject(d.layout, d.format)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCreationFailed, err)
		}

		rt = &runtime{
			handle:     handle,
			byteLength: d.layout.ByteLength(d.format),
			node:       s.line.PushFront(d.id),
			bindings:   make(map[Slot]struct{}),
		}
		s.runtimes[d.id] = rt
		s.usedMemory += rt.byteLength
		s.applyParameters(d, rt)

		slogger().Debug("vram: materialized resource",
			"store", s.id, "id", uint64(d.id), "name", d.name, "bytes", rt.byteLength)
	} else {
		s.line.MoveToFront(rt.node)
		if d.paramsDirty {
			s.applyParameters(d, rt)
		}
	}

	s.backend.Bind(rt.handle, slot)
	rt.bindings[slot] = struct{}{}
	s.occupancy[key] = d.id

	if err := s.flush(d, rt); err != nil {
		return err
	}

	s.free()
	return nil
}

// Unuse unbinds the resource from the slot and clears the occupancy
// entry. The runtime and its place in the recency line stay warm; only
// eviction or release destroy it.
func (s *Store) Unuse(d *Descriptor, slot Slot) error {
	if err := s.enter(); err != nil {
		return err
	}
	defer s.leave()

	if d.released {
		return ErrReleased
	}
	if d.store != s {
		if d.store == nil {
			return ErrUninitialized
		}
		return ErrAlreadyRegistered
	}
	rt := s.runtimes[d.id]
	if rt == nil {
		return ErrUninitialized
	}
	if _, bound := rt.bindings[slot]; !bound {
		return nil
	}

	delete(rt.bindings, slot)
	key := occupancyKey{slot: slot, kind: d.layout.Kind}
	if s.occupancy[key] == d.id {
		delete(s.occupancy, key)
	}
	s.backend.Unbind(slot)

	return nil
}

// Unregister tears down all bookkeeping for a descriptor: the backend
// object, slot bindings, recency node and memory accounting. The
// descriptor itself stays bound to this store and may be used again,
// starting cold.
func (s *Store) Unregister(d *Descriptor) error {
	if err := s.enter(); err != nil {
		return err
	}
	defer s.leave()

	if d.store != s {
		if d.store == nil {
			return nil
		}
		return ErrAlreadyRegistered
	}
	s.drop(d)
	return nil
}

// Close deletes every backend object the store still holds and marks
// the store unusable. Descriptors registered here are left released.
func (s *Store) Close() error {
	if err := s.enter(); err != nil {
		return err
	}
	defer s.leave()

	for _, rt := range s.runtimes {
		for slot := range rt.bindings {
			s.backend.Unbind(slot)
		}
		s.backend.DeleteObject(rt.handle)
	}
	for id, d := range s.descriptors {
		d.released = true
		delete(s.descriptors, id)
	}

	s.runtimes = make(map[ResourceID]*runtime)
	s.occupancy = make(map[occupancyKey]ResourceID)
	s.line.Clear()
	s.usedMemory = 0
	s.closed = true

	return nil
}

// Stats contains a snapshot of the store's accounting.
type Stats struct {
	// AvailableBytes is the budget in bytes.
	AvailableBytes uint64

	// UsedBytes is the bytes held by live runtimes.
	UsedBytes uint64

	// Residents is the number of live runtimes.
	Residents int

	// Registered is the number of registered descriptors, resident or
	// not.
	Registered int

	// Evictions is the total number of runtimes evicted.
	Evictions uint64

	// Utilization is UsedBytes over AvailableBytes.
	Utilization float64
}

// String returns a human-readable string of store stats.
func (st Stats) String() string {
	return fmt.Sprintf("Store[%.1f%% used, %d/%d KB, %d resident, %d registered, %d evictions]",
		st.Utilization*100,
		st.UsedBytes/1024,
		st.AvailableBytes/1024,
		st.Residents,
		st.Registered,
		st.Evictions)
}

// Stats returns a snapshot of the store's accounting.
func (s *Store) Stats() Stats {
	var utilization float64
	if s.availableMemory > 0 {
		utilization = float64(s.usedMemory) / float64(s.availableMemory)
	}
	return Stats{
		AvailableBytes: s.availableMemory,
		UsedBytes:      s.usedMemory,
		Residents:      len(s.runtimes),
		Registered:     len(s.descriptors),
		Evictions:      s.evictions,
		Utilization:    utilization,
	}
}

// enter begins a public operation, failing fast on re-entry.
func (s *Store) enter() error {
	if s.busy {
		return ErrReentrantCall
	}
	if s.closed {
		return ErrStoreClosed
	}
	s.busy = true
	return nil
}

// leave ends a public operation.
func (s *Store) leave() {
	s.busy = false
}

// register binds a descriptor to this store, enforcing single-store
// ownership for the descriptor's lifetime.
func (s *Store) register(d *Descriptor) error {
	if d.released {
		return ErrReleased
	}
	if d.store == nil {
		d.store = s
	} else if d.store != s {
		return ErrAlreadyRegistered
	}
	if _, ok := s.descriptors[d.id]; !ok {
		s.descriptors[d.id] = d
	}
	return nil
}

// drop removes every trace of a descriptor from the store. Teardown
// order: slots and the backend object go first, bookkeeping second, so
// the store never holds a handle to a deleted object.
func (s *Store) drop(d *Descriptor) {
	if rt := s.runtimes[d.id]; rt != nil {
		for slot := range rt.bindings {
			key := occupancyKey{slot: slot, kind: d.layout.Kind}
			if s.occupancy[key] == d.id {
				delete(s.occupancy, key)
			}
			s.backend.Unbind(slot)
		}
		s.backend.DeleteObject(rt.handle)
		s.usedMemory -= rt.byteLength
		s.line.Remove(rt.node)
		delete(s.runtimes, d.id)
	}
	delete(s.descriptors, d.id)
}

// flush uploads the descriptor's pending writes in FIFO order.
// Successfully uploaded writes leave the queue even when a later one
// fails.
func (s *Store) flush(d *Descriptor, rt *runtime) error {
	for len(d.queue) > 0 {
		w := d.queue[0]
		if err := s.backend.Upload(rt.handle, w); err != nil {
			return fmt.Errorf("vram: upload level %d region %v: %w", w.Level, w.Region, err)
		}
		d.queue = d.queue[1:]
	}
	return nil
}

// applyParameters pushes the descriptor's sampling parameters to the
// backend, if it supports them.
func (s *Store) applyParameters(d *Descriptor, rt *runtime) {
	if applier, ok := s.backend.(ParameterApplier); ok && len(d.params) > 0 {
		applier.ApplyParameters(rt.handle, d.params)
	}
	d.paramsDirty = false
}

// free evicts least-recently-used resources until the budget is
// satisfied or no evictable candidates remain. Bound and unfree
// resources are skipped in place; eviction never removes more than
// necessary and never reorders survivors.
func (s *Store) free() {
	if s.usedMemory <= s.availableMemory {
		return
	}

	h, ok := s.line.Oldest()
	for ok && s.usedMemory > s.availableMemory {
		// Capture the neighbor before mutating at the cursor.
		next, nextOK := s.line.Newer(h)
		s.tryEvict(h)
		h, ok = next, nextOK
	}

	if s.usedMemory > s.availableMemory {
		slogger().Warn("vram: over budget after eviction pass; remaining residents are bound or unfree",
			"store", s.id, "used", s.usedMemory, "available", s.availableMemory)
	}
}

// tryEvict evicts the resource at one recency node if it is evictable.
// The restorer runs first and its writes are queued on the descriptor,
// so the next Use rebuilds content write-for-write.
func (s *Store) tryEvict(h lru.Handle) {
	id, ok := s.line.Key(h)
	if !ok {
		return
	}

	d := s.descriptors[id]
	if d == nil {
		// Stale entry with no owner: ordinary cleanup, not an error.
		s.line.Remove(h)
		return
	}
	rt := s.runtimes[id]
	if rt == nil {
		s.line.Remove(h)
		return
	}
	if rt.inUse() || d.policy.kind != PolicyRestorable {
		return
	}

	restores := s.collectRestore(d)

	s.backend.DeleteObject(rt.handle)
	s.usedMemory -= rt.byteLength
	s.line.Remove(h)
	delete(s.runtimes, id)
	s.evictions++

	// Restore writes run before whatever the caller queued after.
	d.queue = append(restores, d.queue...)

	slogger().Debug("vram: evicted resource",
		"store", s.id, "id", uint64(id), "name", d.name, "bytes", rt.byteLength)
}

// collectRestore runs the descriptor's restorer against a queue that
// cannot reach back into the store. The busy flag stays held, so a
// restorer that smuggles a store reference anyway gets
// ErrReentrantCall instead of corrupting the line mid-walk.
func (s *Store) collectRestore(d *Descriptor) []Write {
	if d.policy.restorer == nil {
		return nil
	}
	q := &RestoreQueue{layout: d.layout, format: d.format}
	d.policy.restorer.Restore(q)
	return q.writes
}
