package vram

import (
	"image"
	"sync/atomic"
)

// ResourceID uniquely identifies a resource for its Descriptor's
// lifetime. IDs are never reused within a process.
type ResourceID uint64

// nextResourceID issues ResourceIDs. Descriptor construction is the
// only cross-goroutine-safe entry point in the package, so creation
// can happen on loader goroutines before a descriptor is handed to
// the render goroutine.
var nextResourceID atomic.Uint64

// Descriptor is a caller-owned handle describing a GPU resource: its
// immutable layout and format, sampling parameters, memory policy and
// a FIFO queue of pending writes.
//
// A Descriptor starts unregistered. Its first Use with a Store binds
// it to that Store for its whole lifetime; using it with a second
// Store fails with ErrAlreadyRegistered. When the caller is done, it
// must call Release so the Store can drop all bookkeeping and the
// backend object.
type Descriptor struct {
	id     ResourceID
	name   string
	layout Layout
	format Format
	params []Parameter
	policy MemoryPolicy
	queue  []Write

	// store is set on first registration and never changes.
	store    *Store
	released bool

	// paramsDirty is set when parameters change after materialization;
	// the next Use re-applies them.
	paramsDirty bool
}

// NewDescriptor creates an unregistered descriptor. The layout and
// format are validated here once; every later size computation assumes
// they are coherent.
func NewDescriptor(layout Layout, format Format, policy MemoryPolicy) (*Descriptor, error) {
	if err := layout.validate(format); err != nil {
		return nil, err
	}
	return &Descriptor{
		id:     ResourceID(nextResourceID.Add(1)),
		layout: layout,
		format: format,
		policy: policy,
	}, nil
}

// ID returns the descriptor's resource id.
func (d *Descriptor) ID() ResourceID {
	return d.id
}

// Layout returns the descriptor's layout.
func (d *Descriptor) Layout() Layout {
	return d.layout
}

// Format returns the descriptor's format.
func (d *Descriptor) Format() Format {
	return d.format
}

// SetName sets an optional debug name, used as a backend label and in
// log records.
func (d *Descriptor) SetName(name string) {
	d.name = name
}

// Name returns the debug name, if any.
func (d *Descriptor) Name() string {
	return d.name
}

// ByteLength returns the bytes a materialized runtime of this
// descriptor occupies.
func (d *Descriptor) ByteLength() uint64 {
	return d.layout.ByteLength(d.format)
}

// SetMemoryPolicy replaces the eviction strategy. If a runtime already
// exists, the new policy takes effect on the next eviction pass; it
// does not retroactively evict or pin anything.
func (d *Descriptor) SetMemoryPolicy(policy MemoryPolicy) {
	d.policy = policy
}

// MemoryPolicyKind returns the kind of the current policy.
func (d *Descriptor) MemoryPolicyKind() PolicyKind {
	return d.policy.kind
}

// SetParameter sets a sampling parameter, replacing any previous
// parameter of the same kind. Parameters set after materialization
// are re-applied on the next use.
func (d *Descriptor) SetParameter(p Parameter) {
	d.paramsDirty = true
	for i := range d.params {
		if d.params[i].Kind == p.Kind {
			d.params[i] = p
			return
		}
	}
	d.params = append(d.params, p)
}

// Parameters returns a copy of the current parameter set.
func (d *Descriptor) Parameters() []Parameter {
	out := make([]Parameter, len(d.params))
	copy(out, d.params)
	return out
}

// Enqueue appends a pending write. The write is validated against the
// descriptor's layout and format before it is accepted: the region
// must fit the level and the data length must exactly equal the
// computed size, or the write is rejected with ErrSizeMismatch.
func (d *Descriptor) Enqueue(w Write) error {
	if d.released {
		return ErrReleased
	}
	w.Region = w.Region.normalized()
	if err := validateWrite(d.layout, d.format, w); err != nil {
		return err
	}
	d.queue = append(d.queue, w)
	return nil
}

// EnqueueWrite appends a pending write of raw texel data for a region
// of one mip level.
func (d *Descriptor) EnqueueWrite(data []byte, region Region, level int) error {
	return d.Enqueue(Write{Level: level, Region: region, Data: data})
}

// EnqueueImage appends a full-layer write converted from an image,
// scaled to the level extent when sizes differ. Only 4-byte
// RGBA-class formats accept image sources; others fail with
// ErrFormatMismatch.
func (d *Descriptor) EnqueueImage(src image.Image, level, layer int) error {
	if d.released {
		return ErrReleased
	}
	w, err := imageWrite(d.layout, d.format, src, level, layer)
	if err != nil {
		return err
	}
	d.queue = append(d.queue, w)
	return nil
}

// PendingWrites returns the number of writes waiting to flush.
func (d *Descriptor) PendingWrites() int {
	return len(d.queue)
}

// Released reports whether Release has been called.
func (d *Descriptor) Released() bool {
	return d.released
}

// Release drops the descriptor's runtime (if any) and all Store
// bookkeeping for it, then marks the descriptor unusable. The backend
// object is deleted before the descriptor's own state is cleared.
// Releasing an unregistered or already-released descriptor is a no-op.
func (d *Descriptor) Release() error {
	if d.released {
		return nil
	}
	if d.store != nil {
		if err := d.store.Unregister(d); err != nil {
			return err
		}
	}
	d.released = true
	d.queue = nil
	return nil
}
