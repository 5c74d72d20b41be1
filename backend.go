package vram

// Handle is an opaque reference to a backend object. Each Backend
// implementation maintains the mapping between handles and its actual
// GPU resources. The zero handle is never a live object.
type Handle uint64

// NilHandle is the zero value, representing no object.
const NilHandle Handle = 0

// Slot is a named bind point a materialized resource may occupy, such
// as a texture unit. At most one resource per (slot, kind) pair is
// bound at a time.
type Slot uint32

// Backend is the narrow capability surface the store needs from a
// graphics API. Implementations own object creation, destruction,
// uploads and binding; the store owns budgets, recency and policy.
//
// CreateObject allocates storage for every mip level of the layout up
// front. Upload writes one region of one level; the store only passes
// writes it has already validated against the object's layout and
// format. Bind and Unbind may not fail: bind-point contention is
// resolved by the store before it gets here.
type Backend interface {
	CreateObject(layout Layout, format Format) (Handle, error)
	DeleteObject(h Handle)
	Upload(h Handle, w Write) error
	Bind(h Handle, slot Slot)
	Unbind(slot Slot)
}

// ParameterApplier is implemented by backends that can apply sampling
// parameters. The store applies parameters through it at
// materialization; backends without sampler support simply don't
// implement it.
type ParameterApplier interface {
	ApplyParameters(h Handle, params []Parameter)
}
