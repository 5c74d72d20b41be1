package vram

import "image"

// PolicyKind distinguishes the two memory policies.
type PolicyKind uint8

const (
	// PolicyUnfree marks a resource that is never evicted, regardless of
	// budget pressure.
	PolicyUnfree PolicyKind = iota

	// PolicyRestorable marks a resource the store may evict and rebuild
	// later from its restorer's writes.
	PolicyRestorable
)

// String returns a human-readable name for the policy kind.
func (k PolicyKind) String() string {
	switch k {
	case PolicyUnfree:
		return "Unfree"
	case PolicyRestorable:
		return "Restorable"
	default:
		return "Unknown"
	}
}

// MemoryPolicy describes whether a resource may be evicted and, if so,
// how its content is regenerated afterwards.
type MemoryPolicy struct {
	kind     PolicyKind
	restorer Restorer
}

// Unfree returns the policy that pins a resource in memory for as long
// as its runtime lives.
func Unfree() MemoryPolicy {
	return MemoryPolicy{kind: PolicyUnfree}
}

// Restorable returns the policy that lets the store evict a resource
// and repopulate it on next use with writes produced by r.
func Restorable(r Restorer) MemoryPolicy {
	return MemoryPolicy{kind: PolicyRestorable, restorer: r}
}

// Kind returns the policy kind.
func (p MemoryPolicy) Kind() PolicyKind {
	return p.kind
}

// Restorer regenerates a resource's content after eviction, typically
// by re-running whatever procedure produced it in the first place.
//
// Restore must only append writes to the queue it is given. It runs
// inside the store's eviction pass: calling back into the store from
// Restore fails with ErrReentrantCall.
type Restorer interface {
	Restore(q *RestoreQueue)
}

// RestorerFunc adapts a function to the Restorer interface.
type RestorerFunc func(q *RestoreQueue)

// Restore calls f.
func (f RestorerFunc) Restore(q *RestoreQueue) { f(q) }

// RestoreQueue collects the writes needed to fully repopulate an
// evicted resource. It validates against the resource's own layout and
// format, and deliberately exposes no path back into the store.
type RestoreQueue struct {
	layout Layout
	format Format
	writes []Write
}

// Layout returns the layout of the resource being restored.
func (q *RestoreQueue) Layout() Layout {
	return q.layout
}

// Format returns the format of the resource being restored.
func (q *RestoreQueue) Format() Format {
	return q.format
}

// Write appends one regenerated write. The same size rules as
// Descriptor.EnqueueWrite apply.
func (q *RestoreQueue) Write(data []byte, region Region, level int) error {
	w := Write{Level: level, Region: region.normalized(), Data: data}
	if err := validateWrite(q.layout, q.format, w); err != nil {
		return err
	}
	q.writes = append(q.writes, w)
	return nil
}

// Image appends a full-layer write converted from an image, scaled to
// the level extent when sizes differ. The same format rules as
// Descriptor.EnqueueImage apply.
func (q *RestoreQueue) Image(src image.Image, level, layer int) error {
	w, err := imageWrite(q.layout, q.format, src, level, layer)
	if err != nil {
		return err
	}
	q.writes = append(q.writes, w)
	return nil
}

// Len returns the number of writes collected so far.
func (q *RestoreQueue) Len() int {
	return len(q.writes)
}
