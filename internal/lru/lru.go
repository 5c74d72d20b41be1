// Package lru implements the recency line used for video-memory
// eviction. It is a doubly linked most-/least-recently-used list whose
// nodes live in an arena and are addressed by generation-checked
// handles, so a stale handle held across a removal is detected instead
// of corrupting the line.
//
// The list is not thread-safe; callers must handle synchronization.
package lru

// none marks an empty neighbor or extreme slot.
const none = -1

// Handle addresses a node in a List. The zero Handle is invalid.
// A Handle stays valid until the node it names is removed; after that
// every operation on it reports failure.
type Handle struct {
	index int32
	gen   uint32
}

// IsZero reports whether the handle has never been issued by a List.
func (h Handle) IsZero() bool {
	return h.gen == 0
}

// node is an arena slot. Links are arena indices rather than pointers.
type node[K any] struct {
	key   K
	gen   uint32
	newer int32
	older int32
	live  bool
}

// List is a doubly-linked list for LRU eviction.
//
// The front is the most recently used, the back is least recently used.
// All operations are O(1) given a Handle; callers that want O(1)
// updates must retain the Handle returned by PushFront, not just the
// key.
type List[K any] struct {
	nodes  []node[K]
	free   []int32
	newest int32
	oldest int32
	len    int
}

// New creates an empty list.
func New[K any]() *List[K] {
	return &List[K]{newest: none, oldest: none}
}

// Len returns the number of nodes in the list.
func (l *List[K]) Len() int {
	return l.len
}

// lookup resolves a handle, returning nil for stale or foreign handles.
func (l *List[K]) lookup(h Handle) *node[K] {
	if h.gen == 0 || h.index < 0 || int(h.index) >= len(l.nodes) {
		return nil
	}
	n := &l.nodes[h.index]
	if !n.live || n.gen != h.gen {
		return nil
	}
	return n
}

// PushFront adds a new node at the front (most recently used) and
// returns its handle.
func (l *List[K]) PushFront(key K) Handle {
	var idx int32
	if n := len(l.free); n > 0 {
		idx = l.free[n-1]
		l.free = l.free[:n-1]
	} else {
		l.nodes = append(l.nodes, node[K]{})
		idx = int32(len(l.nodes) - 1)
	}

	n := &l.nodes[idx]
	n.key = key
	n.gen++
	n.live = true
	n.newer = none
	n.older = l.newest

	if l.newest != none {
		l.nodes[l.newest].newer = idx
	} else {
		l.oldest = idx
	}
	l.newest = idx
	l.len++

	return Handle{index: idx, gen: n.gen}
}

// MoveToFront moves an existing node to the front (most recently used).
// Moving the current front node is a no-op. Returns false if the
// handle is stale.
func (l *List[K]) MoveToFront(h Handle) bool {
	n := l.lookup(h)
	if n == nil {
		return false
	}
	if l.newest == h.index {
		return true
	}

	l.unlink(h.index)

	n.older = l.newest
	n.newer = none
	if l.newest != none {
		l.nodes[l.newest].newer = h.index
	} else {
		l.oldest = h.index
	}
	l.newest = h.index

	return true
}

// Remove removes a node from the list and recycles its arena slot.
// The handle, and any copy of it, becomes stale. Returns false if the
// handle already was.
func (l *List[K]) Remove(h Handle) bool {
	n := l.lookup(h)
	if n == nil {
		return false
	}

	l.unlink(h.index)

	var zero K
	n.key = zero
	n.live = false
	l.free = append(l.free, h.index)
	l.len--

	return true
}

// Newest returns the most recently used node.
// Returns false if the list is empty.
func (l *List[K]) Newest() (Handle, bool) {
	if l.newest == none {
		return Handle{}, false
	}
	return Handle{index: l.newest, gen: l.nodes[l.newest].gen}, true
}

// Oldest returns the least recently used node.
// Returns false if the list is empty.
func (l *List[K]) Oldest() (Handle, bool) {
	if l.oldest == none {
		return Handle{}, false
	}
	return Handle{index: l.oldest, gen: l.nodes[l.oldest].gen}, true
}

// Newer returns the neighbor one step toward the most recently used
// end. Eviction walks the line oldest to newest with this, capturing
// the neighbor before mutating at the cursor.
func (l *List[K]) Newer(h Handle) (Handle, bool) {
	n := l.lookup(h)
	if n == nil || n.newer == none {
		return Handle{}, false
	}
	return Handle{index: n.newer, gen: l.nodes[n.newer].gen}, true
}

// Older returns the neighbor one step toward the least recently used
// end.
func (l *List[K]) Older(h Handle) (Handle, bool) {
	n := l.lookup(h)
	if n == nil || n.older == none {
		return Handle{}, false
	}
	return Handle{index: n.older, gen: l.nodes[n.older].gen}, true
}

// Key returns the key stored in a node.
func (l *List[K]) Key(h Handle) (K, bool) {
	n := l.lookup(h)
	if n == nil {
		var zero K
		return zero, false
	}
	return n.key, true
}

// Clear removes all nodes. Every outstanding handle becomes stale.
func (l *List[K]) Clear() {
	for i := range l.nodes {
		if l.nodes[i].live {
			var zero K
			l.nodes[i].key = zero
			l.nodes[i].live = false
			l.free = append(l.free, int32(i))
		}
	}
	l.newest = none
	l.oldest = none
	l.len = 0
}

// unlink detaches a live node from its neighbors, fixing either
// extreme if affected. The node's own links are left dangling; callers
// relink or retire the slot.
func (l *List[K]) unlink(idx int32) {
	n := &l.nodes[idx]

	if n.newer != none {
		l.nodes[n.newer].older = n.older
	} else {
		l.newest = n.older
	}

	if n.older != none {
		l.nodes[n.older].newer = n.newer
	} else {
		l.oldest = n.newer
	}

	n.newer = none
	n.older = none
}
