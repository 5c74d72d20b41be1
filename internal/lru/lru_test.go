package lru

import "testing"

// keysOldestFirst collects keys walking from the least recently used
// end toward the most recently used end.
func keysOldestFirst(l *List[string]) []string {
	var keys []string
	h, ok := l.Oldest()
	for ok {
		k, _ := l.Key(h)
		keys = append(keys, k)
		h, ok = l.Newer(h)
	}
	return keys
}

// keysNewestFirst collects keys walking from the most recently used
// end toward the least recently used end.
func keysNewestFirst(l *List[string]) []string {
	var keys []string
	h, ok := l.Newest()
	for ok {
		k, _ := l.Key(h)
		keys = append(keys, k)
		h, ok = l.Older(h)
	}
	return keys
}

func equalKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// push inserts keys in order and returns their handles by key.
func push(l *List[string], keys ...string) map[string]Handle {
	handles := make(map[string]Handle, len(keys))
	for _, k := range keys {
		handles[k] = l.PushFront(k)
	}
	return handles
}

func TestEmptyList(t *testing.T) {
	l := New[string]()

	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
	if _, ok := l.Oldest(); ok {
		t.Error("Oldest() on empty list reported a node")
	}
	if _, ok := l.Newest(); ok {
		t.Error("Newest() on empty list reported a node")
	}
}

func TestSoleNode(t *testing.T) {
	l := New[string]()
	h := l.PushFront("A")

	oldest, ok := l.Oldest()
	if !ok || oldest != h {
		t.Fatal("Oldest() should be the sole node")
	}
	newest, ok := l.Newest()
	if !ok || newest != h {
		t.Fatal("Newest() should be the sole node")
	}
}

func TestOrdering(t *testing.T) {
	tests := []struct {
		name   string
		insert []string
		touch  []string
		want   []string // oldest first
	}{
		{
			name:   "insertion order",
			insert: []string{"A", "B", "C", "D", "E"},
			want:   []string{"A", "B", "C", "D", "E"},
		},
		{
			name:   "touching the front is a no-op",
			insert: []string{"A", "B", "C", "D", "E"},
			touch:  []string{"E"},
			want:   []string{"A", "B", "C", "D", "E"},
		},
		{
			name:   "touching the back moves it to front",
			insert: []string{"A", "B", "C", "D", "E"},
			touch:  []string{"A"},
			want:   []string{"B", "C", "D", "E", "A"},
		},
		{
			name:   "touching the middle keeps others' relative order",
			insert: []string{"A", "B", "C", "D", "E"},
			touch:  []string{"C"},
			want:   []string{"A", "B", "D", "E", "C"},
		},
		{
			name:   "repeated touches follow last-touched order",
			insert: []string{"A", "B", "C"},
			touch:  []string{"A", "B", "A"},
			want:   []string{"C", "B", "A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New[string]()
			handles := push(l, tt.insert...)
			for _, k := range tt.touch {
				if !l.MoveToFront(handles[k]) {
					t.Fatalf("MoveToFront(%q) failed", k)
				}
			}

			got := keysOldestFirst(l)
			if !equalKeys(got, tt.want) {
				t.Errorf("oldest-first = %v, want %v", got, tt.want)
			}

			// Newest-first must be the exact reverse.
			rev := keysNewestFirst(l)
			for i := range rev {
				if rev[i] != got[len(got)-1-i] {
					t.Errorf("newest-first = %v is not the reverse of %v", rev, got)
					break
				}
			}
		})
	}
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name   string
		remove string
		want   []string
	}{
		{"remove newest", "E", []string{"A", "B", "C", "D"}},
		{"remove oldest", "A", []string{"B", "C", "D", "E"}},
		{"remove middle", "C", []string{"A", "B", "D", "E"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New[string]()
			handles := push(l, "A", "B", "C", "D", "E")

			if !l.Remove(handles[tt.remove]) {
				t.Fatalf("Remove(%q) failed", tt.remove)
			}
			if l.Len() != 4 {
				t.Errorf("Len() = %d, want 4", l.Len())
			}

			got := keysOldestFirst(l)
			if !equalKeys(got, tt.want) {
				t.Errorf("oldest-first = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRemoveToEmpty(t *testing.T) {
	l := New[string]()
	handles := push(l, "A", "B")

	l.Remove(handles["A"])
	l.Remove(handles["B"])

	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
	if _, ok := l.Oldest(); ok {
		t.Error("Oldest() reported a node after removing everything")
	}

	// The line must be reusable after draining.
	l.PushFront("C")
	if got := keysOldestFirst(l); !equalKeys(got, []string{"C"}) {
		t.Errorf("oldest-first = %v, want [C]", got)
	}
}

func TestStaleHandles(t *testing.T) {
	l := New[string]()
	h := l.PushFront("A")

	if !l.Remove(h) {
		t.Fatal("first Remove failed")
	}

	// All operations on the stale handle must fail, including after the
	// arena slot is recycled for a new key.
	l.PushFront("B")

	if l.Remove(h) {
		t.Error("Remove succeeded on a stale handle")
	}
	if l.MoveToFront(h) {
		t.Error("MoveToFront succeeded on a stale handle")
	}
	if _, ok := l.Key(h); ok {
		t.Error("Key succeeded on a stale handle")
	}
	if _, ok := l.Newer(h); ok {
		t.Error("Newer succeeded on a stale handle")
	}

	var zero Handle
	if l.MoveToFront(zero) {
		t.Error("MoveToFront succeeded on the zero handle")
	}
	if !zero.IsZero() {
		t.Error("IsZero() = false for the zero handle")
	}
}

func TestRemovalDuringIteration(t *testing.T) {
	l := New[string]()
	handles := push(l, "A", "B", "C", "D")

	// Capture "next" before removing at the cursor, the way eviction
	// walks the line.
	var visited []string
	h, ok := l.Oldest()
	for ok {
		next, nextOK := l.Newer(h)
		k, _ := l.Key(h)
		visited = append(visited, k)
		if k == "B" || k == "C" {
			l.Remove(handles[k])
		}
		h, ok = next, nextOK
	}

	if !equalKeys(visited, []string{"A", "B", "C", "D"}) {
		t.Errorf("visited = %v, want [A B C D]", visited)
	}
	if got := keysOldestFirst(l); !equalKeys(got, []string{"A", "D"}) {
		t.Errorf("oldest-first = %v, want [A D]", got)
	}
}

func TestClear(t *testing.T) {
	l := New[string]()
	handles := push(l, "A", "B", "C")

	l.Clear()

	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
	if l.MoveToFront(handles["A"]) {
		t.Error("handle survived Clear")
	}

	l.PushFront("D")
	if got := keysOldestFirst(l); !equalKeys(got, []string{"D"}) {
		t.Errorf("oldest-first = %v, want [D]", got)
	}
}
