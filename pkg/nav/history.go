package nav

import (
	"slices"
	"sync"
)

// History is a navigation history.
type History interface {
	// Location returns the current location ("/path?query").
	Location() string

	// Push makes location the current location and notifies listeners.
	Push(location string)

	// Listen registers fn to be called with every new location. The
	// returned function removes it.
	Listen(fn func(location string)) (unlisten func())
}

// listeners is a set of location callbacks shared by the History
// implementations.
type listeners struct {
	mu     sync.Mutex
	nextID int
	fns    map[int]func(string)
}

func (l *listeners) add(fn func(string)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fns == nil {
		l.fns = make(map[int]func(string))
	}
	id := l.nextID
	l.nextID++
	l.fns[id] = fn

	return func() {
		l.mu.Lock()
		delete(l.fns, id)
		l.mu.Unlock()
	}
}

// notify calls every listener in registration order, outside the lock.
func (l *listeners) notify(location string) {
	l.mu.Lock()
	ids := make([]int, 0, len(l.fns))
	for id := range l.fns {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(string), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, l.fns[id])
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(location)
	}
}

// MemoryHistory is an in-process History with back and forward navigation.
type MemoryHistory struct {
	mu      sync.Mutex
	entries []string
	index   int

	listeners listeners
}

// NewMemoryHistory creates a history whose only entry is initial.
func NewMemoryHistory(initial string) *MemoryHistory {
	if initial == "" {
		initial = "/"
	}
	return &MemoryHistory{entries: []string{initial}}
}

// Location implements History.
func (h *MemoryHistory) Location() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

// Push implements History. Forward entries are discarded.
func (h *MemoryHistory) Push(location string) {
	h.mu.Lock()
	h.entries = append(h.entries[:h.index+1], location)
	h.index++
	h.mu.Unlock()

	h.listeners.notify(location)
}

// Listen implements History.
func (h *MemoryHistory) Listen(fn func(location string)) func() {
	return h.listeners.add(fn)
}

// Back moves to the previous entry. It reports false at the first entry.
func (h *MemoryHistory) Back() bool {
	return h.Go(-1)
}

// Forward moves to the next entry. It reports false at the last entry.
func (h *MemoryHistory) Forward() bool {
	return h.Go(1)
}

// Go moves delta entries through the history and notifies listeners. It
// reports false, without moving, when the target entry does not exist.
func (h *MemoryHistory) Go(delta int) bool {
	h.mu.Lock()
	next := h.index + delta
	if next < 0 || next >= len(h.entries) || delta == 0 {
		h.mu.Unlock()
		return false
	}
	h.index = next
	location := h.entries[next]
	h.mu.Unlock()

	h.listeners.notify(location)
	return true
}

// Len returns the number of entries.
func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
