package grid

import (
	"image"
	"sync"
)

// EventType identifies session events the UI can observe.
type EventType int

const (
	EventCellChanged EventType = iota
	EventGridCleared
	EventExported
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// Session is the mutable per-session state owned by the controller. All
// access goes through the mutex; acquisitions running in goroutines commit
// through SetCell, so the last-resolving write for a cell wins.
type Session struct {
	mu sync.RWMutex

	slots   [CellCount]image.Image
	tainted [CellCount]bool

	// At most one cell awaiting a user file pick.
	pending    int
	hasPending bool

	listeners map[EventType][]EventListener
}

// Snapshot is an immutable copy of the grid contents for rendering.
type Snapshot struct {
	Slots   [CellCount]image.Image
	Tainted [CellCount]bool
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *Session) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *Session) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetCell stores an image in a cell and records its taint mark. A nil image
// clears the cell. The mark is rewritten on every store, so a clean reload
// of a previously tainted cell removes the mark.
func (s *Session) SetCell(index int, img image.Image, tainted bool) {
	if index < 0 || index >= CellCount {
		return
	}

	s.mu.Lock()
	s.slots[index] = img
	s.tainted[index] = tainted && img != nil
	s.mu.Unlock()

	s.Emit(EventCellChanged, index)
}

// ClearCell empties a cell and removes its taint mark.
func (s *Session) ClearCell(index int) {
	s.SetCell(index, nil, false)
}

// Clear empties every cell.
func (s *Session) Clear() {
	s.mu.Lock()
	s.slots = [CellCount]image.Image{}
	s.tainted = [CellCount]bool{}
	s.mu.Unlock()

	s.Emit(EventGridCleared, nil)
}

// CellImage returns the image stored in a cell, or nil.
func (s *Session) CellImage(index int) image.Image {
	if index < 0 || index >= CellCount {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slots[index]
}

// Tainted reports whether a cell's image was stored without a
// cross-origin grant.
func (s *Session) Tainted(index int) bool {
	if index < 0 || index >= CellCount {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tainted[index]
}

// TaintedCells returns the indices of all tainted cells in order.
func (s *Session) TaintedCells() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var cells []int
	for i, t := range s.tainted {
		if t {
			cells = append(cells, i)
		}
	}
	return cells
}

// AnyTainted reports whether any cell is tainted.
func (s *Session) AnyTainted() bool {
	return len(s.TaintedCells()) > 0
}

// Empty reports whether every cell is empty.
func (s *Session) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, img := range s.slots {
		if img != nil {
			return false
		}
	}
	return true
}

// FirstFree returns the index of the first empty cell, or -1 when the grid
// is full.
func (s *Session) FirstFree() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i, img := range s.slots {
		if img == nil {
			return i
		}
	}
	return -1
}

// SetPending records the cell awaiting a user file pick, replacing any
// earlier pending selection.
func (s *Session) SetPending(index int) {
	if index < 0 || index >= CellCount {
		return
	}
	s.mu.Lock()
	s.pending = index
	s.hasPending = true
	s.mu.Unlock()
}

// TakePending consumes the pending selection. It returns false when no pick
// is outstanding; each selection round-trip consumes it exactly once.
func (s *Session) TakePending() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasPending {
		return 0, false
	}
	s.hasPending = false
	return s.pending, true
}

// Snapshot copies the current grid contents for rendering or export.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{Slots: s.slots, Tainted: s.tainted}
}
