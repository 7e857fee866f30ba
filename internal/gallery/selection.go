package gallery

import "sync"

// Selection is the multi-select state machine. It is either idle (nothing
// selected) or selecting a non-empty id set; the "active" flag is derived
// from set size, so the active-with-empty-set state cannot be represented.
//
// All transitions are serialized by an internal mutex: the UI contract is
// event-at-a-time, and the lock keeps that true even if the host dispatches
// events from more than one goroutine.
type Selection struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

// NewSelection returns an idle selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Active reports whether selection mode is on. Active is true exactly when
// at least one id is selected.
func (s *Selection) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids) > 0
}

// Count returns the number of selected ids.
func (s *Selection) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// Has reports whether id is selected.
func (s *Selection) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// LongPress enters selection mode with the pressed id selected. If already
// selecting, the id is added to the set.
func (s *Selection) LongPress(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = struct{}{}
}

// Toggle flips id's membership. Removing the last id returns the machine
// to idle. Toggle is only meaningful while selecting; the caller routes
// idle taps to the lightbox instead.
func (s *Selection) Toggle(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// SelectAll replaces the selected set with the given ids, entering
// selection mode even from idle. An empty collection yields idle.
func (s *Selection) SelectAll(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

// Clear empties the selection and leaves selection mode.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[string]struct{})
}

// SelectedFrom returns the selected subset of files in the order files
// appear, which is the display order the batch actions operate in.
func (s *Selection) SelectedFrom(files []FileRecord) []FileRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]FileRecord, 0, len(s.ids))
	for _, f := range files {
		if _, ok := s.ids[f.ID]; ok {
			out = append(out, f)
		}
	}
	return out
}
