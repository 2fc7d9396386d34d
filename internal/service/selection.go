package service

import "sync"

// Selection tracks which attachments are marked for batch action in one
// panel. Its contents are only meaningful while selection mode is active;
// stale ids are tolerated and skipped at action time by the store's
// idempotent delete.
type Selection struct {
	mu     sync.Mutex
	active bool
	ids    map[string]struct{}
	order  []string
}

func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// ToggleMode flips selection mode and clears the selection set either way.
// It returns the new mode.
func (s *Selection) ToggleMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = !s.active
	s.clearLocked()
	return s.active
}

// Toggle adds the id to the selection if absent, removes it otherwise.
func (s *Selection) Toggle(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		return
	}
	s.ids[id] = struct{}{}
	s.order = append(s.order, id)
}

// SelectAll replaces the selection with the given ids.
func (s *Selection) SelectAll(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	for _, id := range ids {
		if _, ok := s.ids[id]; ok {
			continue
		}
		s.ids[id] = struct{}{}
		s.order = append(s.order, id)
	}
}

// Clear empties the selection set.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// Deactivate leaves selection mode and empties the set.
func (s *Selection) Deactivate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
	s.clearLocked()
}

func (s *Selection) clearLocked() {
	s.ids = make(map[string]struct{})
	s.order = nil
}

// Active reports whether selection mode is on.
func (s *Selection) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Selected reports whether the id is currently selected.
func (s *Selection) Selected(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// Ids returns the selected ids in selection order.
func (s *Selection) Ids() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Count returns the number of selected ids.
func (s *Selection) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}
