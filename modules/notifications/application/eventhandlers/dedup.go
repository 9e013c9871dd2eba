package eventhandlers

import "sync"

// seenEvents remembers recently handled event ids so a redelivered event
// does not notify twice. Only the last limit ids are kept.
type seenEvents struct {
	mu    sync.Mutex
	limit int
	ids   map[string]struct{}
	order []string
}

func newSeenEvents(limit int) *seenEvents {
	return &seenEvents{limit: limit, ids: make(map[string]struct{}, limit)}
}

// markNew records id and reports whether it was not seen before.
func (s *seenEvents) markNew(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; ok {
		return false
	}
	s.ids[id] = struct{}{}
	s.order = append(s.order, id)
	if len(s.order) > s.limit {
		delete(s.ids, s.order[0])
		s.order = s.order[1:]
	}
	return true
}
