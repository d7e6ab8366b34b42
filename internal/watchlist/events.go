package watchlist

type EventKind int

const (
	EventAdded EventKind = iota + 1
	EventRemoved
	EventCleared
	EventReloaded
)

func (k EventKind) String() string {
	switch k {
	case EventAdded:
		return "added"
	case EventRemoved:
		return "removed"
	case EventCleared:
		return "cleared"
	case EventReloaded:
		return "reloaded"
	default:
		return "none"
	}
}

// Event announces a change. View is the projection right after the change.
type Event struct {
	Kind EventKind
	Key  Key
	View View
}

// Subscribe returns a channel of change events and a function that ends the
// subscription and closes the channel. Slow readers only see the latest
// pending event; older ones are dropped.
func (s *Store) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 1)

	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subsMu.Unlock()

	cancel := func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

func (s *Store) publish(ev Event) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- ev:
			continue
		default:
		}
		// Replace the stale pending event.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- ev:
		default:
		}
	}
}
