package watchlist

import "slices"

// View is a read-only snapshot of the watchlist with a membership index.
// The zero View is empty.
type View struct {
	entries []Entry
	ids     map[int]struct{}
	keys    map[Key]struct{}
	scoped  bool
}

func newView(entries []Entry, scoped bool) View {
	v := View{
		entries: slices.Clone(entries),
		ids:     make(map[int]struct{}, len(entries)),
		keys:    make(map[Key]struct{}, len(entries)),
		scoped:  scoped,
	}
	for _, e := range entries {
		v.ids[e.ID] = struct{}{}
		v.keys[e.Key()] = struct{}{}
	}
	return v
}

// Entries returns a copy of the entries in persisted order.
func (v View) Entries() []Entry {
	return slices.Clone(v.entries)
}

func (v View) Len() int {
	return len(v.entries)
}

func (v View) Contains(id int) bool {
	_, ok := v.ids[id]
	return ok
}

func (v View) ContainsTitle(id int, mt MediaType) bool {
	_, ok := v.keys[Key{ID: id, MediaType: mt}]
	return ok
}

// IsMember answers membership the same way the owning store's Toggle decides
// between add and remove.
func (v View) IsMember(id int, mt MediaType) bool {
	if v.scoped {
		if mt == "" {
			mt = Movie
		}
		return v.ContainsTitle(id, mt)
	}
	return v.Contains(id)
}
