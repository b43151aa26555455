package component

import "slices"

// TabRegistry is an ordered mapping of tab id to configuration. Order is
// insertion order unless a position is given explicitly.
type TabRegistry struct {
	order []string
	tabs  map[string]TabConfig
}

// NewTabRegistry builds a registry from entries. Later duplicates overwrite
// the configuration of the first occurrence without moving it.
func NewTabRegistry(entries []TabEntry) *TabRegistry {
	r := &TabRegistry{tabs: make(map[string]TabConfig, len(entries))}
	for _, e := range entries {
		r.Set(e.ID, e.Config)
	}
	return r
}

// Set stores cfg under id. A new id is appended; an existing id keeps its
// position.
func (r *TabRegistry) Set(id string, cfg TabConfig) {
	if _, ok := r.tabs[id]; !ok {
		r.order = append(r.order, id)
	}
	r.tabs[id] = cfg
}

// Insert stores cfg under id and places id at position among the other ids,
// which keep their relative order. id is first taken out of its old slot,
// then position is clamped to [0, n] where n is the number of other ids, so
// a position at or past the end appends.
func (r *TabRegistry) Insert(id string, cfg TabConfig, position int) {
	r.tabs[id] = cfg

	ids := slices.DeleteFunc(slices.Clone(r.order), func(existing string) bool {
		return existing == id
	})
	position = max(0, min(position, len(ids)))
	r.order = slices.Insert(ids, position, id)
}

// Remove deletes id. It reports whether id was present.
func (r *TabRegistry) Remove(id string) bool {
	if _, ok := r.tabs[id]; !ok {
		return false
	}
	delete(r.tabs, id)
	r.order = slices.DeleteFunc(r.order, func(existing string) bool {
		return existing == id
	})
	return true
}

// Get returns the configuration of id.
func (r *TabRegistry) Get(id string) (TabConfig, bool) {
	cfg, ok := r.tabs[id]
	return cfg, ok
}

// Has reports whether id is registered.
func (r *TabRegistry) Has(id string) bool {
	_, ok := r.tabs[id]
	return ok
}

// Index returns the position of id, or -1.
func (r *TabRegistry) Index(id string) int {
	return slices.Index(r.order, id)
}

// IDs returns the tab ids in order.
func (r *TabRegistry) IDs() []string {
	return slices.Clone(r.order)
}

// Entries returns the tabs in order.
func (r *TabRegistry) Entries() []TabEntry {
	out := make([]TabEntry, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, TabEntry{ID: id, Config: r.tabs[id]})
	}
	return out
}

// Len returns the number of tabs.
func (r *TabRegistry) Len() int {
	return len(r.order)
}
