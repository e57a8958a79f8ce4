package reconcile

import "schema-sync/core/utils"

// MatchKind tells how a source entity was found in the target.
type MatchKind int

const (
	// MatchNone means the entity is absent from the target.
	MatchNone MatchKind = iota
	// MatchByID means the identifiers are equal.
	MatchByID
	// MatchByName means only the normalized names are equal.
	MatchByName
)

// Matcher finds source entities in a target collection: exact identifier
// first, then case-insensitive trimmed name.
type Matcher[T Identity] struct {
	byID   map[string]int
	byName map[string]int
	items  []T
}

// NewMatcher indexes targets. On duplicate ids or names the first entry wins.
func NewMatcher[T Identity](targets []T) *Matcher[T] {
	m := &Matcher[T]{
		byID:   make(map[string]int, len(targets)),
		byName: make(map[string]int, len(targets)),
		items:  targets,
	}
	for i, t := range targets {
		if id := t.EntityID(); id != "" {
			if _, ok := m.byID[id]; !ok {
				m.byID[id] = i
			}
		}
		if name := utils.NormalizeName(t.EntityName()); name != "" {
			if _, ok := m.byName[name]; !ok {
				m.byName[name] = i
			}
		}
	}
	return m
}

// Match returns the target entity matching item and how it matched.
func (m *Matcher[T]) Match(item T) (T, MatchKind) {
	idx, kind := m.locate(item)
	if kind == MatchNone {
		var zero T
		return zero, MatchNone
	}
	return m.items[idx], kind
}

// Contains reports whether item exists in the target by id or name.
func (m *Matcher[T]) Contains(item T) bool {
	_, kind := m.locate(item)
	return kind != MatchNone
}

// FindByName returns the target entity with the given normalized name.
func (m *Matcher[T]) FindByName(name string) (T, bool) {
	if idx, ok := m.byName[utils.NormalizeName(name)]; ok {
		return m.items[idx], true
	}
	var zero T
	return zero, false
}

func (m *Matcher[T]) locate(item T) (int, MatchKind) {
	if id := item.EntityID(); id != "" {
		if idx, ok := m.byID[id]; ok {
			return idx, MatchByID
		}
	}
	if name := utils.NormalizeName(item.EntityName()); name != "" {
		if idx, ok := m.byName[name]; ok {
			return idx, MatchByName
		}
	}
	return -1, MatchNone
}
