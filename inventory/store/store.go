// Package store owns the in-memory equipment collection for a session. It is
// the single owner of all Equipment records: callers receive deep copies and
// submit whole records back, so no caller ever aliases store memory.
package store

import (
	"errors"
	"slices"
	"strings"
	"sync"

	"equiptrack/inventory/schema"
)

var (
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrChildNotFound     = errors.New("child record not found")
)

// StatusAll is the sentinel status that disables status filtering.
const StatusAll = "all"

type ChildKind string

const (
	ChildContract    ChildKind = "contract"
	ChildDocument    ChildKind = "document"
	ChildSoftware    ChildKind = "software"
	ChildServiceLog  ChildKind = "service-log"
	ChildPropertyTag ChildKind = "property-tag"
)

// EquipmentStore holds an ordered collection of Equipment, newest first.
// Insertion order is only significant for default display order; id is the
// lookup key. Safe for concurrent use.
type EquipmentStore struct {
	mu    sync.RWMutex
	items []schema.Equipment
}

func New(seed ...schema.Equipment) *EquipmentStore {
	s := &EquipmentStore{items: make([]schema.Equipment, 0, len(seed))}
	for _, eq := range seed {
		clone := eq.Clone()
		schema.RefreshDerived(&clone)
		s.items = append(s.items, clone)
	}
	return s
}

// Add assigns a fresh id, initializes all child lists empty, and prepends the
// record to the collection. Never fails.
func (s *EquipmentStore) Add(eq schema.Equipment) schema.Equipment {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := eq.Clone()
	clone.Id = schema.NewId()
	clone.Contracts = []schema.ServiceContract{}
	clone.Documents = []schema.Document{}
	clone.Software = []schema.Software{}
	clone.ServiceLogs = []schema.ServiceLog{}
	clone.PropertyTags = []schema.PropertyTag{}
	schema.RefreshDerived(&clone)

	s.items = append([]schema.Equipment{clone}, s.items...)
	return clone.Clone()
}

// Update replaces the record whose id matches and recomputes derived state.
// Returns ErrEquipmentNotFound when no record matches.
func (s *EquipmentStore) Update(eq schema.Equipment) (schema.Equipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.index(eq.Id)
	if idx < 0 {
		return schema.Equipment{}, ErrEquipmentNotFound
	}

	clone := eq.Clone()
	schema.RefreshDerived(&clone)
	s.items[idx] = clone
	return clone.Clone(), nil
}

func (s *EquipmentStore) Get(id string) (schema.Equipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.index(id)
	if idx < 0 {
		return schema.Equipment{}, ErrEquipmentNotFound
	}
	return s.items[idx].Clone(), nil
}

func (s *EquipmentStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.index(id)
	if idx < 0 {
		return ErrEquipmentNotFound
	}
	s.items = slices.Delete(s.items, idx, idx+1)
	return nil
}

// RemoveChild filters the matching child id out of the parent's list for the
// given kind and re-saves the parent, recomputing derived state.
func (s *EquipmentStore) RemoveChild(kind ChildKind, parentId, childId string) (schema.Equipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.index(parentId)
	if idx < 0 {
		return schema.Equipment{}, ErrEquipmentNotFound
	}

	parent := s.items[idx].Clone()
	removed := false

	switch kind {
	case ChildContract:
		parent.Contracts, removed = dropById(parent.Contracts, childId, func(c schema.ServiceContract) string { return c.Id })
	case ChildDocument:
		parent.Documents, removed = dropById(parent.Documents, childId, func(d schema.Document) string { return d.Id })
	case ChildSoftware:
		parent.Software, removed = dropById(parent.Software, childId, func(sw schema.Software) string { return sw.Id })
	case ChildServiceLog:
		parent.ServiceLogs, removed = dropById(parent.ServiceLogs, childId, func(l schema.ServiceLog) string { return l.Id })
	case ChildPropertyTag:
		parent.PropertyTags, removed = dropById(parent.PropertyTags, childId, func(t schema.PropertyTag) string { return t.Id })
	}

	if !removed {
		return schema.Equipment{}, ErrChildNotFound
	}

	schema.RefreshDerived(&parent)
	s.items[idx] = parent
	return parent.Clone(), nil
}

// List returns the collection in its display order (newest first).
func (s *EquipmentStore) List() []schema.Equipment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]schema.Equipment, len(s.items))
	for i, eq := range s.items {
		out[i] = eq.Clone()
	}
	return out
}

func (s *EquipmentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// ReplaceAll swaps the entire collection for the imported one, recomputing
// derived state per record. The previous contents are discarded, not merged.
func (s *EquipmentStore) ReplaceAll(items []schema.Equipment) {
	replacement := make([]schema.Equipment, 0, len(items))
	for _, eq := range items {
		clone := eq.Clone()
		schema.RefreshDerived(&clone)
		replacement = append(replacement, clone)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = replacement
}

// FindByPropertyTagValue scans for a record other than excludeId owning a
// property tag with exactly this value. Used to cross-navigate between
// associated equipment; the second return is false when no other record
// matches.
func (s *EquipmentStore) FindByPropertyTagValue(value string, excludeId string) (schema.Equipment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.items {
		if s.items[i].Id == excludeId {
			continue
		}
		for _, tag := range s.items[i].PropertyTags {
			if tag.Value == value {
				return s.items[i].Clone(), true
			}
		}
	}
	return schema.Equipment{}, false
}

func (s *EquipmentStore) index(id string) int {
	return slices.IndexFunc(s.items, func(eq schema.Equipment) bool { return eq.Id == id })
}

func dropById[T any](items []T, id string, idOf func(T) string) ([]T, bool) {
	kept := make([]T, 0, len(items))
	removed := false
	for _, item := range items {
		if idOf(item) == id {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	return kept, removed
}

// Search filters a collection by case-insensitive substring match against
// name, model, serial number, any property tag value, and the node, probe,
// and UPS identifiers when present. An empty query returns the collection
// unfiltered.
func Search(query string, items []schema.Equipment) []schema.Equipment {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}

	matches := func(eq schema.Equipment) bool {
		for _, field := range []string{eq.Name, eq.Model, eq.SerialNumber, eq.Node, eq.Probe, eq.Ups} {
			if field != "" && strings.Contains(strings.ToLower(field), q) {
				return true
			}
		}
		for _, tag := range eq.PropertyTags {
			if tag.Value != "" && strings.Contains(strings.ToLower(tag.Value), q) {
				return true
			}
		}
		return false
	}

	out := make([]schema.Equipment, 0, len(items))
	for _, eq := range items {
		if matches(eq) {
			out = append(out, eq)
		}
	}
	return out
}

// FilterByStatus returns the subset with exactly this status, or the
// collection unchanged for the sentinel "all".
func FilterByStatus(status string, items []schema.Equipment) []schema.Equipment {
	if status == "" || status == StatusAll {
		return items
	}
	out := make([]schema.Equipment, 0, len(items))
	for _, eq := range items {
		if eq.Status == status {
			out = append(out, eq)
		}
	}
	return out
}
