package cats

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Store is a mutable mapping from category name to Category. It
// maintains the invariant that every category in the store is
// non-empty: a mutation that leaves a category with zero members
// removes it.
type Store struct {
	cats map[string]*Category
}

// NewStore creates an empty category store.
func NewStore() *Store {
	return &Store{cats: make(map[string]*Category)}
}

// Lookup returns the named category, if present.
func (s *Store) Lookup(name string) (*Category, bool) {
	c, ok := s.cats[name]
	return c, ok
}

// Names returns the store's category names in a deterministic order,
// for diagnostics and REPL tab-completion.
func (s *Store) Names() []string {
	names := maps.Keys(s.cats)
	slices.Sort(names)
	return names
}

// Define assigns name = values, resolving any "[other]" references
// against s as it stands right now (eager resolution, not lazy lookup).
// An empty resulting category deletes name from the store instead of
// storing an empty entry.
func (s *Store) Define(name string, values []string) error {
	c, err := NewCategory(values, s)
	if err != nil {
		return fmt.Errorf("defining category %q: %w", name, err)
	}
	s.store(name, c)
	return nil
}

// Augment implements "name += values": name must already exist.
func (s *Store) Augment(name string, values []string) error {
	existing, ok := s.cats[name]
	if !ok {
		return fmt.Errorf("augmenting %q: %w", name, ErrUnknownCategory)
	}
	added, err := NewCategory(values, s)
	if err != nil {
		return fmt.Errorf("augmenting category %q: %w", name, err)
	}
	s.store(name, existing.Union(added))
	return nil
}

// Reduce implements "name -= values": name must already exist.
func (s *Store) Reduce(name string, values []string) error {
	existing, ok := s.cats[name]
	if !ok {
		return fmt.Errorf("reducing %q: %w", name, ErrUnknownCategory)
	}
	removed, err := NewCategory(values, s)
	if err != nil {
		return fmt.Errorf("reducing category %q: %w", name, err)
	}
	s.store(name, existing.Difference(removed))
	return nil
}

// Delete removes name from the store outright, if present.
func (s *Store) Delete(name string) {
	delete(s.cats, name)
}

// store records c under name, dropping the entry instead if c ended up
// empty — the "categories in the store are non-empty" invariant.
func (s *Store) store(name string, c *Category) {
	if c.Len() == 0 {
		tracer().Infof("category %q became empty, discarding", name)
		delete(s.cats, name)
		return
	}
	s.cats[name] = c
}

