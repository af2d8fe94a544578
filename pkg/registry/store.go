// Package registry implements the concurrent keyed store of named entries
// (§4.E) and the configuration/tags/lifecycle-event shell over it (§4.F).
package registry

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/resilientgo/core/pkg/rerrors"
)

// Store is a concurrent keyed map of entries of type V. All operations are
// linearizable per key. compute_if_absent dedups concurrent factory calls
// for the same key through a singleflight group, so factory runs at most
// once regardless of how many goroutines race to create the same key.
type Store[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
	group   singleflight.Group
}

// NewStore creates an empty Store.
func NewStore[V any]() *Store[V] {
	return &Store[V]{entries: make(map[string]V)}
}

// ComputeIfAbsent returns the existing entry for key if present, otherwise
// calls factory(key) exactly once and stores its result. Concurrent callers
// for the same key observe the same returned entry and factory error.
// onCreate, if non-nil, is invoked exactly once, by whichever goroutine
// actually ran factory and stored its result, never by a goroutine that
// only joined an in-flight call. Callers use it to report creation instead
// of the singleflight `shared` flag, which is identical across every
// goroutine in a flight and so cannot distinguish the leader from joiners.
func (s *Store[V]) ComputeIfAbsent(key string, factory func(key string) (V, error), onCreate func(entry V)) (V, bool, error) {
	if key == "" {
		var zero V
		return zero, false, rerrors.Validationf(component, "registry key must not be empty")
	}

	s.mu.RLock()
	if v, ok := s.entries[key]; ok {
		s.mu.RUnlock()
		return v, false, nil
	}
	s.mu.RUnlock()

	var created bool
	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		s.mu.RLock()
		if v, ok := s.entries[key]; ok {
			s.mu.RUnlock()
			return v, nil
		}
		s.mu.RUnlock()

		v, err := factory(key)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.entries[key] = v
		s.mu.Unlock()
		created = true
		if onCreate != nil {
			onCreate(v)
		}
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, false, err
	}
	return result.(V), created, nil
}

// PutIfAbsent stores entry under key if key is not already present. It
// returns the pre-existing entry and true if key was already occupied, or
// the zero value and false on a successful insert.
func (s *Store[V]) PutIfAbsent(key string, entry V) (existing V, hadExisting bool, err error) {
	if key == "" {
		var zero V
		return zero, false, rerrors.Validationf(component, "registry key must not be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.entries[key]; ok {
		return v, true, nil
	}
	s.entries[key] = entry
	var zero V
	return zero, false, nil
}

// Find returns the entry stored under key, if any.
func (s *Store[V]) Find(key string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok
}

// Remove deletes and returns the entry stored under key, if any.
func (s *Store[V]) Remove(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.entries[key]
	if ok {
		delete(s.entries, key)
	}
	return v, ok
}

// Replace stores newEntry under key and returns the old entry, only if key
// is already present. It is a no-op returning (zero, false) when key is
// absent.
func (s *Store[V]) Replace(key string, newEntry V) (old V, replaced bool, err error) {
	if key == "" {
		var zero V
		return zero, false, rerrors.Validationf(component, "registry key must not be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.entries[key]
	if !ok {
		var zero V
		return zero, false, nil
	}
	s.entries[key] = newEntry
	return v, true, nil
}

// Values returns a weakly consistent snapshot of all entries: a point-in-time
// copy that never reflects a torn read and never errors under concurrent
// mutation, but may omit or include entries mutated around the same moment.
func (s *Store[V]) Values() []V {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]V, 0, len(s.entries))
	for _, v := range s.entries {
		out = append(out, v)
	}
	return out
}

// Len returns the number of entries currently stored.
func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
