package registry

import (
	"github.com/resilientgo/core/pkg/event"
)

// EntryAdded is published when compute_if_absent creates a new entry.
type EntryAdded struct {
	Name  string
	Entry interface{}
}

// TypeName implements event.Event.
func (EntryAdded) TypeName() string { return "EntryAdded" }

// EntryReplaced is published when Replace swaps an existing entry.
type EntryReplaced struct {
	Name     string
	Old, New interface{}
}

// TypeName implements event.Event.
func (EntryReplaced) TypeName() string { return "EntryReplaced" }

// EntryRemoved is published when Remove deletes an existing entry.
type EntryRemoved struct {
	Name  string
	Entry interface{}
}

// TypeName implements event.Event.
func (EntryRemoved) TypeName() string { return "EntryRemoved" }

// Registry is a thin shell over Store (§4.F): a named configuration table
// seeded with a non-removable default, an immutable tag map fixed at
// construction, and a lifecycle event stream publishing EntryAdded,
// EntryReplaced, and EntryRemoved through its own event.Processor.
type Registry[V any] struct {
	store  *Store[V]
	config *configTable
	tags   map[string]string
	events *event.Processor
}

// Option configures a Registry at construction.
type Option func(*options)

type options struct {
	defaultConfig interface{}
	tags          map[string]string
	logger        interface {
		Errorf(format string, args ...interface{})
	}
}

// WithDefaultConfig sets the value stored under the non-removable default
// configuration name. If omitted, the default configuration value is nil.
func WithDefaultConfig(value interface{}) Option {
	return func(o *options) { o.defaultConfig = value }
}

// WithTags sets the immutable tag map. The map is copied; later mutation of
// the caller's map does not affect the registry.
func WithTags(tags map[string]string) Option {
	return func(o *options) { o.tags = tags }
}

// New creates an empty Registry with the given options applied.
func New[V any](opts ...Option) *Registry[V] {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	tags := make(map[string]string, len(o.tags))
	for k, v := range o.tags {
		tags[k] = v
	}

	return &Registry[V]{
		store:  NewStore[V](),
		config: newConfigTable(o.defaultConfig),
		tags:   tags,
		events: event.New(nil),
	}
}

// Tags returns the immutable tag map fixed at construction.
func (r *Registry[V]) Tags() map[string]string {
	out := make(map[string]string, len(r.tags))
	for k, v := range r.tags {
		out[k] = v
	}
	return out
}

// AddConfig adds or overwrites a named configuration value.
func (r *Registry[V]) AddConfig(name string, value interface{}) error {
	return r.config.add(name, value)
}

// GetConfig returns the configuration value stored under name, or a
// ConfigurationNotFound error if name is unknown.
func (r *Registry[V]) GetConfig(name string) (interface{}, error) {
	return r.config.get(name)
}

// RemoveConfig removes a named configuration. Removing the default
// configuration always fails.
func (r *Registry[V]) RemoveConfig(name string) error {
	return r.config.remove(name)
}

// ComputeIfAbsent returns the existing entry for name, or creates one via
// factory and publishes EntryAdded if it did not exist. factory runs at most
// once per name under concurrent access.
func (r *Registry[V]) ComputeIfAbsent(name string, factory func(name string) (V, error)) (V, error) {
	v, _, err := r.store.ComputeIfAbsent(name, factory, func(entry V) {
		r.events.Process(EntryAdded{Name: name, Entry: entry})
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v, nil
}

// PutIfAbsent stores entry under name if absent, publishing EntryAdded on
// success.
func (r *Registry[V]) PutIfAbsent(name string, entry V) (existing V, hadExisting bool, err error) {
	existing, hadExisting, err = r.store.PutIfAbsent(name, entry)
	if err != nil {
		var zero V
		return zero, false, err
	}
	if !hadExisting {
		r.events.Process(EntryAdded{Name: name, Entry: entry})
	}
	return existing, hadExisting, nil
}

// Find returns the entry stored under name, if any.
func (r *Registry[V]) Find(name string) (V, bool) {
	return r.store.Find(name)
}

// Remove deletes the entry stored under name, publishing EntryRemoved if one
// existed. A second Remove of the same name publishes nothing.
func (r *Registry[V]) Remove(name string) (V, bool) {
	v, ok := r.store.Remove(name)
	if ok {
		r.events.Process(EntryRemoved{Name: name, Entry: v})
	}
	return v, ok
}

// Replace swaps the entry stored under name, publishing EntryReplaced if one
// existed. It is a no-op when name is absent.
func (r *Registry[V]) Replace(name string, newEntry V) (old V, replaced bool, err error) {
	old, replaced, err = r.store.Replace(name, newEntry)
	if err != nil {
		var zero V
		return zero, false, err
	}
	if replaced {
		r.events.Process(EntryReplaced{Name: name, Old: old, New: newEntry})
	}
	return old, replaced, nil
}

// Values returns a weakly consistent snapshot of all entries.
func (r *Registry[V]) Values() []V {
	return r.store.Values()
}

// OnEntryAdded registers a consumer invoked whenever an entry is created.
func (r *Registry[V]) OnEntryAdded(fn func(EntryAdded)) {
	r.events.Register("EntryAdded", func(e event.Event) error {
		fn(e.(EntryAdded))
		return nil
	})
}

// OnEntryRemoved registers a consumer invoked whenever an entry is removed.
func (r *Registry[V]) OnEntryRemoved(fn func(EntryRemoved)) {
	r.events.Register("EntryRemoved", func(e event.Event) error {
		fn(e.(EntryRemoved))
		return nil
	})
}

// OnEntryReplaced registers a consumer invoked whenever an entry is replaced.
func (r *Registry[V]) OnEntryReplaced(fn func(EntryReplaced)) {
	r.events.Register("EntryReplaced", func(e event.Event) error {
		fn(e.(EntryReplaced))
		return nil
	})
}
