package registry

import (
	"sync"

	"github.com/resilientgo/core/pkg/rerrors"
)

const component = "registry"

// DefaultConfigName is the name every Registry seeds at construction; it is
// never removable.
const DefaultConfigName = "default"

// configTable is a name -> opaque-value map with a guaranteed-present,
// non-removable default entry.
type configTable struct {
	mu      sync.RWMutex
	entries map[string]interface{}
}

func newConfigTable(defaultConfig interface{}) *configTable {
	return &configTable{
		entries: map[string]interface{}{DefaultConfigName: defaultConfig},
	}
}

func (c *configTable) add(name string, value interface{}) error {
	if name == "" {
		return rerrors.Validationf(component, "configuration name must not be empty")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[name] = value
	return nil
}

func (c *configTable) get(name string) (interface{}, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[name]
	if !ok {
		return nil, rerrors.ConfigurationNotFound(component, name)
	}
	return v, nil
}

func (c *configTable) remove(name string) error {
	if name == DefaultConfigName {
		return rerrors.Validationf(component, "the default configuration cannot be removed")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[name]; !ok {
		return rerrors.ConfigurationNotFound(component, name)
	}
	delete(c.entries, name)
	return nil
}
