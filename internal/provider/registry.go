package provider

import (
	"fmt"
	"sort"
	"sync"
)

// Builder turns per-provider settings into a Factory for one variant.
type Builder func(code string, settings map[string]string) (Factory, error)

// Registry keeps a mapping from variant names ("api", "web", "mock") to
// their builders.
type Registry struct {
	builders map[string]Builder
}

func NewRegistry() *Registry {
	return &Registry{builders: map[string]Builder{}}
}

// Register adds or replaces a variant builder.
func (r *Registry) Register(variant string, b Builder) {
	if r.builders == nil {
		r.builders = map[string]Builder{}
	}
	r.builders[variant] = b
}

// Build resolves the variant and builds a factory for the provider code.
func (r *Registry) Build(code, variant string, settings map[string]string) (Factory, error) {
	b, ok := r.builders[variant]
	if !ok {
		return nil, fmt.Errorf("provider variant %q is not registered", variant)
	}
	f, err := b(code, settings)
	if err != nil {
		return nil, fmt.Errorf("build provider %s (%s): %w", code, variant, err)
	}
	return f, nil
}

// Catalog maps provider codes to ready factories. It is filled once at
// startup and read concurrently afterwards.
type Catalog struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewCatalog() *Catalog {
	return &Catalog{factories: map[string]Factory{}}
}

func (c *Catalog) Add(code string, f Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.factories[code] = f
}

func (c *Catalog) Lookup(code string) (Factory, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, ok := c.factories[code]
	return f, ok
}

func (c *Catalog) Codes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	codes := make([]string, 0, len(c.factories))
	for code := range c.factories {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
