// Package registry provides a global registry of shape catalogs.
// Catalogs register themselves in init() functions, allowing the CLI
// to list and select them by name without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/quadfall/internal/games/quadfall/field"
)

// CatalogInfo contains metadata about a registered catalog.
type CatalogInfo struct {
	Name   string
	Title  string
	Shapes []string
}

// Factory is a function that builds a catalog.
type Factory func() *field.Catalog

type entry struct {
	title   string
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a catalog factory to the registry.
// Typically called from an init() function.
// Panics if a catalog with the same name is already registered.
func Register(name, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[name]; exists {
		panic(fmt.Sprintf("registry: catalog %q already registered", name))
	}

	entries[name] = entry{title: title, factory: f}
}

// List returns information about all registered catalogs, sorted by name.
func List() []CatalogInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]CatalogInfo, 0, len(entries))
	for name, e := range entries {
		info := CatalogInfo{Name: name, Title: e.title}
		for _, t := range e.factory().Templates() {
			info.Shapes = append(info.Shapes, t.Name)
		}
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create builds a catalog by its name.
// Returns an error if the name is not registered.
func Create(name string) (*field.Catalog, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[name]
	if !ok {
		return nil, fmt.Errorf("registry: unknown catalog %q", name)
	}

	return e.factory(), nil
}

// Exists checks if a catalog with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[name]
	return ok
}
