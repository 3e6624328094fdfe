package stack

import (
	"slices"
	"sync"

	"go.trai.ch/nest/internal/core/domain"
)

// Cache maps application keys to what was found the first time they were loaded.
// Entries live until cleared or forgotten, independent of stack push and pop.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]domain.CacheEntry
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]domain.CacheEntry)}
}

// Read returns the entry stored under appKey.
func (c *Cache) Read(appKey string) (domain.CacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[appKey]
	return entry, ok
}

// Write stores entry under appKey, replacing any previous entry.
func (c *Cache) Write(appKey string, entry domain.CacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[appKey] = entry
}

// Forget drops every entry loaded from location and returns their keys, sorted.
func (c *Cache) Forget(location string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var keys []string
	for key, entry := range c.entries {
		if entry.Location == location {
			keys = append(keys, key)
		}
	}
	for _, key := range keys {
		delete(c.entries, key)
	}
	slices.Sort(keys)
	return keys
}

// Clear drops all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Definitions keeps the last declaration evaluated for each project, so a
// cached project can be pushed again without evaluating its definition file.
type Definitions struct {
	mu    sync.RWMutex
	decls map[domain.ProjectID]domain.Declaration
}

// NewDefinitions creates an empty Definitions table.
func NewDefinitions() *Definitions {
	return &Definitions{decls: make(map[domain.ProjectID]domain.Declaration)}
}

// Store records decl, replacing any previous declaration of the same project.
func (d *Definitions) Store(decl domain.Declaration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	decl.Config = decl.Config.Clone()
	d.decls[decl.ID] = decl
}

// Lookup returns a copy of the declaration recorded for id.
func (d *Definitions) Lookup(id domain.ProjectID) (domain.Declaration, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	decl, ok := d.decls[id]
	if !ok {
		return domain.Declaration{}, false
	}
	decl.Config = decl.Config.Clone()
	return decl, true
}

// Forget drops the declarations evaluated from location and returns their projects, sorted.
func (d *Definitions) Forget(location string) []domain.ProjectID {
	d.mu.Lock()
	defer d.mu.Unlock()

	var ids []domain.ProjectID
	for id, decl := range d.decls {
		if decl.Location == location {
			ids = append(ids, id)
		}
	}
	for _, id := range ids {
		delete(d.decls, id)
	}
	slices.Sort(ids)
	return ids
}

// Clear drops all declarations.
func (d *Definitions) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()

	clear(d.decls)
}
