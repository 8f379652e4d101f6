// Package assets handles model, material and texture file loading and caching.
package assets

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNotFound is returned when no source holds the requested path.
var ErrNotFound = errors.New("asset not found")

// source is one place assets can be read from.
type source interface {
	read(name string) ([]byte, error)
	io.Closer
}

type dirSource struct {
	root string
}

func (d dirSource) read(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(d.root, filepath.FromSlash(name)))
}

func (d dirSource) Close() error { return nil }

type fsSource struct {
	fsys   fs.FS
	closer io.Closer
}

func (f fsSource) read(name string) ([]byte, error) {
	name = path.Clean(name)
	if !fs.ValidPath(name) {
		return nil, fs.ErrNotExist
	}
	return fs.ReadFile(f.fsys, name)
}

func (f fsSource) Close() error {
	if f.closer != nil {
		return f.closer.Close()
	}
	return nil
}

// Manager resolves asset paths against directories and packs.
type Manager struct {
	sources []source
	cache   *Cache
	mu      sync.RWMutex
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// Open creates a manager over packs and directories. Directories are added
// after packs, so a loose file overrides the packed one.
func Open(dirs, packs []string) (*Manager, error) {
	m := NewManager()
	for _, p := range packs {
		if err := m.AddPack(p); err != nil {
			m.Close()
			return nil, err
		}
	}
	for _, d := range dirs {
		if err := m.AddDir(d); err != nil {
			m.Close()
			return nil, err
		}
	}
	return m, nil
}

// AddDir adds a directory root.
// Sources are searched in reverse order (last added = highest priority).
func (m *Manager) AddDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("adding directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("adding directory %s: not a directory", dir)
	}

	m.add(dirSource{root: dir})
	return nil
}

// AddPack adds a zip archive.
func (m *Manager) AddPack(path string) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("opening pack %s: %w", path, err)
	}

	m.add(fsSource{fsys: zr, closer: zr})
	return nil
}

// AddFS adds an arbitrary file system.
func (m *Manager) AddFS(fsys fs.FS) {
	m.add(fsSource{fsys: fsys})
}

func (m *Manager) add(s source) {
	m.mu.Lock()
	m.sources = append(m.sources, s)
	m.mu.Unlock()
}

// Load reads a file. Absolute paths are read from disk directly.
func (m *Manager) Load(name string) ([]byte, error) {
	key := normalizePath(name)

	if data, ok := m.cache.Get(key); ok {
		return data, nil
	}

	if filepath.IsAbs(name) {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, name, err)
		}
		m.cache.Set(key, data)
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.sources) - 1; i >= 0; i-- {
		data, err := m.sources[i].read(key)
		if err == nil {
			m.cache.Set(key, data)
			return data, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Forget drops a cached file so the next Load reads it again.
func (m *Manager) Forget(name string) {
	m.cache.Delete(normalizePath(name))
}

// Cache returns the manager's byte cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// Close closes all sources.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.sources {
		s.Close()
	}
	m.sources = nil
	m.cache.Clear()
}

func normalizePath(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	return strings.TrimPrefix(name, "./")
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Delete removes an item from cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
