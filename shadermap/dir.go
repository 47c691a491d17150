package shadermap

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/gogpu/sgexport/cache"
)

// Fallback mapping names used when a shader has no mapping of its own.
const (
	DefaultName        = "Default"
	DefaultTerrainName = "DefaultTerrain"
)

type dirEntry struct {
	m   *ShaderMapping
	err error
}

// Dir finds mappings in one directory and caches what it loaded,
// including misses. A Dir belongs to one export pass; call Clear at the
// start and end of a pass.
type Dir struct {
	root  string
	store *cache.Store[string, dirEntry]
}

// NewDir returns a finder rooted at root. An empty root finds nothing.
func NewDir(root string) *Dir {
	return &Dir{
		root:  root,
		store: cache.New[string, dirEntry]("shadermap"),
	}
}

// Root returns the mapping directory.
func (d *Dir) Root() string {
	return d.root
}

// Load returns the mapping stored under base name (see FileName).
func (d *Dir) Load(base string) (*ShaderMapping, error) {
	e := d.store.GetOrCreate(base, func() dirEntry {
		m, err := d.load(base)
		return dirEntry{m: m, err: err}
	})
	return e.m, e.err
}

func (d *Dir) load(base string) (*ShaderMapping, error) {
	if d.root == "" {
		return nil, ErrNotFound
	}
	for _, ext := range Extensions {
		path := filepath.Join(d.root, base+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return Load(path)
	}
	return nil, ErrNotFound
}

// Find returns the mapping for a host shader, falling back to the
// "Default" mapping.
func (d *Dir) Find(shaderName string) (*ShaderMapping, error) {
	return d.find(shaderName, DefaultName)
}

// FindTerrain returns the mapping for a terrain shader, falling back to
// the "DefaultTerrain" mapping.
func (d *Dir) FindTerrain(shaderName string) (*ShaderMapping, error) {
	return d.find(shaderName, DefaultTerrainName)
}

func (d *Dir) find(shaderName, fallback string) (*ShaderMapping, error) {
	if shaderName != "" {
		m, err := d.Load(FileName(shaderName))
		if err == nil || !errors.Is(err, ErrNotFound) {
			return m, err
		}
	}
	return d.Load(FileName(fallback))
}

// Stats returns lookup statistics.
func (d *Dir) Stats() cache.Stats {
	return d.store.Stats()
}

// Clear forgets every cached lookup.
func (d *Dir) Clear() {
	d.store.Clear()
}
