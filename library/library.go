// SPDX-License-Identifier: MIT

package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/katalvlaran/nucprep/diag"
)

// Library holds the loaded element and material data.
// It is populated by the Load methods and must not be loaded into while
// resolvers are reading from it; after loading it is read-only.
type Library struct {
	elements  map[string]Element
	materials map[string]Material // first record per name
	matOrder  []string            // material names in file order, first occurrences only

	elementPath  string
	materialPath string
	searchPaths  []string
	logger       *zap.Logger
}

// Option configures Open / New.
type Option func(*options)

type options struct {
	elementPath  string
	materialPath string
	searchPaths  []string
	logger       *zap.Logger
}

// WithElementLibrary names the element library file to load.
func WithElementLibrary(path string) Option {
	return func(o *options) { o.elementPath = path }
}

// WithMaterialLibrary names the material library file to load.
func WithMaterialLibrary(path string) Option {
	return func(o *options) { o.materialPath = path }
}

// WithSearchPaths adds directories tried, in order, for relative library
// names that do not exist as given.
func WithSearchPaths(dirs ...string) Option {
	return func(o *options) { o.searchPaths = append(o.searchPaths, dirs...) }
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// New returns an empty library configured by opts. Library paths given in
// opts are remembered but not loaded; use Open to load them immediately.
func New(opts ...Option) *Library {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Library{
		elements:     make(map[string]Element),
		materials:    make(map[string]Material),
		elementPath:  o.elementPath,
		materialPath: o.materialPath,
		searchPaths:  o.searchPaths,
		logger:       o.logger,
	}
}

// Open builds a library and loads every library file named in opts.
// Either file may be omitted; lookups against a missing library miss.
func Open(opts ...Option) (*Library, error) {
	lib := New(opts...)
	if lib.elementPath != "" {
		if err := lib.LoadElementLibrary(lib.elementPath); err != nil {
			return nil, err
		}
	}
	if lib.materialPath != "" {
		if err := lib.LoadMaterialLibrary(lib.materialPath); err != nil {
			return nil, err
		}
	}

	return lib, nil
}

// resolve finds name as given or in one of the search paths.
func (l *Library) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	if _, err := os.Stat(name); err == nil {
		return name
	}
	for _, dir := range l.searchPaths {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return name
}

// LoadElementLibrary scans the element library at path and merges its
// records into l (duplicate keys overwrite).
func (l *Library) LoadElementLibrary(path string) error {
	resolved := l.resolve(path)
	f, err := os.Open(resolved)
	if err != nil {
		return diag.Fatalf(diag.CodeLibraryOpen, path, "unable to open element library: %s", path).Wrap(err)
	}
	defer f.Close()

	elements, err := ParseElements(f)
	if err != nil {
		return diag.Fatalf(diag.CodeLibraryFormat, path, "malformed element library %s", path).Wrap(err)
	}
	for key, ele := range elements {
		l.elements[key] = ele
	}
	l.elementPath = resolved
	l.logger.Info("opened element library",
		zap.String("path", resolved), zap.Int("elements", len(elements)))

	return nil
}

// LoadMaterialLibrary reads the material library at path and indexes it by
// name, keeping the first record of each name.
func (l *Library) LoadMaterialLibrary(path string) error {
	resolved := l.resolve(path)
	f, err := os.Open(resolved)
	if err != nil {
		return diag.Fatalf(diag.CodeLibraryOpen, path, "unable to open material library: %s", path).Wrap(err)
	}
	defer f.Close()

	mats, err := ParseMaterials(f)
	if err != nil {
		return diag.Fatalf(diag.CodeLibraryFormat, path, "malformed material library %s", path).Wrap(err)
	}
	for _, m := range mats {
		if _, seen := l.materials[m.Name]; seen {
			l.logger.Debug("shadowed material record", zap.String("material", m.Name))
			continue
		}
		l.materials[m.Name] = m
		l.matOrder = append(l.matOrder, m.Name)
	}
	l.materialPath = resolved
	l.logger.Info("opened material library",
		zap.String("path", resolved), zap.Int("materials", len(mats)))

	return nil
}

// Element looks up an element record by exact key.
func (l *Library) Element(key string) (Element, bool) {
	e, ok := l.elements[key]
	return e, ok
}

// Material looks up the first material record with exactly this name.
func (l *Library) Material(name string) (Material, bool) {
	m, ok := l.materials[name]
	return m, ok
}

// Elements returns the element keys in lexical order.
func (l *Library) Elements() []string {
	keys := make([]string, 0, len(l.elements))
	for k := range l.elements {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Materials returns the material names in library file order.
func (l *Library) Materials() []string {
	return append([]string(nil), l.matOrder...)
}

// ElementPath reports the element library file actually loaded.
func (l *Library) ElementPath() string { return l.elementPath }

// MaterialPath reports the material library file actually loaded.
func (l *Library) MaterialPath() string { return l.materialPath }

// String summarizes the loaded contents.
func (l *Library) String() string {
	return fmt.Sprintf("library{elements: %d, materials: %d}", len(l.elements), len(l.materials))
}
