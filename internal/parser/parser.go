package parser

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/frherrer/docx2testlink/internal/document"
)

// Loader turns the raw bytes of a file into a document tree.
type Loader interface {
	Load(path string, content []byte) (*document.Document, error)
	SupportedExtensions() []string
}

// LoaderRegistry maps file extensions to loaders.
type LoaderRegistry interface {
	Register(loader Loader)
	LoaderFor(extension string) (Loader, error)
	LoaderForPath(path string) (Loader, error)
}

// DefaultRegistry is a thread-safe loader registry.
type DefaultRegistry struct {
	mu      sync.RWMutex
	loaders map[string]Loader
}

// NewRegistry creates a new DefaultRegistry.
func NewRegistry() *DefaultRegistry {
	return &DefaultRegistry{
		loaders: make(map[string]Loader),
	}
}

// NewDefaultRegistry returns a registry with the docx, markdown and AsciiDoc
// loaders.
func NewDefaultRegistry() *DefaultRegistry {
	r := NewRegistry()
	r.Register(NewDocxLoader())
	r.Register(NewMarkdownLoader())
	r.Register(NewAsciiDocLoader())
	return r
}

// Register adds a loader to the registry for each of its supported extensions.
func (r *DefaultRegistry) Register(l Loader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ext := range l.SupportedExtensions() {
		r.loaders[normalizeExt(ext)] = l
	}
}

// LoaderFor returns the loader registered for the given file extension.
func (r *DefaultRegistry) LoaderFor(extension string) (Loader, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if l, ok := r.loaders[normalizeExt(extension)]; ok {
		return l, nil
	}
	return nil, fmt.Errorf("no loader registered for extension %q (supported: %s)",
		extension, strings.Join(r.extensions(), ", "))
}

// LoaderForPath returns the loader for the extension of path.
func (r *DefaultRegistry) LoaderForPath(path string) (Loader, error) {
	return r.LoaderFor(filepath.Ext(path))
}

func (r *DefaultRegistry) extensions() []string {
	exts := make([]string, 0, len(r.loaders))
	for ext := range r.loaders {
		exts = append(exts, "."+ext)
	}
	sort.Strings(exts)
	return exts
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
