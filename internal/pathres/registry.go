package pathres

import (
	"path/filepath"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Registry maps project namespaces to canonical filesystem roots.
//
// Mutations (Add, Remove) are rare administrator-triggered events;
// reads happen on every routed tool invocation. A sync.RWMutex keeps
// readers on a consistent snapshot of the mapping.
type Registry struct {
	mu     sync.RWMutex
	roots  map[string]string
	order  []string // namespaces in insertion order
	logger *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for mutation and fallback events.
// The registry is logically correct with the default nop logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// MappingSource yields namespace to path mappings from configuration.
// It decouples the registry from how configuration is sourced.
type MappingSource interface {
	GetProjectMappings() map[string]string
}

// New creates a registry from explicit namespace to path mappings.
// Every path is canonicalized at insertion. An empty (or nil) mapping
// yields an empty registry; no default entry is added, and callers must
// handle zero-entry resolution explicitly.
func New(mappings map[string]string, opts ...Option) *Registry {
	r := &Registry{
		roots:  make(map[string]string, len(mappings)),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	// Sorted for deterministic List order; Go maps carry none of their own.
	names := make([]string, 0, len(mappings))
	for name := range mappings {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		r.roots[name] = canonicalize(mappings[name])
		r.order = append(r.order, name)
	}

	r.logger.Info("path registry initialized from explicit mappings",
		zap.Int("count", len(names)),
		zap.Strings("projects", names),
	)
	return r
}

// NewFromRoot creates a registry with a single default entry derived
// from one configured root directory: the namespace is the directory's
// final path segment, the root is the canonicalized path.
func NewFromRoot(root string, opts ...Option) *Registry {
	r := &Registry{
		roots:  make(map[string]string, 1),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	canonical := canonicalize(root)
	namespace := filepath.Base(canonical)
	r.roots[namespace] = canonical
	r.order = append(r.order, namespace)

	r.logger.Info("path registry initialized from default root",
		zap.String("project", namespace),
		zap.String("root", canonical),
	)
	return r
}

// FromConfig creates a registry from any configuration object exposing
// project mappings. Construction is identical to New on the yielded map.
func FromConfig(src MappingSource, opts ...Option) *Registry {
	return New(src.GetProjectMappings(), opts...)
}

// Add inserts or overwrites the entry for namespace, canonicalizing the
// path first. Namespace format is not validated; the empty string is a
// legal namespace.
func (r *Registry) Add(namespace, path string) {
	canonical := canonicalize(path)

	r.mu.Lock()
	if _, exists := r.roots[namespace]; !exists {
		r.order = append(r.order, namespace)
	}
	r.roots[namespace] = canonical
	r.mu.Unlock()

	r.logger.Info("project registered",
		zap.String("project", namespace),
		zap.String("root", canonical),
	)
}

// Remove deletes the entry for namespace. It returns a NotFoundError
// carrying the currently registered namespaces when absent; the
// registry is unchanged in that case.
func (r *Registry) Remove(namespace string) error {
	r.mu.Lock()
	if _, ok := r.roots[namespace]; !ok {
		available := r.namespacesLocked()
		r.mu.Unlock()
		return &NotFoundError{Namespace: namespace, Available: available}
	}
	delete(r.roots, namespace)
	for i, name := range r.order {
		if name == namespace {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.mu.Unlock()

	r.logger.Info("project removed", zap.String("project", namespace))
	return nil
}

// Get returns the canonical root for namespace, or a NotFoundError
// carrying the currently registered namespaces.
func (r *Registry) Get(namespace string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	root, ok := r.roots[namespace]
	if !ok {
		return "", &NotFoundError{Namespace: namespace, Available: r.namespacesLocked()}
	}
	return root, nil
}

// List returns the registered namespaces in insertion order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namespacesLocked()
}

// Len returns the number of registered namespaces.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.roots)
}

// namespacesLocked copies the namespace list. Callers must hold mu.
func (r *Registry) namespacesLocked() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// canonicalize converts a path to canonical absolute form: relative
// segments eliminated and symlinks resolved where the path exists.
// Canonicalization happens once, at insertion, never at lookup.
func canonicalize(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
