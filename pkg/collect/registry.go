package collect

import (
	"sort"
)

// Registry is the mutable set of baseline expectations for one
// comparison run. Keys are slash-normalized paths relative to the
// baseline root with the marker suffix trimmed, i.e. the relative
// path the generator is expected to produce. Entries are removed as
// the reconciler satisfies them; whatever remains at the end is
// reported as never generated.
type Registry struct {
	entries map[string]string // generated relative path -> baseline relative path
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]string),
	}
}

// Add records a baseline expectation
func (r *Registry) Add(relPath, baselinePath string) {
	r.entries[relPath] = baselinePath
}

// Remove crosses an expectation off the registry.
// Removing an absent key is a no-op.
func (r *Registry) Remove(relPath string) {
	delete(r.entries, relPath)
}

// Contains reports whether an expectation exists for the path
func (r *Registry) Contains(relPath string) bool {
	_, ok := r.entries[relPath]
	return ok
}

// BaselinePath returns the baseline-relative path recorded for a
// generated path, or empty if no expectation exists
func (r *Registry) BaselinePath(relPath string) string {
	return r.entries[relPath]
}

// Len returns the number of unsatisfied expectations
func (r *Registry) Len() int {
	return len(r.entries)
}

// Paths returns the unsatisfied generated-relative paths, sorted for
// stable reporting. The registry itself carries no order guarantee.
func (r *Registry) Paths() []string {
	paths := make([]string, 0, len(r.entries))
	for p := range r.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
