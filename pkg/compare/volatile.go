package compare

import (
	"strings"
)

// VolatileSet is the allowlist of file extensions whose content is
// expected to vary between generator runs. Files matching the set are
// accepted without a content diff: the generator may legitimately
// echo or reformat them. This is a deliberate allowlist keyed on the
// full extension, not a heuristic.
type VolatileSet struct {
	extensions []string
}

// DefaultVolatileExtensions are the extensions exempt from content
// comparison when none are configured. Schema definition files are
// passed through by the generator and may be reformatted.
var DefaultVolatileExtensions = []string{".proto"}

// NewVolatileSet creates an allowlist from the given extensions.
// An empty list falls back to DefaultVolatileExtensions.
func NewVolatileSet(extensions []string) *VolatileSet {
	if len(extensions) == 0 {
		extensions = DefaultVolatileExtensions
	}
	return &VolatileSet{extensions: extensions}
}

// Match reports whether the path ends in a volatile extension
func (v *VolatileSet) Match(path string) bool {
	for _, ext := range v.extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// Extensions returns the configured extension list
func (v *VolatileSet) Extensions() []string {
	return v.extensions
}
