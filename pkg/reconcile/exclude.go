package reconcile

import (
	"path/filepath"
	"strings"
)

// shouldExclude checks if an output-tree path should be skipped based
// on the given patterns. Incidental files the generator leaves behind
// (caches, editor droppings) are excluded this way rather than failing
// the run as missing baselines.
// Patterns support:
//   - Simple glob patterns: *.tmp, *.log
//   - Directory patterns: .git/, __pycache__/
//   - Path patterns: build/*
func shouldExclude(relativePath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	// Normalize path separators for cross-platform support
	normalizedPath := filepath.ToSlash(relativePath)
	baseName := filepath.Base(relativePath)

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}

		normalizedPattern := filepath.ToSlash(pattern)

		// Directory pattern (ends with /) excludes the directory and
		// everything beneath it
		if strings.HasSuffix(normalizedPattern, "/") {
			dirPattern := strings.TrimSuffix(normalizedPattern, "/")
			if normalizedPath == dirPattern ||
				strings.HasPrefix(normalizedPath, dirPattern+"/") ||
				strings.Contains(normalizedPath, "/"+dirPattern+"/") {
				return true
			}
			continue
		}

		if strings.Contains(normalizedPattern, "/") {
			// Pattern applies to the full relative path
			if matched, _ := filepath.Match(normalizedPattern, normalizedPath); matched {
				return true
			}
			if strings.HasSuffix(normalizedPath, normalizedPattern) {
				return true
			}
		} else {
			// Pattern applies to the basename only
			if matched, _ := filepath.Match(normalizedPattern, baseName); matched {
				return true
			}
		}
	}

	return false
}
