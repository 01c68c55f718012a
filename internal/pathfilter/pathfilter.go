// Package pathfilter decides which directory entries belong in a manifest.
package pathfilter

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/taigrr/modelindex/internal/types"
)

// PathFilter keeps entry names that end with a suffix and match no exclude pattern.
type PathFilter struct {
	suffix          string
	excludePatterns []string
}

// New creates a new PathFilter with the given configuration.
// A nil config matches every name.
func New(config *types.FilterConfig) *PathFilter {
	pf := &PathFilter{}
	if config != nil {
		pf.suffix = config.Suffix
		pf.excludePatterns = append(pf.excludePatterns, config.ExcludePatterns...)
	}
	return pf
}

// Matches reports whether an entry name belongs in the manifest.
// The comparison is literal and case-sensitive; entry type is not considered.
func (pf *PathFilter) Matches(name string) bool {
	if name == "" {
		return false
	}
	if !strings.HasSuffix(name, pf.suffix) {
		return false
	}
	return !pf.isExcluded(name)
}

// isExcluded checks the name against the exclude globs.
// Invalid patterns never match.
func (pf *PathFilter) isExcluded(name string) bool {
	for _, pattern := range pf.excludePatterns {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// FilterNames filters a slice of names to only include matching ones,
// preserving input order. The result is never nil.
func (pf *PathFilter) FilterNames(names []string) []string {
	matched := make([]string, 0, len(names))
	for _, name := range names {
		if pf.Matches(name) {
			matched = append(matched, name)
		}
	}
	return matched
}

// ValidPatterns reports the first invalid exclude pattern, if any.
func ValidPatterns(patterns []string) (string, bool) {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return pattern, false
		}
	}
	return "", true
}
