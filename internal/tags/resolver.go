// Package tags selects which Koji tags to act on by matching the full
// tag list against configured glob patterns.
package tags

import (
	"sort"

	"github.com/gobwas/glob"

	"github.com/osg-htc/kojicron/internal/errors"
)

// Lister fetches the complete tag list from the hub.
type Lister interface {
	ListTags() ([]string, error)
}

// Set is a deduplicated collection of tag names.
type Set map[string]struct{}

// NewSet builds a Set from the given tags.
func NewSet(tags ...string) Set {
	s := make(Set, len(tags))
	for _, tag := range tags {
		s.Add(tag)
	}
	return s
}

// Add inserts a tag into the set.
func (s Set) Add(tag string) {
	s[tag] = struct{}{}
}

// Remove deletes a tag from the set.
func (s Set) Remove(tag string) {
	delete(s, tag)
}

// Contains reports whether the tag is in the set.
func (s Set) Contains(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Sorted returns the tags in sorted order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for tag := range s {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// Resolve fetches the tag list once and returns the union of all tags
// matching any of the glob patterns. Matching is case-sensitive with the
// usual shell semantics: `*`, `?`, and character classes, with `*` spanning
// the whole tag. An empty result is not an error at this layer.
func Resolve(l Lister, patterns []string) (Set, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.Wrap(err, errors.KindConfig,
				"config error: bad tag pattern '"+pattern+"'")
		}
		globs = append(globs, g)
	}

	all, err := l.ListTags()
	if err != nil {
		return nil, err
	}

	matched := make(Set)
	for _, g := range globs {
		for _, tag := range all {
			if g.Match(tag) {
				matched.Add(tag)
			}
		}
	}
	return matched, nil
}
