package format

import (
	"fmt"

	"dirview/internal/errors"
	"dirview/pkg/types"

	"github.com/gobwas/glob"
)

// Matcher hides entries whose names match any of a set of glob patterns.
// A nil Matcher hides nothing.
type Matcher struct {
	patterns []string
	globs    []glob.Glob
}

// NewMatcher compiles patterns. An invalid pattern is a ConfigError naming
// its position.
func NewMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{patterns: patterns}
	for i, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.NewConfigError("invalid hide pattern", fmt.Sprintf("hide_patterns[%d]", i), errors.InvalidConfig, err)
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

// Patterns returns the source patterns.
func (m *Matcher) Patterns() []string {
	if m == nil {
		return nil
	}
	return m.patterns
}

// Hides reports whether name matches any pattern.
func (m *Matcher) Hides(name string) bool {
	if m == nil {
		return false
	}
	for _, g := range m.globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Apply returns the entries not hidden by m, in their original order.
func (m *Matcher) Apply(entries []types.Entry) []types.Entry {
	out := make([]types.Entry, 0, len(entries))
	for _, e := range entries {
		if !m.Hides(e.Name) {
			out = append(out, e)
		}
	}
	return out
}

// Keep returns only the entries m matches, in their original order. A nil
// Matcher keeps everything.
func (m *Matcher) Keep(entries []types.Entry) []types.Entry {
	if m == nil {
		return entries
	}
	out := make([]types.Entry, 0, len(entries))
	for _, e := range entries {
		if m.Hides(e.Name) {
			out = append(out, e)
		}
	}
	return out
}

// Filter drops entries whose names match any pattern.
func Filter(entries []types.Entry, patterns []string) ([]types.Entry, error) {
	m, err := NewMatcher(patterns)
	if err != nil {
		return nil, err
	}
	return m.Apply(entries), nil
}
