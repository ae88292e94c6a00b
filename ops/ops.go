// Package ops implements the per-item operations of the batch engine.
//
// Every function here is pure: it reads one string and a shared, immutable
// *pattern.Pattern and returns a fresh value. Results may alias the input
// string's storage (Go strings are immutable); callers that must not retain
// the input clone what they keep.
package ops

import (
	"strings"

	"github.com/coregx/yurki/pattern"
)

// Find returns the leftmost match in s and whether there was one.
// An empty match and no match both yield "", distinguished by ok.
func Find(s string, p *pattern.Pattern) (match string, ok bool) {
	loc := p.FindStringIndex(s)
	if loc == nil {
		return "", false
	}
	return s[loc[0]:loc[1]], true
}

// IsMatch reports whether s contains a match.
func IsMatch(s string, p *pattern.Pattern) bool {
	return p.MatchString(s)
}

// Capture returns the leftmost match followed by every capture group, in
// declaration order. A group that did not participate yields "". When s has
// no match the result is an empty, non-nil slice.
func Capture(s string, p *pattern.Pattern) []string {
	loc := p.FindStringSubmatchIndex(s)
	if loc == nil {
		return []string{}
	}
	groups := make([]string, len(loc)/2)
	for i := range groups {
		if start := loc[2*i]; start >= 0 {
			groups[i] = s[start:loc[2*i+1]]
		}
	}
	return groups
}

// Split returns the fragments of s between successive matches, including a
// leading and trailing fragment; empty fragments are kept. When s has no
// match the result is []string{s}.
func Split(s string, p *pattern.Pattern) []string {
	var parts []string
	last := 0
	for loc := range p.Matches(s, 0, false) {
		parts = append(parts, s[last:loc[0]])
		last = loc[1]
	}
	return append(parts, s[last:])
}

// Replace substitutes t for the first count matches of p in s (all matches
// when count is 0). The scan stops once count replacements have been made;
// text outside the replaced matches is copied unchanged.
func Replace(s string, p *pattern.Pattern, t *Template, count int) string {
	var sb strings.Builder
	last, matched := 0, false
	for loc := range p.Matches(s, max(count, 0), t.NeedsGroups()) {
		if !matched {
			sb.Grow(len(s) + len(t.raw))
			matched = true
		}
		sb.WriteString(s[last:loc[0]])
		t.expand(&sb, s, loc, p)
		last = loc[1]
	}
	if !matched {
		return s
	}
	sb.WriteString(s[last:])
	return sb.String()
}
