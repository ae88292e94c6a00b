package pattern

import (
	"iter"
	"unicode/utf8"

	"github.com/coregx/yurki/internal/conv"
)

// MatchString reports whether s contains any match.
func (p *Pattern) MatchString(s string) bool {
	b := conv.StringBytes(s)
	switch {
	case p.literals != nil:
		return p.literals.IsMatch(b)
	case p.std != nil:
		return p.std.Match(b)
	}
	return p.re.Match(b)
}

// FindStringIndex returns the location of the leftmost match in s as
// s[loc[0]:loc[1]], or nil if there is none.
func (p *Pattern) FindStringIndex(s string) []int {
	b := conv.StringBytes(s)
	if p.literals != nil {
		m := p.literals.Find(b, 0)
		if m == nil {
			return nil
		}
		return []int{m.Start, m.End}
	}
	if p.std != nil {
		return p.std.FindIndex(b)
	}
	return p.re.FindIndex(b)
}

// FindStringSubmatchIndex returns the leftmost match and its groups as index
// pairs. Pair i is group i (0 is the whole match); a group that did not take
// part in the match has -1 indices. Returns nil if there is no match.
func (p *Pattern) FindStringSubmatchIndex(s string) []int {
	var loc []int
	if p.std != nil {
		loc = p.std.FindStringSubmatchIndex(s)
	} else {
		loc = p.re.FindSubmatchIndex(conv.StringBytes(s))
	}
	if loc == nil {
		return nil
	}
	return p.padGroups(loc)
}

// Matches yields successive non-overlapping matches in s, left to right.
// At most n matches are produced when n > 0; all of them when n <= 0.
// With submatch set each location holds every group's index pair, otherwise
// only the whole match. Iteration stops as soon as the consumer stops or the
// n-th match has been yielded, so later text is never scanned.
//
// An empty match immediately following a previous match is skipped, and
// the scan resumes one code point later, never inside a UTF-8 sequence.
func (p *Pattern) Matches(s string, n int, submatch bool) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		switch {
		case p.literals != nil && !submatch:
			p.literalMatches(s, n, yield)
		case p.std != nil:
			p.stdMatches(s, n, submatch, yield)
		default:
			p.engineMatches(s, n, submatch, yield)
		}
	}
}

// FindAllStringIndex returns the locations of up to n matches (all if n <= 0).
func (p *Pattern) FindAllStringIndex(s string, n int) [][]int {
	var out [][]int
	for loc := range p.Matches(s, n, false) {
		out = append(out, loc)
	}
	return out
}

// FindAllStringSubmatchIndex returns group locations for up to n matches
// (all if n <= 0).
func (p *Pattern) FindAllStringSubmatchIndex(s string, n int) [][]int {
	var out [][]int
	for loc := range p.Matches(s, n, true) {
		out = append(out, loc)
	}
	return out
}

func (p *Pattern) engineMatches(s string, n int, submatch bool, yield func([]int) bool) {
	b := conv.StringBytes(s)
	end := len(b)
	found := 0

	for pos, prevEnd := 0, -1; pos <= end; {
		var loc []int
		if submatch {
			loc = p.re.FindSubmatchIndex(b[pos:])
		} else {
			loc = p.re.FindIndex(b[pos:])
		}
		if loc == nil {
			return
		}
		for i := range loc {
			if loc[i] >= 0 {
				loc[i] += pos
			}
		}

		accept := true
		if loc[1] == pos {
			// Empty match at the scan position
			if loc[0] == prevEnd {
				accept = false
			}
			if pos < end {
				_, width := utf8.DecodeRune(b[pos:])
				pos += width
			} else {
				pos = end + 1
			}
		} else {
			pos = loc[1]
		}
		prevEnd = loc[1]

		if !accept {
			continue
		}
		if submatch {
			loc = p.padGroups(loc)
		}
		if !yield(loc) {
			return
		}
		found++
		if n > 0 && found >= n {
			return
		}
	}
}

func (p *Pattern) literalMatches(s string, n int, yield func([]int) bool) {
	b := conv.StringBytes(s)
	found := 0
	for pos := 0; pos < len(b); {
		m := p.literals.Find(b, pos)
		if m == nil {
			return
		}
		if !yield([]int{m.Start, m.End}) {
			return
		}
		found++
		if n > 0 && found >= n {
			return
		}
		// Literals are never empty, so End > pos.
		pos = m.End
	}
}

// stdMatches iterates with regexp, which searches the whole haystack and so
// keeps the context left of each match.
func (p *Pattern) stdMatches(s string, n int, submatch bool, yield func([]int) bool) {
	limit := n
	if limit <= 0 {
		limit = -1
	}
	var locs [][]int
	if submatch {
		locs = p.std.FindAllStringSubmatchIndex(s, limit)
	} else {
		locs = p.std.FindAllStringIndex(s, limit)
	}
	for _, loc := range locs {
		if submatch {
			loc = p.padGroups(loc)
		}
		if !yield(loc) {
			return
		}
	}
}

// padGroups guarantees 2*(NumSubexp+1) entries.
func (p *Pattern) padGroups(loc []int) []int {
	want := 2 * (p.numSubexp + 1)
	for len(loc) < want {
		loc = append(loc, -1)
	}
	return loc
}
