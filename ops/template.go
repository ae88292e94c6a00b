package ops

import (
	"strconv"
	"strings"

	"github.com/coregx/yurki/pattern"
)

type segmentKind uint8

const (
	segLiteral segmentKind = iota
	segIndex
	segName
)

type segment struct {
	kind  segmentKind
	text  string // literal text or group name
	index int
}

// Template is a parsed replacement string. It is immutable and safe to share
// between goroutines.
//
// Inside the replacement, $name or ${name} refers to a capture group, where
// name is the longest sequence of letters, digits and underscores. A purely
// numeric name is a group index ($0 is the whole match); otherwise it is a
// group name. $$ is a literal $. A $ not followed by a valid reference is
// copied literally. References to missing or non-participating groups expand
// to the empty string.
type Template struct {
	raw      string
	segments []segment
	groups   bool
}

// ParseTemplate parses a replacement string.
//
// Example:
//
//	t := ops.ParseTemplate("$3/$2/$1")
func ParseTemplate(repl string) *Template {
	t := &Template{raw: repl}

	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{kind: segLiteral, text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(repl); {
		c := repl[i]
		if c != '$' {
			j := strings.IndexByte(repl[i:], '$')
			if j < 0 {
				j = len(repl) - i
			}
			lit.WriteString(repl[i : i+j])
			i += j
			continue
		}

		if i+1 < len(repl) && repl[i+1] == '$' {
			lit.WriteByte('$')
			i += 2
			continue
		}

		name, rest, ok := extractName(repl[i+1:])
		if !ok {
			lit.WriteByte('$')
			i++
			continue
		}
		flush()
		if isDigits(name) {
			n, err := strconv.Atoi(name)
			if err != nil {
				n = -1 // out of range, expands to nothing
			}
			t.segments = append(t.segments, segment{kind: segIndex, index: n})
		} else {
			t.segments = append(t.segments, segment{kind: segName, text: name})
		}
		t.groups = true
		i = len(repl) - len(rest)
	}
	flush()
	return t
}

// NeedsGroups reports whether the template refers to any capture group.
func (t *Template) NeedsGroups() bool {
	return t.groups
}

// String returns the replacement as written.
func (t *Template) String() string {
	return t.raw
}

// extractName parses the reference following a $, either {name} or a bare
// name, returning the name and the remaining text.
func extractName(s string) (name, rest string, ok bool) {
	if s == "" {
		return "", "", false
	}
	if s[0] == '{' {
		end := strings.IndexByte(s, '}')
		if end < 2 {
			return "", "", false
		}
		name = s[1:end]
		for i := 0; i < len(name); i++ {
			if !isNameByte(name[i]) {
				return "", "", false
			}
		}
		return name, s[end+1:], true
	}

	i := 0
	for i < len(s) && isNameByte(s[i]) {
		i++
	}
	if i == 0 {
		return "", "", false
	}
	return s[:i], s[i:], true
}

func isNameByte(c byte) bool {
	return c == '_' || '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

// expand writes the template for the match at loc. loc holds group index
// pairs when the template refers to groups, or only the whole match otherwise.
func (t *Template) expand(sb *strings.Builder, s string, loc []int, p *pattern.Pattern) {
	for _, seg := range t.segments {
		switch seg.kind {
		case segLiteral:
			sb.WriteString(seg.text)
		case segIndex:
			writeGroup(sb, s, loc, seg.index)
		case segName:
			writeGroup(sb, s, loc, p.SubexpIndex(seg.text))
		}
	}
}

func writeGroup(sb *strings.Builder, s string, loc []int, group int) {
	if group < 0 || 2*group+1 >= len(loc) {
		return
	}
	if start := loc[2*group]; start >= 0 {
		sb.WriteString(s[start:loc[2*group+1]])
	}
}
