package pattern

import (
	"fmt"
	"regexp/syntax"
	"strings"
	"sync"
	"unicode/utf8"
)

// Unicode replacements for the Perl classes. Inside a bracket expression only
// class bodies can be spliced, so \W and \S become the explicit ranges of the
// complement there.
const (
	wordBody  = `\p{L}\p{M}\p{Nd}\p{Pc}`
	spaceBody = `\x09-\x0D\x20\x{85}\p{Z}`
	digit     = `\p{Nd}`
	nonDigit  = `\P{Nd}`
)

// unicodeClasses rewrites \d, \w, \s and their negations in expr to Unicode
// property classes. Text inside \Q...\E is copied unchanged.
func unicodeClasses(expr string) string {
	if !strings.Contains(expr, `\`) {
		return expr
	}

	var sb strings.Builder
	sb.Grow(len(expr) + 32)

	inClass := false
	classStart := 0 // offset just past "[" or "[^"

	for i := 0; i < len(expr); {
		c := expr[i]
		switch {
		case c == '\\' && i+1 < len(expr):
			next := expr[i+1]
			if next == 'Q' {
				end := strings.Index(expr[i+2:], `\E`)
				if end < 0 {
					sb.WriteString(expr[i:])
					return sb.String()
				}
				stop := i + 2 + end + 2
				sb.WriteString(expr[i:stop])
				i = stop
				continue
			}
			if repl, ok := perlClass(next, inClass); ok {
				sb.WriteString(repl)
				i += 2
				continue
			}
			// Any other escape: copy the backslash and the full escaped rune.
			_, width := utf8.DecodeRuneInString(expr[i+1:])
			sb.WriteString(expr[i : i+1+width])
			i += 1 + width
			continue

		case !inClass && c == '[':
			inClass = true
			sb.WriteByte(c)
			i++
			if i < len(expr) && expr[i] == '^' {
				sb.WriteByte('^')
				i++
			}
			classStart = i
			continue

		case inClass && c == '[' && strings.HasPrefix(expr[i:], "[:"):
			// POSIX class such as [:alpha:]
			if end := strings.Index(expr[i+2:], ":]"); end >= 0 {
				stop := i + 2 + end + 2
				sb.WriteString(expr[i:stop])
				i = stop
				continue
			}

		case inClass && c == ']' && i != classStart:
			inClass = false
		}

		sb.WriteByte(c)
		i++
	}
	return sb.String()
}

func perlClass(c byte, inClass bool) (string, bool) {
	switch c {
	case 'd':
		return digit, true
	case 'D':
		return nonDigit, true
	case 'w':
		if inClass {
			return wordBody, true
		}
		return "[" + wordBody + "]", true
	case 's':
		if inClass {
			return spaceBody, true
		}
		return "[" + spaceBody + "]", true
	case 'W':
		if inClass {
			return nonWordBody(), true
		}
		return "[^" + wordBody + "]", true
	case 'S':
		if inClass {
			return nonSpaceBody(), true
		}
		return "[^" + spaceBody + "]", true
	}
	return "", false
}

var (
	nonWordBody  = sync.OnceValue(func() string { return complementBody(wordBody) })
	nonSpaceBody = sync.OnceValue(func() string { return complementBody(spaceBody) })
)

// complementBody returns the ranges not covered by the class body as a
// bracket expression body of \x{..} ranges.
func complementBody(body string) string {
	re, err := syntax.Parse("[^"+body+"]", syntax.Perl)
	if err != nil {
		panic("pattern: bad class body " + body + ": " + err.Error())
	}
	var sb strings.Builder
	for i := 0; i+1 < len(re.Rune); i += 2 {
		lo, hi := re.Rune[i], re.Rune[i+1]
		fmt.Fprintf(&sb, `\x{%X}`, lo)
		if hi != lo {
			fmt.Fprintf(&sb, `-\x{%X}`, hi)
		}
	}
	return sb.String()
}
