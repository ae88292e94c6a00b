package pattern

import (
	"regexp/syntax"
	"strings"
	"unicode/utf8"

	"github.com/coregx/ahocorasick"
)

// maxClassLiterals bounds how many code points a character class may expand
// to before the literal fast path gives up.
const maxClassLiterals = 64

// literalSet returns the strings a pattern can match when it is a
// case-sensitive literal, an alternation of literals, or a small character
// class. Returns nil when the pattern is anything else, or when one literal
// occurs inside another. In a substring-free set the match that ends first
// also starts first, so the automaton and the regex pick the same match.
func literalSet(re *syntax.Regexp) []string {
	var lits []string
	switch re.Op {
	case syntax.OpLiteral, syntax.OpCharClass:
		lits = appendLiterals(nil, re)
	case syntax.OpAlternate:
		for _, sub := range re.Sub {
			if lits = appendLiterals(lits, sub); lits == nil {
				return nil
			}
		}
	}
	if !substringFree(lits) {
		return nil
	}
	return lits
}

func substringFree(lits []string) bool {
	for i, a := range lits {
		for j, b := range lits {
			if i != j && strings.Contains(b, a) {
				return false
			}
		}
	}
	return true
}

func appendLiterals(dst []string, re *syntax.Regexp) []string {
	if re.Flags&syntax.FoldCase != 0 {
		return nil
	}
	switch re.Op {
	case syntax.OpLiteral:
		if len(re.Rune) == 0 {
			return nil
		}
		return append(dst, string(re.Rune))
	case syntax.OpCharClass:
		total := 0
		for i := 0; i+1 < len(re.Rune); i += 2 {
			total += int(re.Rune[i+1]-re.Rune[i]) + 1
			if total > maxClassLiterals {
				return nil
			}
		}
		if total == 0 {
			return nil
		}
		for i := 0; i+1 < len(re.Rune); i += 2 {
			for r := re.Rune[i]; r <= re.Rune[i+1]; r++ {
				dst = append(dst, string(r))
			}
		}
		return dst
	}
	return nil
}

func buildAutomaton(lits []string) (*ahocorasick.Automaton, error) {
	builder := ahocorasick.NewBuilder()
	for _, lit := range lits {
		builder.AddPattern([]byte(lit))
	}
	return builder.Build()
}

// engineSafe reports whether re only uses constructs coregex matches exactly:
// case-sensitive ASCII literals and classes, greedy repeats, and no assertion
// that looks left of the search position.
func engineSafe(re *syntax.Regexp) bool {
	if re.Flags&syntax.FoldCase != 0 {
		return false
	}
	switch re.Op {
	case syntax.OpLiteral:
		for _, r := range re.Rune {
			if r >= utf8.RuneSelf {
				return false
			}
		}
	case syntax.OpCharClass:
		for i := 1; i < len(re.Rune); i += 2 {
			if re.Rune[i] >= utf8.RuneSelf {
				return false
			}
		}
	case syntax.OpAnyChar, syntax.OpAnyCharNotNL,
		syntax.OpBeginLine, syntax.OpBeginText, syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return false
	case syntax.OpStar, syntax.OpPlus, syntax.OpQuest, syntax.OpRepeat:
		if re.Flags&syntax.NonGreedy != 0 {
			return false
		}
	}
	for _, sub := range re.Sub {
		if !engineSafe(sub) {
			return false
		}
	}
	return true
}
