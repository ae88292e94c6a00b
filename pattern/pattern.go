// Package pattern compiles regular expressions into immutable matchers that
// any number of goroutines can share.
//
// A Pattern is compiled once per batch call and read concurrently by every
// worker. Case-sensitive, greedy patterns over ASCII text are matched by
// github.com/coregx/coregex. Patterns that fold case, use non-ASCII or
// Unicode-property classes, lazy repeats, or look at text left of the match
// (^, \A, \b, \B) are matched by regexp. Case-sensitive literal alternations
// are served by an Aho-Corasick automaton.
//
// Syntax is the RE2 dialect accepted by regexp/syntax, with two adjustments:
//   - \d, \w and \s and their negations match Unicode digits, word
//     characters and white space rather than ASCII only, inside and outside
//     bracket expressions
//   - case-insensitivity is a compile-time switch applied to the whole pattern
//
// Backreferences inside the pattern and other backtracking-only constructs are
// rejected. \b and \B keep ASCII word semantics, so \bмир\b never matches;
// use (?:^|\P{L})мир(?:\P{L}|$) or a Unicode class instead.
package pattern

import (
	"fmt"
	"regexp"
	"regexp/syntax"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/coregex"
	"github.com/coregx/coregex/meta"
)

// Config controls pattern compilation.
type Config struct {
	// CaseInsensitive folds case across the whole pattern.
	CaseInsensitive bool

	// UnicodeClasses widens the Perl classes \d, \w and \s to Unicode.
	// Default: true
	UnicodeClasses bool

	// LiteralFastPath serves literal alternations with Aho-Corasick.
	// Default: true
	LiteralFastPath bool

	// Engine tunes coregex. The zero value selects coregex.DefaultConfig().
	Engine meta.Config
}

// DefaultConfig returns the default compilation settings.
func DefaultConfig() Config {
	return Config{
		UnicodeClasses:  true,
		LiteralFastPath: true,
		Engine:          coregex.DefaultConfig(),
	}
}

// Pattern is a compiled, immutable regular expression.
//
// A Pattern is safe for concurrent use by multiple goroutines.
type Pattern struct {
	expr     string // pattern as written by the caller
	compiled string // pattern handed to the engine
	config   Config

	// Exactly one of re and std is set.
	re  *coregex.Regex
	std *regexp.Regexp

	// literals is set when every match is one of a fixed set of strings.
	literals *ahocorasick.Automaton

	numSubexp int
	names     []string
}

// Compile compiles expr with the default configuration.
//
// Example:
//
//	p, err := pattern.Compile(`(\w+)@(\w+)`, false)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(expr string, caseInsensitive bool) (*Pattern, error) {
	cfg := DefaultConfig()
	cfg.CaseInsensitive = caseInsensitive
	return CompileWithConfig(expr, cfg)
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string, caseInsensitive bool) *Pattern {
	p, err := Compile(expr, caseInsensitive)
	if err != nil {
		panic(err.Error())
	}
	return p
}

// CompileWithConfig compiles expr with explicit settings.
//
// Syntax errors are reported against the pattern as written, as a
// *CompileError wrapping the *syntax.Error.
func CompileWithConfig(expr string, cfg Config) (*Pattern, error) {
	if _, err := syntax.Parse(expr, syntax.Perl); err != nil {
		return nil, &CompileError{Pattern: expr, Err: err}
	}

	compiled := expr
	if cfg.UnicodeClasses {
		compiled = unicodeClasses(compiled)
	}
	if cfg.CaseInsensitive {
		compiled = "(?i)" + compiled
	}

	tree, err := syntax.Parse(compiled, syntax.Perl)
	if err != nil {
		return nil, &CompileError{Pattern: expr, Err: err}
	}

	if cfg.Engine == (meta.Config{}) {
		cfg.Engine = coregex.DefaultConfig()
	}
	if err := cfg.Engine.Validate(); err != nil {
		return nil, fmt.Errorf("yurki: engine config: %w", err)
	}

	p := &Pattern{
		expr:      expr,
		compiled:  compiled,
		config:    cfg,
		numSubexp: tree.MaxCap(),
		names:     tree.CapNames(),
	}

	if engineSafe(tree) {
		p.re, err = coregex.CompileWithConfig(compiled, cfg.Engine)
	} else {
		p.std, err = regexp.Compile(compiled)
	}
	if err != nil {
		return nil, &CompileError{Pattern: expr, Err: err}
	}

	if cfg.LiteralFastPath {
		if lits := literalSet(tree); lits != nil {
			// A failed build only costs the fast path.
			p.literals, _ = buildAutomaton(lits)
		}
	}

	return p, nil
}

// String returns the pattern as written by the caller.
func (p *Pattern) String() string {
	return p.expr
}

// Compiled returns the pattern text handed to the regex engine, after Unicode
// class widening and case folding were applied.
func (p *Pattern) Compiled() string {
	return p.compiled
}

// CaseInsensitive reports whether the pattern folds case.
func (p *Pattern) CaseInsensitive() bool {
	return p.config.CaseInsensitive
}

// Engine returns "literal", "coregex" or "regexp": the matcher serving
// position-only searches.
func (p *Pattern) Engine() string {
	switch {
	case p.literals != nil:
		return "literal"
	case p.re != nil:
		return "coregex"
	default:
		return "regexp"
	}
}

// Literal reports whether searches without captures use the literal fast path.
func (p *Pattern) Literal() bool {
	return p.literals != nil
}

// NumSubexp returns the number of capture groups, not counting the whole match.
func (p *Pattern) NumSubexp() int {
	return p.numSubexp
}

// SubexpNames returns the names of the capture groups. names[0] is the whole
// match and always empty. The slice is shared and must not be modified.
func (p *Pattern) SubexpNames() []string {
	return p.names
}

// SubexpIndex returns the index of the first group with the given name, or -1.
func (p *Pattern) SubexpIndex(name string) int {
	if name == "" {
		return -1
	}
	for i, n := range p.names {
		if n == name {
			return i
		}
	}
	return -1
}
