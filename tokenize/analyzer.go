package tokenize

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"

	"github.com/coregx/yurki/ops"
)

// analyzer turns one string into its n-grams. It holds case mapping state and
// scratch buffers, so every worker owns one.
type analyzer struct {
	cfg    Config
	lower  *ops.Lower
	units  []string
	bounds []int
}

func newAnalyzer(cfg Config) *analyzer {
	a := &analyzer{cfg: cfg}
	if cfg.Lowercase {
		a.lower = ops.NewLower()
	}
	return a
}

// grams returns the n-grams of s for every n in [MinN, MaxN], ordered by n and
// then by position.
func (a *analyzer) grams(s string) []string {
	if a.cfg.Normalize {
		s = norm.NFC.String(s)
	}
	if a.lower != nil {
		s = a.lower.Apply(s)
	}

	switch a.cfg.Unit {
	case Char:
		return a.charGrams(s)
	default:
		return a.wordGrams(s)
	}
}

func (a *analyzer) wordGrams(s string) []string {
	a.units = a.units[:0]
	state := -1
	for s != "" {
		var word string
		word, s, state = uniseg.FirstWordInString(s, state)
		if isWordLike(word) {
			a.units = append(a.units, word)
		}
	}

	words := a.units
	out := make([]string, 0, gramCount(len(words), a.cfg.MinN, a.cfg.MaxN))
	for n := a.cfg.MinN; n <= a.cfg.MaxN && n <= len(words); n++ {
		for k := 0; k+n <= len(words); k++ {
			if n == 1 {
				out = append(out, words[k])
			} else {
				out = append(out, strings.Join(words[k:k+n], " "))
			}
		}
	}
	return out
}

func (a *analyzer) charGrams(s string) []string {
	// bounds[k] is the byte offset of cluster k; the last entry is len(s).
	a.bounds = a.bounds[:0]
	rest, state := s, -1
	for rest != "" {
		a.bounds = append(a.bounds, len(s)-len(rest))
		_, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
	}
	a.bounds = append(a.bounds, len(s))

	clusters := len(a.bounds) - 1
	out := make([]string, 0, gramCount(clusters, a.cfg.MinN, a.cfg.MaxN))
	for n := a.cfg.MinN; n <= a.cfg.MaxN && n <= clusters; n++ {
		for k := 0; k+n <= clusters; k++ {
			out = append(out, s[a.bounds[k]:a.bounds[k+n]])
		}
	}
	return out
}

func isWordLike(seg string) bool {
	for _, r := range seg {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}

func gramCount(units, minN, maxN int) int {
	total := 0
	for n := minN; n <= maxN && n <= units; n++ {
		total += units - n + 1
	}
	return total
}
