package ops

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Copy returns a copy of s backed by new storage.
func Copy(s string) string {
	return strings.Clone(s)
}

// Upper applies Unicode default (locale independent) uppercase mapping,
// including expansions such as ß -> SS.
//
// An Upper holds mapping state and must not be shared between goroutines;
// create one per worker.
type Upper struct {
	caser cases.Caser
}

// NewUpper returns a ready-to-use uppercase mapper.
func NewUpper() *Upper {
	return &Upper{caser: cases.Upper(language.Und)}
}

// Apply returns the uppercase form of s.
func (u *Upper) Apply(s string) string {
	return u.caser.String(s)
}

// Lower is the lowercase counterpart of Upper, with the same sharing rules.
type Lower struct {
	caser cases.Caser
}

// NewLower returns a ready-to-use lowercase mapper.
func NewLower() *Lower {
	return &Lower{caser: cases.Lower(language.Und)}
}

// Apply returns the lowercase form of s.
func (l *Lower) Apply(s string) string {
	return l.caser.String(s)
}
