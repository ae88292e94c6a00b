package tokenize

import (
	"strings"

	"github.com/coregx/yurki/internal/conv"
)

// Vocabulary maps n-gram tokens to dense, zero-based ids assigned in
// first-seen order. It is built once per Vectorize call and is read-only
// afterwards.
type Vocabulary struct {
	ids    map[string]int32
	tokens []string
}

func newVocabulary() *Vocabulary {
	return &Vocabulary{ids: make(map[string]int32)}
}

// add returns the id of tok, assigning the next id on first sight.
func (v *Vocabulary) add(tok string) int32 {
	if id, ok := v.ids[tok]; ok {
		return id
	}
	// Tokens may be substrings of the batch; keep our own copy.
	tok = strings.Clone(tok)
	id := conv.IntToInt32(len(v.tokens))
	v.ids[tok] = id
	v.tokens = append(v.tokens, tok)
	return id
}

// Len returns the number of distinct tokens.
func (v *Vocabulary) Len() int {
	return len(v.tokens)
}

// ID returns the id of tok.
func (v *Vocabulary) ID(tok string) (int32, bool) {
	id, ok := v.ids[tok]
	return id, ok
}

// Token returns the token with the given id. Panics if id is out of range.
func (v *Vocabulary) Token(id int32) string {
	return v.tokens[id]
}

// Tokens returns all tokens indexed by id. The slice is shared and must not
// be modified.
func (v *Vocabulary) Tokens() []string {
	return v.tokens
}

// Map returns a fresh token -> id mapping.
func (v *Vocabulary) Map() map[string]int {
	m := make(map[string]int, len(v.ids))
	for tok, id := range v.ids {
		m[tok] = int(id)
	}
	return m
}
