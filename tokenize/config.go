package tokenize

import "fmt"

// Unit is the element n-grams are built from.
type Unit int

const (
	// Word n-grams over UAX #29 word segments that contain a letter or a
	// number. Multi-word grams are joined with a single space.
	Word Unit = iota
	// Char n-grams over extended grapheme clusters of the whole string,
	// white space included.
	Char
)

// String returns the unit name.
func (u Unit) String() string {
	switch u {
	case Word:
		return "word"
	case Char:
		return "char"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

// ParseUnit parses "word" or "char".
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "word", "":
		return Word, nil
	case "char":
		return Char, nil
	}
	return 0, &ConfigError{Field: "Unit", Message: fmt.Sprintf("unknown unit %q", s)}
}

// Config controls tokenization.
type Config struct {
	// Unit selects word or character n-grams.
	// Default: Word
	Unit Unit

	// MinN and MaxN bound the n-gram sizes, inclusive.
	// Default: 1, 1
	MinN int
	MaxN int

	// Lowercase applies Unicode lowercase mapping before tokenizing.
	// Default: false
	Lowercase bool

	// Normalize applies NFC normalization before tokenizing.
	// Default: false
	Normalize bool
}

// DefaultConfig returns unigram word counting without text normalization.
func DefaultConfig() Config {
	return Config{
		Unit: Word,
		MinN: 1,
		MaxN: 1,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Unit != Word && c.Unit != Char {
		return &ConfigError{Field: "Unit", Message: fmt.Sprintf("unknown unit %d", int(c.Unit))}
	}
	if c.MinN < 1 {
		return &ConfigError{Field: "MinN", Message: "must be at least 1"}
	}
	if c.MaxN < c.MinN {
		return &ConfigError{Field: "MaxN", Message: "must not be less than MinN"}
	}
	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "yurki: invalid tokenize config: " + e.Field + ": " + e.Message
}
