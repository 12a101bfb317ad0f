// Package layout defines the phonetic rule table that maps Latin key
// sequences to Bengali glyphs.
//
// A Table is built once at startup, either from the builtin phonetic
// scheme or from a user-supplied layout file, and is immutable and
// shared read-only afterwards. The transliteration engine consumes it
// on every keystroke, so lookups are plain map reads with no locking.
package layout

import (
	"fmt"
	"sort"
)

// MaxKeyLen is the longest Latin sequence a rule key may have. The
// engine scans trailing candidates of at most this length.
const MaxKeyLen = 3

// Hasanta is the Bengali virama. It joins two consonants into a
// conjunct when a consonant is typed directly after another.
const Hasanta = "্"

// Category classifies a glyph for the matching algorithm.
type Category int

const (
	// Vowel is an independent (word-initial) vowel letter.
	Vowel Category = iota
	// Consonant carries the inherent vowel until a vowel key follows.
	Consonant
	// VowelSign is a dependent form attached to a consonant.
	VowelSign
	// Digit is a Bengali numeral.
	Digit
	// Special covers punctuation and combining marks.
	Special
)

// String returns the lowercase category name used in layout files.
func (c Category) String() string {
	switch c {
	case Vowel:
		return "vowel"
	case Consonant:
		return "consonant"
	case VowelSign:
		return "vowel_sign"
	case Digit:
		return "digit"
	case Special:
		return "special"
	default:
		return "unknown"
	}
}

// ParseCategory converts a layout-file category name to a Category.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "vowel":
		return Vowel, nil
	case "consonant":
		return Consonant, nil
	case "vowel_sign":
		return VowelSign, nil
	case "digit":
		return Digit, nil
	case "special":
		return Special, nil
	default:
		return 0, fmt.Errorf("unknown glyph category %q", s)
	}
}

// Glyph is one target-script output: its text and its category.
type Glyph struct {
	Text     string
	Category Category
}

// Rule pairs a Latin key sequence with the glyph it produces.
type Rule struct {
	Key   string
	Glyph Glyph
}

// Table is an immutable phonetic rule table.
type Table struct {
	name  string
	rules map[string]Glyph
}

// NewTable validates the given rules and builds a Table.
//
// Keys must be 1 to MaxKeyLen characters of lowercase ASCII letters or
// digits, unique, and each glyph must have non-empty text. These are
// the invariants the matching algorithm relies on.
func NewTable(name string, rules []Rule) (*Table, error) {
	m := make(map[string]Glyph, len(rules))
	for _, r := range rules {
		if err := validateKey(r.Key); err != nil {
			return nil, err
		}
		if r.Glyph.Text == "" {
			return nil, fmt.Errorf("rule %q: empty glyph text", r.Key)
		}
		if _, dup := m[r.Key]; dup {
			return nil, fmt.Errorf("rule %q: duplicate key", r.Key)
		}
		m[r.Key] = r.Glyph
	}
	return &Table{name: name, rules: m}, nil
}

func validateKey(key string) error {
	if len(key) == 0 || len(key) > MaxKeyLen {
		return fmt.Errorf("rule %q: key length must be 1..%d", key, MaxKeyLen)
	}
	for _, c := range key {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return fmt.Errorf("rule %q: keys are lowercase letters and digits only", key)
		}
	}
	return nil
}

// Name returns the layout name ("phonetic" for the builtin table).
func (t *Table) Name() string {
	return t.name
}

// Len returns the number of rules.
func (t *Table) Len() int {
	return len(t.rules)
}

// Lookup returns the glyph for an exact key match.
func (t *Table) Lookup(key string) (Glyph, bool) {
	g, ok := t.rules[key]
	return g, ok
}

// IsConsonantKey reports whether the single character c is a rule key
// mapped to a consonant. The engine uses it to decide conjunct and
// dependent-vowel forms from the buffered context.
func (t *Table) IsConsonantKey(c byte) bool {
	g, ok := t.rules[string(c)]
	return ok && g.Category == Consonant
}

// Entries returns all rules sorted by key, for the preview panel.
func (t *Table) Entries() []Rule {
	out := make([]Rule, 0, len(t.rules))
	for k, g := range t.rules {
		out = append(out, Rule{Key: k, Glyph: g})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
