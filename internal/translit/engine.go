// Package translit implements the phonetic matching state machine.
//
// The engine keeps a short buffer of pending Latin characters for the
// cluster being typed and resolves the longest trailing rule match on
// every keystroke. It produces replacement instructions; erasing and
// injecting text is the synthesizer's job, and deciding which keys
// reach the engine at all is the gateway's.
package translit

import (
	"sync"

	"restrokey/internal/layout"
)

// DefaultOverflowThreshold bounds the pending buffer. The value is a
// tuning constant, not a protocol requirement: it only guards against
// runaway non-matching input.
const DefaultOverflowThreshold = 5

// Replacement tells the synthesizer how to turn the Latin characters
// already on screen into Bengali: erase Erase characters, then insert
// Text. Text may be empty (inherent-vowel elision erases the typed "a"
// and attaches nothing).
type Replacement struct {
	Text  string
	Erase int
}

// Engine owns the pending buffer and the matching algorithm. All
// methods are safe for concurrent use, though in practice the hook
// delivers events strictly sequentially.
type Engine struct {
	mu        sync.Mutex
	table     *layout.Table
	buf       []byte
	threshold int
}

// NewEngine creates an engine over an immutable rule table. A
// threshold < 1 falls back to DefaultOverflowThreshold.
func NewEngine(table *layout.Table, threshold int) *Engine {
	if threshold < 1 {
		threshold = DefaultOverflowThreshold
	}
	return &Engine{
		table:     table,
		buf:       make([]byte, 0, threshold+1),
		threshold: threshold,
	}
}

// Process handles one case-folded letter or digit keystroke and
// returns the replacement to apply, or nil when the keystroke passes
// through unresolved (no match yet, or overflow reset).
//
// The physical key is propagated by the gateway either way, so an
// instruction's erase count includes the character just typed: a match
// of length L always erases exactly L characters.
func (e *Engine) Process(c byte) *Replacement {
	e.mu.Lock()
	defer e.mu.Unlock()

	wasEmpty := len(e.buf) == 0
	e.buf = append(e.buf, c)

	// Runaway input that never matches anything.
	if len(e.buf) > e.threshold {
		e.buf = e.buf[:0]
		return nil
	}

	// Word-initial vowels resolve immediately instead of waiting for
	// a possible longer match. The character stays buffered, so a
	// two-letter vowel ("ou", "aa", "oi") still wins on the next
	// keystroke by erasing this glyph again.
	if wasEmpty && layout.IsPrimaryVowelKey(c) {
		if g, ok := e.table.Lookup(string(c)); ok && g.Category == layout.Vowel {
			return &Replacement{Text: g.Text, Erase: 1}
		}
	}

	maxLen := len(e.buf)
	if maxLen > layout.MaxKeyLen {
		maxLen = layout.MaxKeyLen
	}
	for l := maxLen; l >= 1; l-- {
		start := len(e.buf) - l
		prevConsonant := start > 0 && e.table.IsConsonantKey(e.buf[start-1])

		// A lone short vowel key directly after a consonant attaches
		// its dependent sign right away; the cluster is complete.
		if l == 1 && prevConsonant {
			if sign, ok := layout.ShortVowelSign(c); ok {
				e.buf = e.buf[:0]
				return &Replacement{Text: sign, Erase: 1}
			}
		}

		cand := string(e.buf[start:])
		g, ok := e.table.Lookup(cand)
		if !ok {
			continue
		}

		text := g.Text
		switch g.Category {
		case layout.Consonant:
			if prevConsonant {
				// Consonant after consonant forms a conjunct.
				text = layout.Hasanta + g.Text
			}
		case layout.Vowel:
			if prevConsonant {
				if sign, signOK := layout.DependentSign(g.Text); signOK {
					text = sign
				}
			}
		}

		// The buffer keeps the matched characters: they are the
		// context that turns a following consonant into a conjunct
		// or a following vowel into its dependent sign.
		return &Replacement{Text: text, Erase: l}
	}

	return nil
}

// Pop removes the most recent pending character. The gateway calls it
// on Backspace so the buffer tracks what the user actually erased.
func (e *Engine) Pop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.buf) > 0 {
		e.buf = e.buf[:len(e.buf)-1]
	}
}

// Clear resets the pending buffer. The gateway calls it on word
// boundaries (space, punctuation, navigation keys) so clusters never
// join across them.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.buf = e.buf[:0]
}

// Pending returns the number of buffered characters.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.buf)
}
