package layout

// Builtin returns the standard Bengali phonetic table.
//
// Keys are the sequences reachable through the case-folded keyboard
// hook: lowercase letters and digits. kk, tt and nn are typed-double
// ligature shortcuts carried over from the classic phonetic scheme.
func Builtin() *Table {
	t, err := NewTable("phonetic", builtinRules)
	if err != nil {
		// The builtin rules are compile-time data; a validation
		// failure here is a programming error.
		panic(err)
	}
	return t
}

var builtinRules = []Rule{
	// Vowels
	{"a", Glyph{"অ", Vowel}},
	{"aa", Glyph{"আ", Vowel}},
	{"i", Glyph{"ই", Vowel}},
	{"ii", Glyph{"ঈ", Vowel}},
	{"u", Glyph{"উ", Vowel}},
	{"uu", Glyph{"ঊ", Vowel}},
	{"rri", Glyph{"ঋ", Vowel}},
	{"e", Glyph{"এ", Vowel}},
	{"oi", Glyph{"ঐ", Vowel}},
	{"o", Glyph{"ও", Vowel}},
	{"ou", Glyph{"ঔ", Vowel}},

	// Consonants
	{"k", Glyph{"ক", Consonant}},
	{"kh", Glyph{"খ", Consonant}},
	{"g", Glyph{"গ", Consonant}},
	{"gh", Glyph{"ঘ", Consonant}},
	{"ng", Glyph{"ঙ", Consonant}},
	{"c", Glyph{"চ", Consonant}},
	{"ch", Glyph{"ছ", Consonant}},
	{"j", Glyph{"জ", Consonant}},
	{"jh", Glyph{"ঝ", Consonant}},
	{"ny", Glyph{"ঞ", Consonant}},
	{"t", Glyph{"ট", Consonant}},
	{"th", Glyph{"ঠ", Consonant}},
	{"d", Glyph{"ড", Consonant}},
	{"dh", Glyph{"ঢ", Consonant}},
	{"n", Glyph{"ন", Consonant}},
	{"p", Glyph{"প", Consonant}},
	{"ph", Glyph{"ফ", Consonant}},
	{"f", Glyph{"ফ", Consonant}},
	{"b", Glyph{"ব", Consonant}},
	{"bh", Glyph{"ভ", Consonant}},
	{"v", Glyph{"ভ", Consonant}},
	{"m", Glyph{"ম", Consonant}},
	{"z", Glyph{"য", Consonant}},
	{"r", Glyph{"র", Consonant}},
	{"l", Glyph{"ল", Consonant}},
	{"sh", Glyph{"শ", Consonant}},
	{"s", Glyph{"স", Consonant}},
	{"h", Glyph{"হ", Consonant}},
	{"y", Glyph{"য়", Consonant}},
	{"kk", Glyph{"ক্ক", Consonant}},
	{"tt", Glyph{"ত্ত", Consonant}},
	{"nn", Glyph{"ন্ন", Consonant}},

	// Digits
	{"0", Glyph{"০", Digit}},
	{"1", Glyph{"১", Digit}},
	{"2", Glyph{"২", Digit}},
	{"3", Glyph{"৩", Digit}},
	{"4", Glyph{"৪", Digit}},
	{"5", Glyph{"৫", Digit}},
	{"6", Glyph{"৬", Digit}},
	{"7", Glyph{"৭", Digit}},
	{"8", Glyph{"৮", Digit}},
	{"9", Glyph{"৯", Digit}},
}

// dependentSigns maps an independent vowel to its dependent form. The
// inherent vowel অ maps to the empty string: a bare consonant already
// carries that sound, so nothing is attached.
var dependentSigns = map[string]string{
	"অ": "",
	"আ": "া",
	"ই": "ি",
	"ঈ": "ী",
	"উ": "ু",
	"ঊ": "ূ",
	"এ": "ে",
	"ঐ": "ৈ",
	"ও": "ো",
	"ঔ": "ৌ",
}

// DependentSign returns the dependent form of an independent vowel
// glyph. ok is false for vowels with no dependent form (they are
// emitted unchanged after a consonant).
func DependentSign(independent string) (sign string, ok bool) {
	sign, ok = dependentSigns[independent]
	return sign, ok
}

// shortVowelSigns is the fixed short vowel-key set resolved by the
// length-1 special case directly after a consonant. "a" is the
// inherent vowel and attaches nothing.
var shortVowelSigns = map[byte]string{
	'a': "",
	'i': "ি",
	'e': "ে",
	'u': "ু",
	'o': "ো",
}

// ShortVowelSign returns the dependent sign for one of the short vowel
// keys, and whether c is such a key.
func ShortVowelSign(c byte) (sign string, ok bool) {
	sign, ok = shortVowelSigns[c]
	return sign, ok
}

// IsPrimaryVowelKey reports whether c is one of the five vowel keys
// that resolve immediately at the start of a word.
func IsPrimaryVowelKey(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// Specials are display-only marks shown in the preview panel. They
// have no single-key sequence in the phonetic scheme and are not rule
// table entries.
var Specials = []Rule{
	{"chandrabindu", Glyph{"ঁ", Special}},
	{"anusvar", Glyph{"ং", Special}},
	{"bisarga", Glyph{"ঃ", Special}},
	{"hasanta", Glyph{Hasanta, Special}},
	{"dari", Glyph{"।", Special}},
}
