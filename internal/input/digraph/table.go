package digraph

import (
	"fmt"
	"unicode/utf8"
)

// pair is an ordered two-character digraph.
type pair [2]rune

// Table maps two-character digraphs to the character they compose.
// The zero value is an empty table; use Default for the built-in set.
type Table struct {
	entries map[pair]rune
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{entries: make(map[pair]rune)}
}

// Default returns a table holding the built-in RFC 1345 subset.
func Default() *Table {
	t := NewTable()
	for k, v := range rfc1345 {
		t.entries[pair{rune(k[0]), rune(k[1])}] = v
	}
	return t
}

// Add binds the digraph a,b to r.
func (t *Table) Add(a, b, r rune) {
	if t.entries == nil {
		t.entries = make(map[pair]rune)
	}
	t.entries[pair{a, b}] = r
}

// Lookup returns the character composed by a then b. Like Vim, when a,b
// is not defined the reversed order b,a is tried.
func (t *Table) Lookup(a, b rune) (rune, bool) {
	if t == nil {
		return 0, false
	}
	if r, ok := t.entries[pair{a, b}]; ok {
		return r, true
	}
	r, ok := t.entries[pair{b, a}]
	return r, ok
}

// Len returns the number of digraphs in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Merge adds user digraphs given as two-character keys mapped to
// one-character values, e.g. {"a:": "ä"}. Existing entries are replaced.
func (t *Table) Merge(m map[string]string) error {
	for k, v := range m {
		if utf8.RuneCountInString(k) != 2 {
			return fmt.Errorf("digraph %q: key must be two characters", k)
		}
		if utf8.RuneCountInString(v) != 1 {
			return fmt.Errorf("digraph %q: value %q must be one character", k, v)
		}
		a, size := utf8.DecodeRuneInString(k)
		b, _ := utf8.DecodeRuneInString(k[size:])
		r, _ := utf8.DecodeRuneInString(v)
		t.Add(a, b, r)
	}
	return nil
}

// rfc1345 is the built-in digraph set, a subset of RFC 1345 as used by Vim.
var rfc1345 = map[string]rune{
	// Latin-1 letters
	"A!": 'À', "A'": 'Á', "A>": 'Â', "A?": 'Ã', "A:": 'Ä', "AA": 'Å', "AE": 'Æ',
	"C,": 'Ç', "E!": 'È', "E'": 'É', "E>": 'Ê', "E:": 'Ë',
	"I!": 'Ì', "I'": 'Í', "I>": 'Î', "I:": 'Ï', "D-": 'Ð', "N?": 'Ñ',
	"O!": 'Ò', "O'": 'Ó', "O>": 'Ô', "O?": 'Õ', "O:": 'Ö', "O/": 'Ø',
	"U!": 'Ù', "U'": 'Ú', "U>": 'Û', "U:": 'Ü', "Y'": 'Ý', "TH": 'Þ', "ss": 'ß',
	"a!": 'à', "a'": 'á', "a>": 'â', "a?": 'ã', "a:": 'ä', "aa": 'å', "ae": 'æ',
	"c,": 'ç', "e!": 'è', "e'": 'é', "e>": 'ê', "e:": 'ë',
	"i!": 'ì', "i'": 'í', "i>": 'î', "i:": 'ï', "d-": 'ð', "n?": 'ñ',
	"o!": 'ò', "o'": 'ó', "o>": 'ô', "o?": 'õ', "o:": 'ö', "o/": 'ø',
	"u!": 'ù', "u'": 'ú', "u>": 'û', "u:": 'ü', "y'": 'ý', "th": 'þ', "y:": 'ÿ',

	// Latin Extended-A
	"OE": 'Œ', "oe": 'œ', "S<": 'Š', "s<": 'š', "Z<": 'Ž', "z<": 'ž',
	"C<": 'Č', "c<": 'č', "E<": 'Ě', "e<": 'ě', "R<": 'Ř', "r<": 'ř',
	"L/": 'Ł', "l/": 'ł', "G(": 'Ğ', "g(": 'ğ', "S,": 'Ş', "s,": 'ş',

	// Greek
	"A*": 'Α', "B*": 'Β', "G*": 'Γ', "D*": 'Δ', "E*": 'Ε', "Z*": 'Ζ', "Y*": 'Η',
	"H*": 'Θ', "I*": 'Ι', "K*": 'Κ', "L*": 'Λ', "M*": 'Μ', "N*": 'Ν', "C*": 'Ξ',
	"O*": 'Ο', "P*": 'Π', "R*": 'Ρ', "S*": 'Σ', "T*": 'Τ', "U*": 'Υ', "F*": 'Φ',
	"X*": 'Χ', "Q*": 'Ψ', "W*": 'Ω',
	"a*": 'α', "b*": 'β', "g*": 'γ', "d*": 'δ', "e*": 'ε', "z*": 'ζ', "y*": 'η',
	"h*": 'θ', "i*": 'ι', "k*": 'κ', "l*": 'λ', "m*": 'μ', "n*": 'ν', "c*": 'ξ',
	"o*": 'ο', "p*": 'π', "r*": 'ρ', "*s": 'ς', "s*": 'σ', "t*": 'τ', "u*": 'υ',
	"f*": 'φ', "x*": 'χ', "q*": 'ψ', "w*": 'ω',

	// Symbols
	"Co": '©', "Rg": '®', "SE": '§', "PI": '¶', "DG": '°', "+-": '±', "My": 'µ',
	"!I": '¡', "?I": '¿', "<<": '«', ">>": '»', "Ct": '¢', "Pd": '£', "Ye": '¥',
	"Eu": '€', "*X": '×', "-:": '÷', "12": '½', "14": '¼', "34": '¾',
	"1S": '¹', "2S": '²', "3S": '³', "NO": '¬', "BB": '¦', "':": '¨', ".M": '·',
	"-N": '–', "-M": '—', "'6": '‘', "'9": '’', "\"6": '“', "\"9": '”',
	"..": '‥', ",.": '…', "oo": '•', "TM": '™',
	"->": '→', "<-": '←', "-!": '↑', "-v": '↓', "=>": '⇒', "==": '⇔',
	"FA": '∀', "dP": '∂', "TE": '∃', "/0": '∅', "DE": '∆', "NB": '∇',
	"(-": '∈', "*P": '∏', "+Z": '∑', "RT": '√', "00": '∞', "AN": '∧', "OR": '∨',
	"(U": '∩', ")U": '∪', "In": '∫', "!=": '≠', "=<": '≤', ">=": '≥', "?2": '≈',
	"NS": '\u00a0',
}
