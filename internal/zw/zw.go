// Package zw implements the zero-width steganographic codec: turning an
// arbitrary byte string into a token sequence over a five-symbol
// zero-width Unicode alphabet, and interleaving that sequence into cover
// text without disturbing a single visible code point.
package zw

import "strings"

// The five-symbol alphabet. Each symbol is a distinct zero-width or
// format Unicode code point so that stripping them from stego-text
// recovers the cover exactly.
const (
	Bit0  rune = '​'      // ZERO WIDTH SPACE
	Bit1  rune = '‌'      // ZERO WIDTH NON-JOINER
	Sep   rune = '‍'      // ZERO WIDTH JOINER
	Start rune = '⁠'      // WORD JOINER
	End   rune = '\uFEFF' // ZERO WIDTH NO-BREAK SPACE (BOM)
)

// IsAlphabet reports whether r is one of the five zero-width symbols.
func IsAlphabet(r rune) bool {
	switch r {
	case Bit0, Bit1, Sep, Start, End:
		return true
	default:
		return false
	}
}

// errMalformed is returned (wrapped by the caller with a Kind) whenever
// the zw-stream embedded in a candidate stego-text does not parse as a
// well-formed token sequence.
type errMalformed struct{ reason string }

func (e *errMalformed) Error() string { return "malformed zw-stream: " + e.reason }

func malformed(reason string) error { return &errMalformed{reason: reason} }

// ErrCoverTooShort is returned by Embed when cover has no visible code
// points to host the zw-stream (spec.md §6, CoverTooShort).
var ErrCoverTooShort = malformed("cover has no visible code points")

// IsMalformed reports whether err was produced by this package to signal
// a structurally invalid stream (spec.md §4.2).
func IsMalformed(err error) bool {
	_, ok := err.(*errMalformed)
	return ok
}

// EncodeBytes turns data into its zw-stream token sequence: one Start,
// then for every byte its eight bits most-significant-first as Bit0/Bit1
// followed by one Sep, then one End.
func EncodeBytes(data []byte) []rune {
	out := make([]rune, 0, 1+len(data)*9+1)
	out = append(out, Start)
	for _, b := range data {
		for bit := 7; bit >= 0; bit-- {
			if (b>>bit)&1 == 1 {
				out = append(out, Bit1)
			} else {
				out = append(out, Bit0)
			}
		}
		out = append(out, Sep)
	}
	out = append(out, End)
	return out
}

// DecodeBytes parses a pure zw-stream (no interleaved cover runes) back
// into bytes. Embed/Extract handle the interleaved form; this is exposed
// for callers that already have an isolated stream.
func DecodeBytes(tokens []rune) ([]byte, error) {
	startIdx := indexOf(tokens, Start)
	if startIdx == -1 {
		return nil, malformed("no START token")
	}
	endIdx := lastIndexAfter(tokens, End, startIdx)
	if endIdx == -1 {
		return nil, malformed("no END token after START")
	}
	return decodeRange(tokens, startIdx, endIdx)
}

// decodeRange decodes the byte-groups strictly between tokens[start] and
// tokens[end] (both exclusive), where start indexes a Start token and end
// indexes the chosen End token.
func decodeRange(tokens []rune, start, end int) ([]byte, error) {
	var out []byte
	pos := start + 1
	for pos < end {
		var b byte
		bits := 0
		for bits < 8 {
			if pos >= end {
				return nil, malformed("truncated bit run")
			}
			switch tokens[pos] {
			case Bit0:
				b <<= 1
			case Bit1:
				b = b<<1 | 1
			default:
				return nil, malformed("unexpected token inside bit run")
			}
			bits++
			pos++
		}
		if pos >= end || tokens[pos] != Sep {
			return nil, malformed("bit run not terminated by SEP")
		}
		pos++ // consume SEP
		out = append(out, b)
	}
	return out, nil
}

func indexOf(tokens []rune, r rune) int {
	for i, t := range tokens {
		if t == r {
			return i
		}
	}
	return -1
}

// lastIndexAfter returns the last index of r in tokens that is strictly
// greater than after, or -1 if none exists.
func lastIndexAfter(tokens []rune, r rune, after int) int {
	for i := len(tokens) - 1; i > after; i-- {
		if tokens[i] == r {
			return i
		}
	}
	return -1
}

// Embed distributes data's zw-stream across cover, preserving cover's
// visible text exactly and the relative order of the zero-width tokens.
// It interleaves an even-sized chunk of tokens after every cover code
// point and appends whatever remainder doesn't divide evenly at the very
// end; this is a quality-of-service choice, not a correctness
// requirement (spec.md §9, "zw interleaving strategy").
func Embed(cover string, data []byte) (string, error) {
	coverRunes := []rune(cover)
	if len(coverRunes) == 0 {
		return "", ErrCoverTooShort
	}

	tokens := EncodeBytes(data)
	perGap := len(tokens) / len(coverRunes)

	var sb strings.Builder
	sb.Grow(len(cover) + len(tokens)*3)
	idx := 0
	for _, r := range coverRunes {
		sb.WriteRune(r)
		for k := 0; k < perGap; k++ {
			sb.WriteRune(tokens[idx])
			idx++
		}
	}
	for idx < len(tokens) {
		sb.WriteRune(tokens[idx])
		idx++
	}
	return sb.String(), nil
}

// Extract scans text in code-point order, keeps only zero-width
// alphabet code points, and decodes the span from the first START to the
// last END after it. A malformed span is an error; no other span is
// tried. See spec.md §4.2 for the exact failure conditions.
func Extract(text string) ([]byte, error) {
	tokens := filterAlphabet(text)
	return DecodeBytes(tokens)
}

// HasHidden reports whether text contains a Start token followed,
// anywhere later in the text, by an End token.
func HasHidden(text string) bool {
	runes := []rune(text)
	startIdx := indexOf(runes, Start)
	if startIdx == -1 {
		return false
	}
	return lastIndexAfter(runes, End, startIdx) != -1
}

// VisibleText returns text with every zero-width alphabet code point
// removed, recovering the original cover exactly when text was produced
// by Embed.
func VisibleText(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if !IsAlphabet(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func filterAlphabet(text string) []rune {
	out := make([]rune, 0, len(text))
	for _, r := range text {
		if IsAlphabet(r) {
			out = append(out, r)
		}
	}
	return out
}
