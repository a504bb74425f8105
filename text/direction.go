package text

import (
	"unicode"
)

// Direction represents the writing direction of text.
type Direction int

const (
	// LTR (Left-to-Right) for Latin, Cyrillic, etc.
	LTR Direction = iota
	// RTL (Right-to-Left) for Arabic, Hebrew, etc.
	RTL
	// Neutral for numbers, punctuation, etc.
	Neutral
)

// String returns a string representation of the direction ("LTR", "RTL", or "Neutral").
func (d Direction) String() string {
	switch d {
	case LTR:
		return "LTR"
	case RTL:
		return "RTL"
	case Neutral:
		return "Neutral"
	default:
		return "Unknown"
	}
}

var rtlScripts = []*unicode.RangeTable{
	unicode.Arabic,
	unicode.Hebrew,
	unicode.Syriac,
	unicode.Thaana,
	unicode.Nko,
}

// DetectDirection returns the dominant direction of s, or Neutral when s
// has no strong directional characters.
func DetectDirection(s string) Direction {
	ltrCount := 0
	rtlCount := 0

	for _, r := range s {
		switch GetCharDirection(r) {
		case LTR:
			ltrCount++
		case RTL:
			rtlCount++
		}
	}

	if ltrCount == 0 && rtlCount == 0 {
		return Neutral
	}
	if rtlCount > ltrCount {
		return RTL
	}
	return LTR
}

// GetCharDirection returns the inherent direction of a single character.
// Digits, punctuation, whitespace and symbols are Neutral.
func GetCharDirection(r rune) Direction {
	if unicode.IsDigit(r) || unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
		return Neutral
	}
	if unicode.In(r, rtlScripts...) {
		return RTL
	}
	return LTR
}
