// Package text assembles positioned glyphs into readable text.
//
// PDF readers such as github.com/ledongthuc/pdf report page text one glyph
// at a time. This package groups those glyphs into lines, orders them in
// reading order and decides where word spaces belong.
//
// # Assembly
//
// [Assemble] merges glyphs into word and phrase fragments, splitting a line
// wherever the gap between two glyphs is wide enough to be a column break:
//
//	fragments := text.Assemble(page.Glyphs)
//
// [Join] renders a set of glyphs (for example the glyphs inside one table
// cell) as a single string, with lines separated by "\n".
//
// # Smart Spacing
//
// Spaces are inserted from the glyph gaps:
//
//   - Explicit spaces: space glyphs in the stream are kept as they are
//   - Word gaps: a gap of at least half a space width becomes one space
//   - Column gaps: a gap wider than [ColumnGap] space widths ends the fragment
//
// All output is normalized to Unicode NFC with golang.org/x/text/unicode/norm.
//
// # Text Direction
//
// Lines whose strong characters are mostly right-to-left (Arabic, Hebrew and
// related scripts) are ordered right to left; see [DetectDirection].
package text
