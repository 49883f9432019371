package attach

import "strings"

// Line-drawing glyphs for on-screen display, and their encoded-byte
// counterparts kept for re-layout after a redraw (spec.md §4.1).
const (
	glyphLTee     = '├' // ├
	glyphLLCorner = '└' // └
	glyphHLine    = '─' // ─
	glyphRArrow   = '▶' // ▶

	relayoutLTee     byte = 0x05
	relayoutLLCorner byte = 0x06
	relayoutHLine    byte = 0x02
	relayoutRArrow   byte = 0x03
)

// computeGlyphs fills TreeGlyphs/RelayoutGlyphs for every entry in
// list, after flatten completes at the top level. At depth d>0,
// columns 2(d-1) and following contain the branch connector (LTEE if
// the entry's Body has a following sibling, else LLCORNER), then
// HLINE, then RARROW. Depth 0 has an empty prefix. Existing strings
// are only overwritten when the content actually differs, matching
// the original's allocation-churn minimization.
func computeGlyphs(list *EntryList) {
	for _, e := range list.All() {
		display, relayout := buildGlyphs(e)
		if e.TreeGlyphs != display {
			e.TreeGlyphs = display
		}
		if e.RelayoutGlyphs != relayout {
			e.RelayoutGlyphs = relayout
		}
	}
}

func buildGlyphs(e *Entry) (display, relayout string) {
	if e.Level == 0 {
		return "", ""
	}

	indent := strings.Repeat("  ", e.Level-1)
	hasNext := e.Body.Next != nil

	var dispConn rune
	var relConn byte
	if hasNext {
		dispConn = glyphLTee
		relConn = relayoutLTee
	} else {
		dispConn = glyphLLCorner
		relConn = relayoutLLCorner
	}

	var db strings.Builder
	db.WriteString(indent)
	db.WriteRune(dispConn)
	db.WriteRune(glyphHLine)
	db.WriteRune(glyphRArrow)

	var rb strings.Builder
	rb.WriteString(indent)
	rb.WriteByte(relConn)
	rb.WriteByte(relayoutHLine)
	rb.WriteByte(relayoutRArrow)
	rb.WriteByte(0)

	return db.String(), rb.String()
}
