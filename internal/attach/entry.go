package attach

import "github.com/corvidmail/attachbrowser/internal/body"

// Entry is a flattened, user-visible row corresponding to one Body
// (GLOSSARY). Per the design notes (spec.md §9), the Body->Entry back
// reference is kept as an index lookup on EntryList rather than a raw
// pointer stored on Body.
type Entry struct {
	Body       *body.Body
	ParentType body.Type // TypeTop sentinel for "top-level"
	Level      int
	Index      int

	// TreeGlyphs is the on-screen line-drawing prefix (TreeGlyphs,
	// spec.md §4.1).
	TreeGlyphs string
	// RelayoutGlyphs is the alternate encoded-byte glyph string kept
	// for re-layout after a redraw.
	RelayoutGlyphs string
}

// EntryList is the ordered sequence of Entry that backs the menu.
// Indices are dense 0..N-1 (Invariant, spec.md §3).
type EntryList struct {
	entries []*Entry
	byBody  map[string]*Entry
}

// NewEntryList returns an empty EntryList.
func NewEntryList() *EntryList {
	return &EntryList{byBody: map[string]*Entry{}}
}

// Len returns the number of entries.
func (l *EntryList) Len() int { return len(l.entries) }

// At returns the entry at index i, or nil if out of range.
func (l *EntryList) At(i int) *Entry {
	if i < 0 || i >= len(l.entries) {
		return nil
	}
	return l.entries[i]
}

// All returns the entries in order. Callers must not mutate the slice.
func (l *EntryList) All() []*Entry {
	return l.entries
}

// EntryForBody looks up the Entry for a Body by its stable ID — the
// index-map replacement for the original's body->aptr back-pointer
// (spec.md §9).
func (l *EntryList) EntryForBody(b *body.Body) *Entry {
	if b == nil {
		return nil
	}
	return l.byBody[b.ID]
}

// append adds e to the list, assigning its dense Index and recording
// the body->entry lookup. Used only by TreeFlattener while building a
// fresh list.
func (l *EntryList) append(e *Entry) {
	e.Index = len(l.entries)
	l.entries = append(l.entries, e)
	l.byBody[e.Body.ID] = e
}

// Clear empties the list and its back-reference map. Called on full
// rebuild (before repopulating) and on session exit, satisfying the
// invariant that a rebuild resets all back-references atomically.
func (l *EntryList) Clear() {
	l.entries = l.entries[:0]
	for k := range l.byBody {
		delete(l.byBody, k)
	}
}
