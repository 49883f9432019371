package attach

import "github.com/corvidmail/attachbrowser/internal/body"

// Flatten walks root honoring the collapse/encryption rules of
// spec.md §3 and emits an ordered EntryList, depth-first preorder over
// the sibling chain at each level (spec.md §4.1). It never retains
// ownership of Body nodes.
//
// composeMode descends through every non-encrypted multipart,
// including a nested multipart/alternative that is otherwise presented
// whole.
func Flatten(root *body.Body, composeMode bool) *EntryList {
	list := NewEntryList()
	flattenSiblings(list, root, body.TypeTop, 0, composeMode)
	computeGlyphs(list)
	return list
}

// Rebuild re-flattens root into list in place, preserving the same
// EntryList identity so callers holding a reference keep seeing
// updates. Used after any collapse toggle or content-type edit
// (spec.md §4.1, §4.3, §4.8 EDIT_TYPE/ATTACH_COLLAPSE).
func Rebuild(list *EntryList, root *body.Body, composeMode bool) {
	list.Clear()
	flattenSiblings(list, root, body.TypeTop, 0, composeMode)
	computeGlyphs(list)
}

// flattenSiblings walks the chain starting at first, applying the
// flatten rules of spec.md §3:
//
//   - A multipart node is descended through (its children replace it
//     at the same nesting intent, inheriting its own type as the new
//     parentType) iff it is not encrypted, and either we are in
//     compose mode, or we are already at the top level, or its
//     subtype is not "alternative". The only case that is NOT
//     descended is a non-top-level (nested) multipart/alternative,
//     which is presented whole so the two alternative renditions
//     aren't spuriously flattened alongside real attachments.
//   - Otherwise the node becomes one Entry, and its children are also
//     emitted (one level deeper) iff not collapsed and the node is
//     either a non-encrypted multipart or message/rfc822|message/news.
//   - Encrypted multiparts are presented as a single opaque Entry.
func flattenSiblings(list *EntryList, first *body.Body, parentType body.Type, level int, composeMode bool) {
	for b := first; b != nil; b = b.Next {
		if shouldDescend(b, parentType, composeMode) {
			flattenSiblings(list, b.Parts, b.Type, level, composeMode)
			continue
		}

		e := &Entry{Body: b, ParentType: parentType, Level: level}
		list.append(e)

		if shouldEmitChildren(b) {
			flattenSiblings(list, b.Parts, entryParentType(b), level+1, composeMode)
		}
	}
}

// shouldDescend implements the asymmetry of spec.md §3: a nested
// multipart/alternative is the one case presented whole rather than
// flattened away. Descend unless parentType is already non-TOP (we're
// nested) and the subtype is exactly "alternative".
func shouldDescend(b *body.Body, parentType body.Type, composeMode bool) bool {
	if !b.IsMultipart() || b.IsEncryptedMultipart() {
		return false
	}
	return composeMode || parentType == body.TypeTop || b.Subtype != "alternative"
}

func shouldEmitChildren(b *body.Body) bool {
	if b.Collapsed {
		return false
	}
	if b.IsEncryptedMultipart() {
		return false
	}
	return b.IsMultipart() || b.IsMessageRFC822()
}

// entryParentType is the type discriminant recorded as ParentType for
// an emitted node's children: the nearest enclosing multipart that was
// presented as itself (spec.md §4.1).
func entryParentType(b *body.Body) body.Type {
	return b.Type
}
