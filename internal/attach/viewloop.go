package attach

import "github.com/corvidmail/attachbrowser/internal/body"

// Viewer is the external viewer/mailcap spawner (spec.md §1).
type Viewer interface {
	View(b *body.Body, mode ViewMode) error
}

// ViewMode selects how ATTACH_VIEW_MAILCAP/ATTACH_VIEW_TEXT/
// DISPLAY_HEADERS render a part.
type ViewMode int

const (
	ViewModeMailcap ViewMode = iota
	ViewModeText
	ViewModeHeaders
)

// ViewLoop implements spec.md §4.7: a sub-loop entered on VIEW_ATTACH
// or DISPLAY_HEADERS that keeps viewing while the user moves the
// cursor, returning control (and the op that ended it) to the caller.
type ViewLoop struct {
	Viewer   Viewer
	NextOp   func() Op
	Weed     bool
	EditType func(b *body.Body) error
	// Rebuild re-flattens the list after EditType changes a part's
	// content-type, so the index reflects the new tree shape before the
	// loop re-views the edited entry.
	Rebuild func()
}

// Run drives the loop starting at cursor over list, returning the op
// that ended it. When a NEXT/PREV op would move past either end of the
// list, the loop exits and returns that NEXT/PREV op itself.
func (v *ViewLoop) Run(list *EntryList, cursor *int, initial Op) Op {
	op := initial
	for {
		switch op {
		case OpDisplayHeaders:
			v.Weed = !v.Weed
			mode := ViewModeHeaders
			_ = v.view(list, *cursor, mode)
		case OpViewAttach:
			_ = v.view(list, *cursor, ViewModeMailcap)
		case OpNextEntry, OpMainNextUndeleted:
			if *cursor+1 >= list.Len() {
				return op
			}
			*cursor++
			_ = v.view(list, *cursor, ViewModeMailcap)
		case OpPrevEntry, OpMainPrevUndeleted:
			if *cursor-1 < 0 {
				return op
			}
			*cursor--
			_ = v.view(list, *cursor, ViewModeMailcap)
		case OpEditType:
			if v.EditType != nil {
				entry := list.At(*cursor)
				if entry == nil {
					return op
				}
				if err := v.EditType(entry.Body); err != nil {
					return op
				}
				if v.Rebuild != nil {
					v.Rebuild()
				}
				_ = v.view(list, *cursor, ViewModeMailcap)
			}
		case OpCheckTraditional, OpAttachCollapse:
			return op
		default:
			return op
		}
		op = v.NextOp()
	}
}

func (v *ViewLoop) view(list *EntryList, idx int, mode ViewMode) error {
	if idx < 0 || idx >= list.Len() {
		return nil
	}
	if v.Viewer == nil {
		return nil
	}
	return v.Viewer.View(list.At(idx).Body, mode)
}
