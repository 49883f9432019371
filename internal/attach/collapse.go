package attach

import "github.com/corvidmail/attachbrowser/internal/body"

// CollapseSubtree implements collapse_subtree(node, collapseFlag,
// inheritFlag, singleOnly) from spec.md §4.3: iterates the sibling
// chain starting at node. If a node inherits a collapsed state and is
// a multipart/digest under the digest-collapse option, its subtree is
// force-collapsed regardless of collapseFlag; otherwise multipart and
// message/rfc822|news nodes recurse with the parent's effective flag.
// singleOnly stops after the first sibling. Sets Collapsed on every
// visited node.
func CollapseSubtree(node *body.Body, collapseFlag, inheritFlag, singleOnly, digestCollapse bool) {
	for b := node; b != nil; b = b.Next {
		effective := collapseFlag
		if inheritFlag && digestCollapse && b.Type == body.TypeMultipart && b.Subtype == "digest" {
			effective = true
		}
		b.Collapsed = collapseFlag

		if b.IsMultipart() || b.IsMessageRFC822() {
			CollapseSubtree(b.Parts, effective, true, false, digestCollapse)
		}

		if singleOnly {
			break
		}
	}
}

// InitialCollapse seeds every Body's Collapsed flag from the digest-
// collapse option before the first flatten (spec.md §9 supplemented
// feature 1, mutt_attach_init's startup pass), distinct from the
// interactive ToggleCollapse below.
func InitialCollapse(root *body.Body, digestCollapse bool) {
	CollapseSubtree(root, false, false, false, digestCollapse)
}

// ToggleCollapse flips b's collapsed flag and propagates the new state
// into its subtree the same way the initial pass does, honoring the
// digest-collapse override. Requires b to have children (ATTACH_COLLAPSE
// in spec.md §4.8 requires "part has children").
func ToggleCollapse(b *body.Body, digestCollapse bool) {
	if b == nil || !b.HasChildren() {
		return
	}
	newState := !b.Collapsed
	b.Collapsed = newState
	CollapseSubtree(b.Parts, newState, true, false, digestCollapse)
}

// RecountAttachments recomputes AttachCount bottom-up after a
// delete/undelete, so the X format code stays accurate without a full
// flatten rebuild (spec.md §9 supplemented feature 3).
func RecountAttachments(root *body.Body) int {
	if root == nil {
		return 0
	}
	count := 0
	for c := root.Parts; c != nil; c = c.Next {
		sub := RecountAttachments(c)
		if c.Disposition == body.DispAttachment || (!c.IsMultipart() && c.Type != body.TypeMessage) {
			count++
		}
		count += sub
	}
	root.AttachCount = count
	return count
}
