package attach

import "github.com/corvidmail/attachbrowser/internal/body"

// CollectTagged walks the sibling chain starting at root the way the
// original walks the Body tree twice for tagged operations (spec.md
// §9 "Tagged traversal"): tagged operations descend through untagged
// multiparts but not through tagged ones, since a tagged multipart is
// already included whole.
func CollectTagged(root *body.Body) []*body.Body {
	var out []*body.Body
	collectTagged(root, &out)
	return out
}

func collectTagged(first *body.Body, out *[]*body.Body) {
	for b := first; b != nil; b = b.Next {
		if b.Tagged {
			*out = append(*out, b)
			continue
		}
		if b.IsMultipart() {
			collectTagged(b.Parts, out)
		}
	}
}

// Targets resolves the Bodies an operation should apply to, given the
// tag-prefix rule of spec.md §4.8: tagPrefix true iterates every
// tagged descendant of root; otherwise the operation applies only to
// current.
func Targets(root, current *body.Body, tagPrefix bool) []*body.Body {
	if tagPrefix {
		return CollectTagged(root)
	}
	if current == nil {
		return nil
	}
	return []*body.Body{current}
}
