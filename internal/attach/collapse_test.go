package attach

import (
	"testing"

	"github.com/corvidmail/attachbrowser/internal/body"
	"github.com/stretchr/testify/assert"
)

func TestToggleCollapseTwiceRestoresState(t *testing.T) {
	plain := leaf("plain", "text", "plain")
	root := multipart("mixed", "mixed", chain(plain))

	original := root.Collapsed
	ToggleCollapse(root, false)
	ToggleCollapse(root, false)

	// Two toggles cancel out and restore the original state.
	assert.Equal(t, original, root.Collapsed)
}

func TestCollapseRebuildNeverGrowsEntryList(t *testing.T) {
	plain := leaf("plain", "text", "plain")
	html := leaf("html", "text", "html")
	sub := multipart("sub", "mixed", chain(plain, html))
	root := multipart("mixed", "mixed", chain(sub))

	before := Flatten(root, false)
	beforeLen := before.Len()

	ToggleCollapse(sub, false)
	Rebuild(before, root, false)

	assert.LessOrEqual(t, before.Len(), beforeLen)
}

func TestDigestCollapseForcesSubtree(t *testing.T) {
	inner := leaf("inner", "message", "rfc822")
	digest := multipart("digest", "digest", chain(inner))
	root := multipart("mixed", "mixed", chain(digest))

	InitialCollapse(root, true)
	assert.True(t, inner.Collapsed)
}

func TestRecountAttachments(t *testing.T) {
	a := leaf("a", "application", "pdf")
	a.Disposition = body.DispAttachment
	b := leaf("b", "application", "zip")
	b.Disposition = body.DispAttachment
	root := multipart("mixed", "mixed", chain(a, b))

	n := RecountAttachments(root)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, root.AttachCount)
}
