package attach

import (
	"testing"

	"github.com/corvidmail/attachbrowser/internal/body"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chain(parts ...*body.Body) *body.Body {
	for i := 0; i+1 < len(parts); i++ {
		parts[i].Next = parts[i+1]
	}
	if len(parts) == 0 {
		return nil
	}
	return parts[0]
}

func leaf(id, typ, subtype string) *body.Body {
	return &body.Body{ID: id, Type: body.Type(typ), Subtype: subtype}
}

func multipart(id, subtype string, children *body.Body) *body.Body {
	return &body.Body{ID: id, Type: body.TypeMultipart, Subtype: subtype, Parts: children}
}

// Scenario 1 (spec.md §8): multipart/alternative at root with
// text/plain, text/html children is descended; both children appear
// at level 0, the wrapper itself is not listed.
func TestFlattenAlternativeAtRoot(t *testing.T) {
	plain := leaf("plain", "text", "plain")
	html := leaf("html", "text", "html")
	root := multipart("alt", "alternative", chain(plain, html))

	list := Flatten(root, false)
	require.Equal(t, 2, list.Len())
	assert.Equal(t, "plain", list.At(0).Body.Subtype)
	assert.Equal(t, 0, list.At(0).Level)
	assert.Equal(t, "html", list.At(1).Body.Subtype)
	assert.Equal(t, 0, list.At(1).Level)
}

// Scenario 2 (spec.md §8): multipart/mixed -> [multipart/alternative
// -> [text/plain, text/html], application/pdf]. The outer mixed
// wrapper is itself invisible (descended through, since it sits at
// the top level), so alt and pdf land at level 0; the nested
// alternative is presented whole (one entry, children shown one level
// deeper because not collapsed).
func TestFlattenNestedAlternative(t *testing.T) {
	plain := leaf("plain", "text", "plain")
	html := leaf("html", "text", "html")
	alt := multipart("alt", "alternative", chain(plain, html))
	pdf := leaf("pdf", "application", "pdf")
	root := multipart("mixed", "mixed", chain(alt, pdf))

	list := Flatten(root, false)
	require.Equal(t, 4, list.Len())

	assert.Equal(t, "alt", list.At(0).Body.ID)
	assert.Equal(t, 0, list.At(0).Level)
	assert.Equal(t, body.TypeMultipart, list.At(0).ParentType)

	assert.Equal(t, "plain", list.At(1).Body.ID)
	assert.Equal(t, 1, list.At(1).Level)
	assert.Equal(t, "html", list.At(2).Body.ID)
	assert.Equal(t, 1, list.At(2).Level)

	assert.Equal(t, "pdf", list.At(3).Body.ID)
	assert.Equal(t, 0, list.At(3).Level)
	assert.Equal(t, body.TypeMultipart, list.At(3).ParentType)
}

func TestFlattenEncryptedMultipartIsOpaque(t *testing.T) {
	inner := leaf("inner", "application", "octet-stream")
	enc := multipart("enc", "encrypted", chain(inner))
	root := multipart("mixed", "mixed", chain(enc))

	list := Flatten(root, false)
	require.Equal(t, 1, list.Len())
	assert.Equal(t, "enc", list.At(0).Body.ID)
}

func TestFlattenCollapsedHidesChildren(t *testing.T) {
	plain := leaf("plain", "text", "plain")
	rfc822Body := multipart("sub", "mixed", chain(plain))
	msg := &body.Body{ID: "msg", Type: body.TypeMessage, Subtype: "rfc822", Parts: rfc822Body}
	root := multipart("mixed", "mixed", chain(msg))

	list := Flatten(root, false)
	require.Equal(t, 2, list.Len())

	msg.Collapsed = true
	Rebuild(list, root, false)
	require.Equal(t, 1, list.Len())
	assert.LessOrEqual(t, list.Len(), 2)
}

func TestEntryForBodyBackReferenceInvariant(t *testing.T) {
	plain := leaf("plain", "text", "plain")
	html := leaf("html", "text", "html")
	root := multipart("alt", "alternative", chain(plain, html))

	list := Flatten(root, false)
	for i := 0; i < list.Len(); i++ {
		e := list.At(i)
		assert.Same(t, e, list.EntryForBody(e.Body))
		assert.Equal(t, i, e.Index)
	}
}
