package attach

import (
	"testing"

	"github.com/corvidmail/attachbrowser/internal/body"
	"github.com/stretchr/testify/assert"
)

func TestEntryFormatterBasicCodes(t *testing.T) {
	b := &body.Body{
		ID:       "x",
		Type:     body.TypeApplication,
		Subtype:  "pdf",
		Filename: "report.pdf",
		Length:   1024,
	}
	e := &Entry{Body: b, Index: 0, TreeGlyphs: ""}
	f := NewEntryFormatter(FormatOptions{})

	assert.Equal(t, "report.pdf", f.Expand("%f", e, 1))
	assert.Equal(t, "application", f.Expand("%m", e, 1))
	assert.Equal(t, "pdf", f.Expand("%M", e, 1))
	assert.Equal(t, "1024", f.Expand("%s", e, 1))
	assert.Equal(t, "1", f.Expand("%n", e, 1))
}

func TestEntryFormatterFallthroughChain(t *testing.T) {
	b := &body.Body{ID: "x", Filename: "f.txt"}
	e := &Entry{Body: b}
	f := NewEntryFormatter(FormatOptions{})

	assert.Equal(t, "f.txt", f.Expand("%d", e, 1))

	b.DFilename = "disp.txt"
	assert.Equal(t, "disp.txt", f.Expand("%d", e, 1))

	b.Description = "a description"
	assert.Equal(t, "a description", f.Expand("%d", e, 1))
}

func TestEntryFormatterDispositionCode(t *testing.T) {
	f := NewEntryFormatter(FormatOptions{})
	cases := []struct {
		disp body.Disposition
		want string
	}{
		{body.DispInline, "I"},
		{body.DispAttachment, "A"},
		{body.DispFormData, "F"},
		{body.DispNone, "-"},
		{body.Disposition("bogus"), "!"},
	}
	for _, c := range cases {
		b := &body.Body{Disposition: c.disp}
		e := &Entry{Body: b}
		assert.Equal(t, c.want, f.Expand("%I", e, 1))
	}
}

func TestEntryFormatterConditional(t *testing.T) {
	f := NewEntryFormatter(FormatOptions{})
	b := &body.Body{Deleted: true}
	e := &Entry{Body: b}
	assert.Equal(t, "DEL", f.Expand("%?D?DEL&OK?", e, 1))

	b.Deleted = false
	assert.Equal(t, "OK", f.Expand("%?D?DEL&OK?", e, 1))
}

func TestEntryFormatterUnknownCodeIsEmpty(t *testing.T) {
	f := NewEntryFormatter(FormatOptions{})
	e := &Entry{Body: &body.Body{}}
	assert.Equal(t, "", f.Expand("%z", e, 1))
}

func TestEntryFormatterTaggedAndDeletedFlags(t *testing.T) {
	f := NewEntryFormatter(FormatOptions{})
	b := &body.Body{Tagged: true, Deleted: true}
	e := &Entry{Body: b}
	assert.Equal(t, "*D", f.Expand("%t%D", e, 1))
}

func TestEntryFormatterXCount(t *testing.T) {
	f := NewEntryFormatter(FormatOptions{})
	b := &body.Body{AttachCount: 3, AttachQualifies: true}
	e := &Entry{Body: b}
	assert.Equal(t, "4", f.Expand("%X", e, 1))
}
