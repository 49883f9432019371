package attach

import (
	"bytes"
	"io"
	"testing"

	"github.com/corvidmail/attachbrowser/internal/body"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriteCloser struct {
	*bytes.Buffer
}

func (fakeWriteCloser) Close() error { return nil }

type fakeFS struct {
	files   map[string]*bytes.Buffer
	existed map[string]bool
}

func newFakeFS() *fakeFS {
	return &fakeFS{files: map[string]*bytes.Buffer{}, existed: map[string]bool{}}
}

func (f *fakeFS) Exists(path string) bool { return f.existed[path] }

func (f *fakeFS) Create(path string) (io.WriteCloser, error) {
	buf := &bytes.Buffer{}
	f.files[path] = buf
	f.existed[path] = true
	return fakeWriteCloser{buf}, nil
}

func (f *fakeFS) OpenAppend(path string) (io.WriteCloser, error) {
	buf, ok := f.files[path]
	if !ok {
		buf = &bytes.Buffer{}
		f.files[path] = buf
	}
	f.existed[path] = true
	return fakeWriteCloser{buf}, nil
}

type scriptedPrompter struct {
	paths     []string
	pathIdx   int
	decisions []ConflictDecision
	decIdx    int
	cancel    bool
}

func (s *scriptedPrompter) PromptSavePath(suggested string) (string, bool) {
	if s.cancel {
		return "", true
	}
	p := s.paths[s.pathIdx]
	s.pathIdx++
	return p, false
}

func (s *scriptedPrompter) ResolveConflict(path string) ConflictDecision {
	d := s.decisions[s.decIdx]
	s.decIdx++
	return d
}

func textPart(name, content string) *body.Body {
	b := leaf(name, "text", "plain")
	b.Raw = []byte(content)
	b.Filename = name + ".txt"
	b.Encoding = body.Enc7Bit
	return b
}

func TestSaveConcatWritesOneFileWithSeparator(t *testing.T) {
	a := textPart("a", "hello")
	b := textPart("b", "world")

	fs := newFakeFS()
	prompter := &scriptedPrompter{paths: []string{"/tmp/out.txt"}}
	eng := &SaveEngine{Prompter: prompter, FS: fs, Split: false, Separator: "----\n"}

	err := eng.Save([]*body.Body{a, b})
	require.NoError(t, err)

	got := fs.files["/tmp/out.txt"].String()
	assert.Equal(t, "hello----\nworld", got)
}

func TestSaveSplitWritesEachPartSeparately(t *testing.T) {
	a := textPart("a", "hello")
	b := textPart("b", "world")

	fs := newFakeFS()
	prompter := &scriptedPrompter{paths: []string{"/tmp/a.txt", "/tmp/b.txt"}}
	eng := &SaveEngine{Prompter: prompter, FS: fs, Split: true}

	err := eng.Save([]*body.Body{a, b})
	require.NoError(t, err)

	assert.Equal(t, "hello", fs.files["/tmp/a.txt"].String())
	assert.Equal(t, "world", fs.files["/tmp/b.txt"].String())
}

func TestSaveConcatConflictAppend(t *testing.T) {
	a := textPart("a", "hello")

	fs := newFakeFS()
	fs.existed["/tmp/out.txt"] = true
	fs.files["/tmp/out.txt"] = bytes.NewBufferString("existing-")

	prompter := &scriptedPrompter{
		paths:     []string{"/tmp/out.txt"},
		decisions: []ConflictDecision{ConflictAppend},
	}
	eng := &SaveEngine{Prompter: prompter, FS: fs, Split: false}

	err := eng.Save([]*body.Body{a})
	require.NoError(t, err)
	assert.Equal(t, "existing-hello", fs.files["/tmp/out.txt"].String())
}

func TestSaveCancelledPromptReturnsUserCancelled(t *testing.T) {
	a := textPart("a", "hello")
	fs := newFakeFS()
	prompter := &scriptedPrompter{cancel: true}
	eng := &SaveEngine{Prompter: prompter, FS: fs, Split: false}

	err := eng.Save([]*body.Body{a})
	assert.ErrorIs(t, err, ErrUserCancelled)
}

func TestGuardShortcutPrefixesSigil(t *testing.T) {
	assert.Equal(t, "./~foo", GuardShortcut("~foo"))
	assert.Equal(t, "plain.txt", GuardShortcut("plain.txt"))
}

func TestDeriveFilenamePrefersOwnFilename(t *testing.T) {
	b := &body.Body{Filename: "/home/u/report.pdf"}
	assert.Equal(t, "report.pdf", DeriveFilename(b))
}
