package attach

import (
	"testing"

	"github.com/corvidmail/attachbrowser/internal/body"
	"github.com/corvidmail/attachbrowser/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailbox struct {
	readOnly    bool
	pop         bool
	nntp        bool
	closed      bool
	markedDel   bool
	markedCalls int
}

func (f *fakeMailbox) ReadOnly() bool { return f.readOnly }
func (f *fakeMailbox) IsPOP() bool    { return f.pop }
func (f *fakeMailbox) IsNNTP() bool   { return f.nntp }
func (f *fakeMailbox) Close() error   { f.closed = true; return nil }
func (f *fakeMailbox) MarkChanged(attachDel bool) error {
	f.markedDel = attachDel
	f.markedCalls++
	return nil
}

type scriptedMenu struct {
	ops []Op
	i   int
}

func (s *scriptedMenu) NextOp(list *EntryList, cursor int) (Op, int, error) {
	if s.i >= len(s.ops) {
		return OpExit, cursor, nil
	}
	op := s.ops[s.i]
	s.i++
	return op, cursor, nil
}

func newSession(mailbox *fakeMailbox, menu *scriptedMenu) *SessionController {
	return &SessionController{
		Logger:  logging.NewDefault(),
		Mailbox: mailbox,
		Menu:    menu,
		Viewer:  &recordingViewer{},
	}
}

func TestSessionDeleteRequiresMultipartParent(t *testing.T) {
	plain := leaf("plain", "text", "plain")
	mailbox := &fakeMailbox{}
	menu := &scriptedMenu{ops: []Op{OpDelete}}
	s := newSession(mailbox, menu)

	err := s.ViewAttachments(&body.Header{}, plain)
	require.NoError(t, err)
	assert.False(t, plain.Deleted)
	assert.False(t, mailbox.markedDel)
}

func TestSessionDeleteSucceedsUnderMultipartParent(t *testing.T) {
	a := leaf("a", "application", "pdf")
	root := multipart("mixed", "mixed", chain(a))
	mailbox := &fakeMailbox{}
	menu := &scriptedMenu{ops: []Op{OpDelete}}
	s := newSession(mailbox, menu)

	// advance the cursor onto "a" before issuing DELETE: Flatten puts
	// "a" at index 0 already, so no extra NEXT_ENTRY is required.
	err := s.ViewAttachments(&body.Header{}, root)
	require.NoError(t, err)
	assert.True(t, a.Deleted)
	assert.True(t, mailbox.markedDel)
	assert.True(t, mailbox.closed)
}

func TestSessionDeleteRejectedOnReadOnlyMailbox(t *testing.T) {
	a := leaf("a", "application", "pdf")
	root := multipart("mixed", "mixed", chain(a))
	mailbox := &fakeMailbox{readOnly: true}
	menu := &scriptedMenu{ops: []Op{OpDelete}}
	s := newSession(mailbox, menu)

	err := s.ViewAttachments(&body.Header{}, root)
	require.NoError(t, err)
	assert.False(t, a.Deleted)
}

func TestSessionUndeleteClearsFlag(t *testing.T) {
	a := leaf("a", "application", "pdf")
	a.Deleted = true
	root := multipart("mixed", "mixed", chain(a))
	mailbox := &fakeMailbox{}
	menu := &scriptedMenu{ops: []Op{OpUndelete}}
	s := newSession(mailbox, menu)

	err := s.ViewAttachments(&body.Header{}, root)
	require.NoError(t, err)
	assert.False(t, a.Deleted)
}

func TestSessionAttachCollapseRequiresChildren(t *testing.T) {
	a := leaf("a", "application", "pdf")
	root := multipart("mixed", "mixed", chain(a))
	mailbox := &fakeMailbox{}
	menu := &scriptedMenu{ops: []Op{OpAttachCollapse}}
	s := newSession(mailbox, menu)

	err := s.ViewAttachments(&body.Header{}, root)
	require.NoError(t, err)
}
