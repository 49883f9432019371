package attach

import (
	"testing"

	"github.com/corvidmail/attachbrowser/internal/body"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMailcap struct {
	entries map[string]MailcapEntry
}

func (s stubMailcap) PrintEntry(b *body.Body) (MailcapEntry, bool) {
	e, ok := s.entries[string(b.Type)+"/"+b.Subtype]
	return e, ok
}

type stubSplitPrinter struct {
	printed []string
}

func (s *stubSplitPrinter) PrintPart(b *body.Body) error {
	s.printed = append(s.printed, b.ID)
	return nil
}

func TestPrintBatchedStreamsPlainTextRaw(t *testing.T) {
	a := textPart("a", "hello")
	runner := &fakeRunner{}
	eng := &PrintEngine{Runner: runner, Confirm: alwaysConfirm{true}, Separator: "\n--\n"}

	err := eng.Print("lpr", []*body.Body{a}, false)
	require.NoError(t, err)
	require.Len(t, runner.feeds, 1)
	assert.Equal(t, "hello", string(runner.feeds[0]))
}

func TestPrintBatchedRejectsUnprintablePart(t *testing.T) {
	a := leaf("a", "application", "x-custom")
	a.Encoding = body.EncOther
	runner := &fakeRunner{}
	eng := &PrintEngine{Runner: runner, Confirm: alwaysConfirm{true}}

	err := eng.Print("lpr", []*body.Body{a}, false)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestPrintBatchedAllowsMailcapEntry(t *testing.T) {
	a := leaf("a", "application", "x-custom")
	a.Encoding = body.EncOther
	a.Raw = []byte("binary")
	mailcap := stubMailcap{entries: map[string]MailcapEntry{
		"application/x-custom": {Command: "custom-print %s"},
	}}
	runner := &fakeRunner{}
	eng := &PrintEngine{Runner: runner, Mailcap: mailcap, Confirm: alwaysConfirm{true}}

	err := eng.Print("lpr", []*body.Body{a}, false)
	require.NoError(t, err)
}

func TestPrintDeclinedConfirmationCancels(t *testing.T) {
	a := textPart("a", "hello")
	eng := &PrintEngine{Runner: &fakeRunner{}, Confirm: alwaysConfirm{false}}

	err := eng.Print("lpr", []*body.Body{a}, false)
	assert.ErrorIs(t, err, ErrUserCancelled)
}

func TestPrintSplitDelegatesPerPart(t *testing.T) {
	a := textPart("a", "hello")
	b := textPart("b", "world")
	split := &stubSplitPrinter{}
	eng := &PrintEngine{Split: split, Confirm: alwaysConfirm{true}}

	err := eng.Print("", []*body.Body{a, b}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, split.printed)
}
