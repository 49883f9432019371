// Package attach implements the attachment browser core: flattening a
// MIME body tree into a navigable entry list, and the engines
// (collapse, save, pipe, print, view, session) that operate on it.
//
// The shape of the dispatch loop and its Logger field are grounded on
// the teacher's imap_core.Session / imap_core.IMAPServer
// (github.com/geoffreyhinton/mail_go/imap_core), generalized from an
// IMAP command dispatcher to an attachment-operation dispatcher.
package attach

import "errors"

// Sentinel errors for the five error kinds of spec.md §7, so callers
// can branch with errors.Is/errors.As instead of matching strings.
var (
	// ErrUserCancelled: a prompt was dismissed. Abort the current op,
	// no state change.
	ErrUserCancelled = errors.New("user cancelled")

	// ErrMailboxState: an invariant of mailbox state was violated
	// (read-only, backend doesn't support the operation).
	ErrMailboxState = errors.New("mailbox state invariant violated")

	// ErrCrypto: decryption failed. Fatal for the whole session.
	ErrCrypto = errors.New("crypto failure")

	// ErrIO: an I/O failure occurred on save/pipe/print. Display and
	// continue the loop.
	ErrIO = errors.New("attachment i/o failure")

	// ErrMalformed: malformed MIME or an unknown format code was
	// encountered. Callers render a benign placeholder.
	ErrMalformed = errors.New("malformed mime")
)

// User-visible error strings, verbatim from spec.md §6.
const (
	MsgReadOnly             = "Mailbox is read-only."
	MsgAttachMessageMode    = "Function not permitted in attach-message mode."
	MsgCantDecrypt          = "Can't decrypt encrypted message!"
	MsgCantDeletePOP        = "Can't delete attachment from POP server."
	MsgCantDeleteNNTP       = "Can't delete attachment from news server."
	MsgDeleteEncrypted      = "Deletion of attachments from encrypted messages is unsupported."
	MsgDeleteSignedWarning  = "Deletion of attachments from signed messages may invalidate the signature."
	MsgOnlyMultipartDelete  = "Only deletion of multipart attachments is supported."
	MsgNoSubparts           = "There are no subparts to show!"
	MsgDontKnowHowToPrintFn = "I don't know how to print %s attachments!"
	MsgAttachmentSaved      = "Attachment saved."
	MsgAttachmentFiltered   = "Attachment filtered."
	MsgSaving               = "Saving..."
)

// OpError pairs a user-visible message with one of the sentinel error
// kinds above, so the session loop can both log/branch on Kind and
// display Message verbatim.
type OpError struct {
	Kind    error
	Message string
}

func (e *OpError) Error() string { return e.Message }

func (e *OpError) Unwrap() error { return e.Kind }

func newOpError(kind error, message string) *OpError {
	return &OpError{Kind: kind, Message: message}
}
