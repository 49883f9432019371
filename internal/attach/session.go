package attach

import (
	"github.com/corvidmail/attachbrowser/internal/body"
	"github.com/corvidmail/attachbrowser/internal/logging"
)

// SessionConfig is the injected configuration record spec.md §9 calls
// for: SessionController reads no module-level globals.
type SessionConfig struct {
	AttachSplit    bool
	AttachSep      string
	DigestCollapse bool
	Resolve        bool
	WaitKey        bool
	Weed           bool
	PrintCommand   string
}

// CommandPrompter asks the user for a free-text pipe/print command
// line (spec.md §6 "text prompts (file path, pipe command)").
type CommandPrompter interface {
	PromptCommand(label string) (string, bool)
}

// MailboxStore is the thin mailbox-store collaborator SessionController
// needs: open/close state and the backend facts DELETE's guard rules
// depend on (spec.md §4.8 DELETE row).
type MailboxStore interface {
	ReadOnly() bool
	IsPOP() bool
	IsNNTP() bool
	Close() error
	MarkChanged(attachDel bool) error
}

// MenuDriver fetches the next operation from the menu layer along
// with the (possibly moved) cursor position.
type MenuDriver interface {
	NextOp(list *EntryList, cursor int) (Op, int, error)
}

// ComposeHandoff hands off to the external send pipeline for
// RESEND/BOUNCE/FORWARD/FOLLOWUP/REPLY variants.
type ComposeHandoff interface {
	Handoff(op Op, targets []*body.Body) error
}

// SessionController implements spec.md §4.8: the top-level state
// machine that decrypts as needed, owns resources, dispatches every
// operation, and manages redraw/cursor bookkeeping. Grounded on the
// teacher's imap_core.Session / IMAPServer dispatch loop
// (github.com/geoffreyhinton/mail_go/imap_core), generalized from an
// IMAP command dispatcher to an attachment-operation dispatcher.
type SessionController struct {
	Logger  logging.Logger
	Mailbox MailboxStore
	Menu    MenuDriver
	Viewer  Viewer

	SaveEngine  *SaveEngine
	PipeEngine  *PipeEngine
	PrintEngine *PrintEngine
	Compose     ComposeHandoff

	ExtractKeys      func(parts []*body.Body) error
	CheckTraditional func(root *body.Body) (body.SecurityFlags, bool)
	EditType         func(b *body.Body) error
	ForgetPassphrase func()
	PrintConfirm     func() bool
	CommandPrompt    CommandPrompter

	Config SessionConfig

	AttachMessageMode bool

	list      *EntryList
	cursor    int
	root      *body.Body
	hdr       *body.Header
	tagPrefix bool
	attachDel bool
}

// ViewAttachments is the entry point of spec.md §4.8. root is the
// already-decrypted-or-raw Body tree to present (CryptoUnwrap's
// result, or the raw body when no decryption was needed).
func (s *SessionController) ViewAttachments(hdr *body.Header, root *body.Body) error {
	s.hdr = hdr
	s.root = root

	InitialCollapse(root, s.Config.DigestCollapse)
	s.list = Flatten(root, false)
	s.cursor = 0

	for {
		op, cursor, err := s.Menu.NextOp(s.list, s.cursor)
		if err != nil {
			return err
		}
		s.cursor = cursor

		if op == OpExit {
			return s.exit()
		}
		if isComposeOp(op) && s.AttachMessageMode {
			s.Logger.Warn("compose op rejected in attach-message mode", "op", op.String())
			continue
		}
		if err := s.dispatch(op); err != nil {
			if err == ErrUserCancelled {
				continue
			}
			s.Logger.Error("op failed", "op", op.String(), "error", err.Error())
		}
	}
}

func (s *SessionController) dispatch(op Op) error {
	switch op {
	case OpAttachViewMailcap, OpAttachViewText:
		return s.view(op)
	case OpDisplayHeaders, OpViewAttach:
		loop := &ViewLoop{Viewer: s.Viewer, NextOp: func() Op {
			nextOp, cursor, _ := s.Menu.NextOp(s.list, s.cursor)
			s.cursor = cursor
			return nextOp
		}, Weed: s.Config.Weed, EditType: s.EditType, Rebuild: func() {
			Rebuild(s.list, s.root, false)
		}}
		returned := loop.Run(s.list, &s.cursor, op)
		if returned != OpNone && returned != op {
			return s.dispatch(returned)
		}
		return nil
	case OpAttachCollapse:
		return s.toggleCollapse()
	case OpForgetPassphrase:
		if s.ForgetPassphrase != nil {
			s.ForgetPassphrase()
		}
		return nil
	case OpExtractKeys:
		if s.ExtractKeys == nil {
			return nil
		}
		return s.ExtractKeys(s.targets())
	case OpCheckTraditional:
		if s.CheckTraditional == nil {
			return nil
		}
		sec, ok := s.CheckTraditional(s.root)
		if ok && s.hdr != nil {
			s.hdr.Security |= sec
		}
		return nil
	case OpPrint:
		return s.PrintEngine.Print(s.Config.PrintCommand, s.targets(), s.Config.AttachSplit)
	case OpPipe:
		command, ok := "", true
		if s.CommandPrompt != nil {
			command, ok = s.CommandPrompt.PromptCommand("Pipe to command:")
		}
		if !ok {
			return ErrUserCancelled
		}
		return s.PipeEngine.Pipe(command, s.targets(), false, s.Config.AttachSplit)
	case OpSave:
		return s.save()
	case OpDelete:
		return s.setDeleted(true)
	case OpUndelete:
		return s.setDeleted(false)
	case OpResend, OpBounce, OpForward, OpForwardToGroup, OpFollowup, OpReply, OpGroupReply, OpListReply:
		if s.Compose == nil {
			return nil
		}
		return s.Compose.Handoff(op, s.targets())
	case OpEditType:
		if s.EditType == nil {
			return nil
		}
		entry := s.list.At(s.cursor)
		if entry == nil {
			return nil
		}
		if err := s.EditType(entry.Body); err != nil {
			return err
		}
		Rebuild(s.list, s.root, false)
		return nil
	default:
		return nil
	}
}

func (s *SessionController) view(op Op) error {
	entry := s.list.At(s.cursor)
	if entry == nil {
		return nil
	}
	mode := ViewModeMailcap
	if op == OpAttachViewText {
		mode = ViewModeText
	}
	return s.Viewer.View(entry.Body, mode)
}

func (s *SessionController) toggleCollapse() error {
	entry := s.list.At(s.cursor)
	if entry == nil {
		return nil
	}
	if !entry.Body.HasChildren() {
		return newOpError(ErrMalformed, MsgNoSubparts)
	}
	ToggleCollapse(entry.Body, s.Config.DigestCollapse)
	RecountAttachments(s.root)
	Rebuild(s.list, s.root, false)
	return nil
}

func (s *SessionController) save() error {
	parts := s.targets()
	s.SaveEngine.Split = s.Config.AttachSplit
	s.SaveEngine.Separator = s.Config.AttachSep
	if err := s.SaveEngine.Save(parts); err != nil {
		return err
	}
	if s.Config.Resolve && s.cursor+1 < s.list.Len() {
		s.cursor++
	}
	return nil
}

func (s *SessionController) setDeleted(deleted bool) error {
	if deleted {
		if s.Mailbox != nil && s.Mailbox.ReadOnly() {
			return newOpError(ErrMailboxState, MsgReadOnly)
		}
		if s.Mailbox != nil && s.Mailbox.IsPOP() {
			return newOpError(ErrMailboxState, MsgCantDeletePOP)
		}
		if s.Mailbox != nil && s.Mailbox.IsNNTP() {
			return newOpError(ErrMailboxState, MsgCantDeleteNNTP)
		}
	} else if s.Mailbox != nil && s.Mailbox.ReadOnly() {
		return newOpError(ErrMailboxState, MsgReadOnly)
	}

	for _, target := range s.targets() {
		if deleted {
			if s.hdr != nil && s.hdr.Security.Has(body.SecEncrypt) {
				return newOpError(ErrMailboxState, MsgDeleteEncrypted)
			}
			entry := s.list.EntryForBody(target)
			if entry == nil || entry.ParentType != body.TypeMultipart {
				return newOpError(ErrMailboxState, MsgOnlyMultipartDelete)
			}
			if s.hdr != nil && s.hdr.Security.Has(body.SecSign) {
				s.Logger.Warn("deleting attachment from signed message", "part", target.ID)
			}
		}
		target.Deleted = deleted
	}
	RecountAttachments(s.root)
	return nil
}

func (s *SessionController) targets() []*body.Body {
	current := s.list.At(s.cursor)
	var currentBody *body.Body
	if current != nil {
		currentBody = current.Body
	}
	return Targets(s.root, currentBody, s.tagPrefix)
}

// SetTagPrefix is called by the menu layer when the user toggles tag
// prefix mode (spec.md §4.8 "Tag prefix").
func (s *SessionController) SetTagPrefix(v bool) { s.tagPrefix = v }

// exit implements spec.md §4.8 step 6.
func (s *SessionController) exit() error {
	s.attachDel = anyDeleted(s.root)

	for i := 0; i < s.list.Len(); i++ {
		s.list.At(i)
	}
	s.list.Clear()

	if s.hdr != nil && s.attachDel {
		s.hdr.AttachDel = true
		s.hdr.Changed = true
	}
	if s.Mailbox != nil {
		if err := s.Mailbox.MarkChanged(s.attachDel); err != nil {
			s.Logger.Warn("mark changed failed", "error", err.Error())
		}
		return s.Mailbox.Close()
	}
	return nil
}

func anyDeleted(root *body.Body) bool {
	for b := root; b != nil; b = b.Next {
		if b.Deleted {
			return true
		}
		if b.HasChildren() && anyDeleted(b.Parts) {
			return true
		}
	}
	return false
}
