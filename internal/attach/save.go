package attach

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/corvidmail/attachbrowser/internal/body"
)

// shortcutSigils are the leading characters mutt treats as mailbox
// shortcuts (~, =, +, @, <, >, !, -, ^). A save target starting with
// one of these is guarded with "./" so it is written as a literal
// filename instead of being expanded (spec.md §4.4).
const shortcutSigils = "~=+@<>!-^"

// ConflictDecision is the resolver's answer to "path already exists".
type ConflictDecision int

const (
	// ConflictOverwrite truncates the existing file.
	ConflictOverwrite ConflictDecision = iota
	// ConflictAppend appends to the existing file.
	ConflictAppend
	// ConflictCancel aborts the save.
	ConflictCancel
)

// SavePrompter is the external collaborator that asks the user for a
// destination path and, when that path already exists, how to resolve
// the conflict. Implemented by internal/menu against survey prompts.
type SavePrompter interface {
	PromptSavePath(suggested string) (path string, cancelled bool)
	ResolveConflict(path string) ConflictDecision
}

// FS abstracts the filesystem writes SaveEngine performs, so tests can
// substitute an in-memory implementation without touching disk.
type FS interface {
	Exists(path string) bool
	Create(path string) (io.WriteCloser, error)
	OpenAppend(path string) (io.WriteCloser, error)
}

// OSFS is the default FS backed by the real filesystem.
type OSFS struct{}

func (OSFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (OSFS) Create(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
}

func (OSFS) OpenAppend(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
}

// SaveEngine implements spec.md §4.4: concatenated save (AttachSplit
// off) writes every target part's decoded body to one file separated
// by AttachSep; split save (AttachSplit on) prompts once per part and
// writes each to its own file.
type SaveEngine struct {
	Prompter  SavePrompter
	FS        FS
	Split     bool
	Separator string
}

// NewSaveEngine builds a SaveEngine writing to the real filesystem.
func NewSaveEngine(prompter SavePrompter, split bool, sep string) *SaveEngine {
	return &SaveEngine{Prompter: prompter, FS: OSFS{}, Split: split, Separator: sep}
}

// Save writes parts to disk per the configured mode. Returns
// ErrUserCancelled as soon as any path or conflict prompt is cancelled;
// partial writes already performed in split mode are not rolled back, matching
// the original's best-effort batch semantics.
func (s *SaveEngine) Save(parts []*body.Body) error {
	if len(parts) == 0 {
		return newOpError(ErrIO, "no attachments selected")
	}
	if s.Split {
		return s.saveSplit(parts)
	}
	return s.saveConcat(parts)
}

func (s *SaveEngine) saveConcat(parts []*body.Body) error {
	suggested := DeriveFilename(parts[0])
	path, cancelled := s.Prompter.PromptSavePath(suggested)
	if cancelled {
		return ErrUserCancelled
	}
	path = GuardShortcut(path)

	decision := ConflictOverwrite
	if s.FS.Exists(path) {
		decision = s.Prompter.ResolveConflict(path)
		if decision == ConflictCancel {
			return ErrUserCancelled
		}
	}

	var w io.WriteCloser
	var err error
	if decision == ConflictAppend {
		w, err = s.FS.OpenAppend(path)
	} else {
		w, err = s.FS.Create(path)
	}
	if err != nil {
		return newOpErrorWrap(ErrIO, MsgSaving, err)
	}
	defer w.Close()

	for i, p := range parts {
		if i > 0 && s.Separator != "" {
			if _, err := io.WriteString(w, s.Separator); err != nil {
				return newOpErrorWrap(ErrIO, MsgSaving, err)
			}
		}
		raw, err := body.DecodeAttachment(p)
		if err != nil {
			return newOpErrorWrap(ErrIO, MsgSaving, err)
		}
		if _, err := w.Write(raw); err != nil {
			return newOpErrorWrap(ErrIO, MsgSaving, err)
		}
	}
	return nil
}

func (s *SaveEngine) saveSplit(parts []*body.Body) error {
	lastDir := ""
	for _, p := range parts {
		suggested := DeriveFilename(p)
		if lastDir != "" && !filepath.IsAbs(suggested) {
			suggested = filepath.Join(lastDir, suggested)
		}
		path, cancelled := s.Prompter.PromptSavePath(suggested)
		if cancelled {
			return ErrUserCancelled
		}
		path = GuardShortcut(path)

		decision := ConflictOverwrite
		if s.FS.Exists(path) {
			decision = s.Prompter.ResolveConflict(path)
			if decision == ConflictCancel {
				return ErrUserCancelled
			}
		}

		var w io.WriteCloser
		var err error
		if decision == ConflictAppend {
			w, err = s.FS.OpenAppend(path)
		} else {
			w, err = s.FS.Create(path)
		}
		if err != nil {
			return newOpErrorWrap(ErrIO, MsgSaving, err)
		}

		raw, derr := body.DecodeAttachment(p)
		if derr != nil {
			w.Close()
			return newOpErrorWrap(ErrIO, MsgSaving, derr)
		}
		_, werr := w.Write(raw)
		w.Close()
		if werr != nil {
			return newOpErrorWrap(ErrIO, MsgSaving, werr)
		}

		lastDir = filepath.Dir(path)
	}
	return nil
}

// DeriveFilename picks a save-target basename for b: the part's own
// filename if it has one, else a subject-derived name for an
// unencoded message/* part, else empty (spec.md §4.4).
func DeriveFilename(b *body.Body) string {
	if fn := b.DisplayFilename(); fn != "" {
		return filepath.Base(fn)
	}
	if b.Type == body.TypeMessage && b.Encoding != body.EncBase64 && b.Encoding != body.EncQuotedPrintable {
		if b.Hdr != nil && b.Hdr.Subject != "" {
			return sanitizeFilename(b.Hdr.Subject)
		}
	}
	return ""
}

func sanitizeFilename(s string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", "\x00", "")
	return r.Replace(s)
}

// GuardShortcut prefixes path with "./" when its first byte is a
// mailbox shortcut sigil, so the save target is treated as a literal
// filename rather than expanded (spec.md §4.4).
func GuardShortcut(path string) string {
	if path != "" && strings.IndexByte(shortcutSigils, path[0]) >= 0 {
		return "./" + path
	}
	return path
}

func newOpErrorWrap(kind error, message string, cause error) *OpError {
	e := newOpError(kind, message)
	if cause != nil {
		e.Message = message + ": " + cause.Error()
	}
	return e
}
