package attach

import (
	"io"

	"github.com/corvidmail/attachbrowser/internal/body"
)

// CommandRunner is the external collaborator that spawns a subprocess
// and feeds it input, mirroring the original's pipe/filter subprocess
// plumbing (spec.md §1 "external collaborators").
type CommandRunner interface {
	// RunFeeding spawns command (via the platform shell) and calls feed
	// with the process's stdin; feed's return error aborts the run.
	// RunFeeding waits for the process to exit before returning.
	RunFeeding(command string, feed func(io.Writer) error) error
	// Filter spawns command, writes input to its stdin, and returns
	// everything it wrote to stdout. Used by filter-in-place mode.
	Filter(command string, input []byte) ([]byte, error)
}

// OverwritePrompter confirms replacing a part's content in filter mode.
type OverwritePrompter interface {
	Confirm(prompt string) bool
}

// PipeEngine implements spec.md §4.5: pipe-to-command, filter-in-place,
// and the split/concat variants shared with SaveEngine/PrintEngine.
type PipeEngine struct {
	Runner    CommandRunner
	Overwrite OverwritePrompter
	Separator string
	// FromParsedMessage marks that the viewed body is a freshly parsed
	// message rather than the mailbox's own backing file; filter mode is
	// disallowed in that case because there is no original attachment
	// file to replace (spec.md §4.5).
	FromParsedMessage bool
}

// Pipe runs command over parts. filterMode and split select the three
// variants of §4.5; filterMode and split are mutually exclusive in the
// original and here (filter mode is always per-part).
func (p *PipeEngine) Pipe(command string, parts []*body.Body, filterMode, split bool) error {
	if len(parts) == 0 {
		return newOpError(ErrIO, "no attachments selected")
	}
	if filterMode && p.FromParsedMessage {
		return newOpError(ErrMailboxState, "Filtering is not available for a parsed message.")
	}
	if filterMode {
		return p.filter(command, parts)
	}
	if split {
		return p.pipeSplit(command, parts)
	}
	return p.pipeConcat(command, parts)
}

func (p *PipeEngine) filter(command string, parts []*body.Body) error {
	for _, part := range parts {
		raw, err := body.DecodeAttachment(part)
		if err != nil {
			return newOpErrorWrap(ErrIO, MsgAttachmentFiltered, err)
		}
		if p.Overwrite != nil && !p.Overwrite.Confirm("Overwrite this attachment with the filter's output?") {
			continue
		}
		out, err := p.Runner.Filter(command, raw)
		if err != nil {
			return newOpErrorWrap(ErrIO, MsgAttachmentFiltered, err)
		}
		part.Raw = out
		part.Encoding = body.Enc8Bit
		part.Length = int64(len(out))
	}
	return nil
}

func (p *PipeEngine) pipeSplit(command string, parts []*body.Body) error {
	for _, part := range parts {
		raw, err := body.DecodeAttachment(part)
		if err != nil {
			return newOpErrorWrap(ErrIO, "pipe", err)
		}
		err = p.Runner.RunFeeding(command, func(w io.Writer) error {
			_, err := w.Write(raw)
			return err
		})
		if err != nil {
			return newOpErrorWrap(ErrIO, "pipe", err)
		}
	}
	return nil
}

func (p *PipeEngine) pipeConcat(command string, parts []*body.Body) error {
	return p.Runner.RunFeeding(command, func(w io.Writer) error {
		for i, part := range parts {
			if i > 0 && p.Separator != "" {
				if _, err := io.WriteString(w, p.Separator); err != nil {
					return err
				}
			}
			raw, err := body.DecodeAttachment(part)
			if err != nil {
				return err
			}
			if _, err := w.Write(raw); err != nil {
				return err
			}
		}
		return nil
	})
}
