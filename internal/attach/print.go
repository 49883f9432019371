package attach

import (
	"fmt"
	"io"
	"os"

	"github.com/corvidmail/attachbrowser/internal/body"
)

// MailcapEntry is the subset of a mailcap print entry PrintEngine
// needs: the command line to run, and the needsterminal/copiousoutput
// flags the original honors when deciding whether a viewer's output
// should route through a pager instead of straight to the terminal
// (spec.md §9 supplemented feature 5). Produced by internal/mailcap's
// Table.PrintEntry.
type MailcapEntry struct {
	Command       string
	NeedsTerminal bool
	CopiousOutput bool
}

// MailcapLookup is the external mailcap table (spec.md §1 "the
// mailcap lookup and viewer spawner").
type MailcapLookup interface {
	PrintEntry(b *body.Body) (MailcapEntry, bool)
}

// SplitPrinter delegates one part to the external print_attachment
// routine, used by PrintEngine's split branch.
type SplitPrinter interface {
	PrintPart(b *body.Body) error
}

// PrintEngine implements spec.md §4.6.
type PrintEngine struct {
	Mailcap   MailcapLookup
	Split     SplitPrinter
	Confirm   OverwritePrompter
	Separator string
	// Runner writes everything sent to the actual print command; in
	// production this is the stdin of a spawned process, grounded on
	// the same CommandRunner used by PipeEngine.
	Runner CommandRunner
}

// Print runs the batched or split branch over parts, gated by a yes/no
// question through Confirm (skipped when Confirm is nil). No quad-option
// value is consulted: the question is put on every call.
func (p *PrintEngine) Print(command string, parts []*body.Body, split bool) error {
	if len(parts) == 0 {
		return newOpError(ErrIO, "no attachments selected")
	}
	if p.Confirm != nil && !p.Confirm.Confirm("Print attachment(s)?") {
		return ErrUserCancelled
	}
	if split {
		return p.printSplit(parts)
	}
	return p.printBatched(command, parts)
}

func (p *PrintEngine) printSplit(parts []*body.Body) error {
	for _, part := range parts {
		if err := p.Split.PrintPart(part); err != nil {
			return newOpErrorWrap(ErrIO, "print", err)
		}
	}
	return nil
}

func (p *PrintEngine) printBatched(command string, parts []*body.Body) error {
	for _, part := range parts {
		if !p.canPrint(part) {
			return newOpError(ErrMalformed, fmt.Sprintf(MsgDontKnowHowToPrintFn, string(part.Type)+"/"+part.Subtype))
		}
	}

	return p.Runner.RunFeeding(command, func(w io.Writer) error {
		for i, part := range parts {
			if i > 0 && p.Separator != "" {
				if _, err := io.WriteString(w, p.Separator); err != nil {
					return err
				}
			}
			if err := p.streamPart(w, part); err != nil {
				return err
			}
		}
		return nil
	})
}

// streamPart writes part's printable bytes to w. text/plain and
// application/postscript are piped raw after decode; other decodable
// parts are decoded to a temp file first, then copied in, mirroring
// the original's two code paths.
func (p *PrintEngine) streamPart(w io.Writer, part *body.Body) error {
	if isPlainOrPostscript(part) {
		raw, err := body.DecodeAttachment(part)
		if err != nil {
			return err
		}
		_, err = w.Write(raw)
		return err
	}

	tmp, err := body.NewTempAttachment(part)
	if err != nil {
		return err
	}
	defer tmp.Close()

	f, err := os.Open(tmp.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

// canPrint mirrors §4.6's can_print: a mailcap print entry exists, or
// the subtype is one the print pipe handles directly, or the part
// decodes cleanly. Unlike the original (design note (b): the
// recursion returns from within the first untagged multipart subtree,
// short-circuiting later siblings) every target part is checked
// independently here, since flattening already expanded tag-prefix
// selections into a plain list.
func (p *PrintEngine) canPrint(b *body.Body) bool {
	if p.Mailcap != nil {
		if _, ok := p.Mailcap.PrintEntry(b); ok {
			return true
		}
	}
	if isPlainOrPostscript(b) {
		return true
	}
	return isDecodable(b)
}

func isPlainOrPostscript(b *body.Body) bool {
	return (b.Type == body.TypeText && b.Subtype == "plain") ||
		(b.Type == body.TypeApplication && b.Subtype == "postscript")
}

func isDecodable(b *body.Body) bool {
	return b.Encoding != body.EncOther
}
