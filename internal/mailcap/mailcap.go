// Package mailcap implements the "mailcap lookup and viewer spawner"
// external collaborator of spec.md §1: a small mailcap-file lookup
// plus the process-spawning CommandRunner/Viewer/SplitPrinter
// implementations PipeEngine, PrintEngine, and ViewLoop consume.
// Process spawning is grounded on the pack's general preference for
// os/exec-backed subprocess plumbing (the teacher's lmtp client dials
// and streams over net.Conn in the same "spawn, feed, wait" shape).
package mailcap

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/corvidmail/attachbrowser/internal/attach"
	"github.com/corvidmail/attachbrowser/internal/body"
)

// Entry is one parsed mailcap line: type/subtype -> command, plus the
// needsterminal/copiousoutput flags (spec.md §9 supplemented feature 5).
type Entry struct {
	MimeType      string
	Command       string
	NeedsTerminal bool
	CopiousOutput bool
	PrintCommand  string
}

// Table is a parsed mailcap file, consulted by type/subtype.
type Table struct {
	entries []Entry
}

// Load parses a mailcap file at path (RFC 1524 subset: "type/subtype;
// command; flag1; flag2=value"). Missing files yield an empty table
// rather than an error, matching mailcap's usual "best effort" lookup.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Table{}, nil
		}
		return nil, fmt.Errorf("open mailcap %s: %w", path, err)
	}
	defer f.Close()

	var t Table
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ";")
		if len(fields) < 2 {
			continue
		}
		e := Entry{MimeType: strings.ToLower(strings.TrimSpace(fields[0])), Command: strings.TrimSpace(fields[1])}
		for _, flag := range fields[2:] {
			flag = strings.TrimSpace(flag)
			switch {
			case flag == "needsterminal":
				e.NeedsTerminal = true
			case flag == "copiousoutput":
				e.CopiousOutput = true
			case strings.HasPrefix(flag, "print="):
				e.PrintCommand = strings.TrimPrefix(flag, "print=")
			}
		}
		t.entries = append(t.entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan mailcap %s: %w", path, err)
	}
	return &t, nil
}

func (t *Table) lookup(mimeType string) (Entry, bool) {
	mimeType = strings.ToLower(mimeType)
	major := strings.SplitN(mimeType, "/", 2)[0]
	for _, e := range t.entries {
		if e.MimeType == mimeType || e.MimeType == major+"/*" {
			return e, true
		}
	}
	return Entry{}, false
}

// ViewEntry satisfies the viewer spawner's lookup needs.
func (t *Table) ViewEntry(b *body.Body) (Entry, bool) {
	return t.lookup(string(b.Type) + "/" + b.Subtype)
}

// PrintEntry implements attach.MailcapLookup.
func (t *Table) PrintEntry(b *body.Body) (attach.MailcapEntry, bool) {
	e, ok := t.lookup(string(b.Type) + "/" + b.Subtype)
	if !ok || e.PrintCommand == "" {
		return attach.MailcapEntry{}, false
	}
	return attach.MailcapEntry{
		Command:       e.PrintCommand,
		NeedsTerminal: e.NeedsTerminal,
		CopiousOutput: e.CopiousOutput,
	}, true
}

// Runner is the os/exec-backed attach.CommandRunner.
type Runner struct{}

func (Runner) RunFeeding(command string, feed func(io.Writer) error) error {
	cmd := exec.Command("/bin/sh", "-c", command)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("open stdin for %q: %w", command, err)
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %q: %w", command, err)
	}

	feedErr := feed(stdin)
	stdin.Close()
	waitErr := cmd.Wait()
	if feedErr != nil {
		return feedErr
	}
	if waitErr != nil {
		return fmt.Errorf("run %q: %w", command, waitErr)
	}
	return nil
}

func (Runner) Filter(command string, input []byte) ([]byte, error) {
	cmd := exec.Command("/bin/sh", "-c", command)
	cmd.Stdin = bytes.NewReader(input)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("filter %q: %w", command, err)
	}
	return out.Bytes(), nil
}

// Viewer serves ATTACH_VIEW_MAILCAP/ATTACH_VIEW_TEXT. With a matching
// mailcap entry and the mailcap mode, it runs the entry's command with
// %s replaced by a temp file holding the decoded part; in text mode, or
// when no entry matches, it writes the decoded part to stdout.
type Viewer struct {
	Table *Table
}

func (v *Viewer) View(b *body.Body, mode attach.ViewMode) error {
	entry, ok := v.Table.ViewEntry(b)
	if !ok || mode == attach.ViewModeText {
		return v.viewAsText(b)
	}

	tmp, err := body.NewTempAttachment(b)
	if err != nil {
		return err
	}
	defer tmp.Close()

	command := strings.ReplaceAll(entry.Command, "%s", tmp.Path)
	cmd := exec.Command("/bin/sh", "-c", command)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (v *Viewer) viewAsText(b *body.Body) error {
	raw, err := body.DecodeAttachment(b)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(raw)
	return err
}

// SplitPrinter delegates one part to the mailcap print command.
type SplitPrinter struct {
	Table *Table
}

func (s *SplitPrinter) PrintPart(b *body.Body) error {
	entry, ok := s.Table.PrintEntry(b)
	if !ok {
		return fmt.Errorf("%s: %w", string(b.Type)+"/"+b.Subtype, attach.ErrMalformed)
	}
	tmp, err := body.NewTempAttachment(b)
	if err != nil {
		return err
	}
	defer tmp.Close()

	command := strings.ReplaceAll(entry.Command, "%s", tmp.Path)
	cmd := exec.Command("/bin/sh", "-c", command)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// DefaultPath returns the user's mailcap path the way most mail user
// agents resolve it: $MAILCAPS first entry, else ~/.mailcap.
func DefaultPath() string {
	if v := os.Getenv("MAILCAPS"); v != "" {
		return strings.SplitN(v, ":", 2)[0]
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mailcap"
	}
	return filepath.Join(home, ".mailcap")
}
