package attach

import (
	"os"
	"strconv"
	"strings"

	"github.com/corvidmail/attachbrowser/internal/body"
)

// FormatOptions configures EntryFormatter.Expand.
type FormatOptions struct {
	// StatFile, when non-nil and StatAttach is set, backs the `s`
	// format code's STAT_FILE behavior: stat the backing file instead
	// of trusting Body.Length.
	StatFile func(b *body.Body) (int64, bool)
	// StatAttach gates the STAT_FILE behavior for `s`.
	StatAttach bool
	// HomeDir is used to home-relativize an absolute filename for `f`.
	HomeDir string
}

// EntryFormatter expands a user-configurable template (spec.md §4.2)
// into a display line for one Entry.
type EntryFormatter struct {
	opts FormatOptions
}

func NewEntryFormatter(opts FormatOptions) *EntryFormatter {
	return &EntryFormatter{opts: opts}
}

// Expand renders template for entry e, 1-based position n. Unknown
// codes render to empty (spec.md §6 "Format template").
func (f *EntryFormatter) Expand(template string, e *Entry, n int) string {
	var out strings.Builder
	f.expandInto(&out, template, e, n)
	return out.String()
}

func (f *EntryFormatter) expandInto(out *strings.Builder, tmpl string, e *Entry, n int) {
	i := 0
	for i < len(tmpl) {
		c := tmpl[i]
		if c != '%' {
			out.WriteByte(c)
			i++
			continue
		}
		i++
		if i >= len(tmpl) {
			break
		}
		if tmpl[i] == '?' {
			consumed := f.expandConditional(out, tmpl[i:], e, n)
			i += consumed
			continue
		}
		code := tmpl[i]
		out.WriteString(f.expandCode(code, e, n))
		i++
	}
}

// expandConditional handles %?X?then&else? by recursing into the
// formatter for whichever branch the code's "optional predicate"
// selects (spec.md §4.2).
func (f *EntryFormatter) expandConditional(out *strings.Builder, rest string, e *Entry, n int) int {
	// rest starts with '?', then the code, then the '?' opening the
	// THEN branch
	if len(rest) < 3 || rest[2] != '?' {
		return len(rest)
	}
	code := rest[1]
	body := rest[3:]

	thenEnd := strings.IndexByte(body, '&')
	closeIdx := strings.IndexByte(body, '?')
	if closeIdx < 0 {
		return len(rest)
	}
	var thenBranch, elseBranch string
	if thenEnd >= 0 && thenEnd < closeIdx {
		thenBranch = body[:thenEnd]
		elseBranch = body[thenEnd+1 : closeIdx]
	} else {
		thenBranch = body[:closeIdx]
		elseBranch = ""
	}

	if f.predicate(code, e) {
		f.expandInto(out, thenBranch, e, n)
	} else {
		f.expandInto(out, elseBranch, e, n)
	}

	// total consumed: '?' + code + '?' + body up to and including closing '?'
	return 3 + closeIdx + 1
}

// predicate is the "optional predicate" for conditional branches: true
// iff the THEN branch should be taken for this code on this entry.
func (f *EntryFormatter) predicate(code byte, e *Entry) bool {
	b := e.Body
	switch code {
	case 'C':
		return b.Type == body.TypeText
	case 'c':
		return b.Type == body.TypeText
	case 'D':
		return b.Deleted
	case 'd':
		return b.Description != ""
	case 'F':
		return b.DFilename != ""
	case 'f':
		return b.Filename != ""
	case 'Q':
		return b.AttachQualifies
	case 't':
		return b.Tagged
	case 'u':
		return b.Unlink
	default:
		return f.expandCode(code, e, e.Index+1) != ""
	}
}

func (f *EntryFormatter) expandCode(code byte, e *Entry, n int) string {
	b := e.Body
	switch code {
	case '%':
		return "%"
	case 'C':
		if b.Type == body.TypeText {
			return body.BodyCharset(b)
		}
		return ""
	case 'c':
		if b.Type == body.TypeText {
			if body.WillConvert(b) {
				return "c"
			}
			return "n"
		}
		return ""
	case 'D':
		if b.Deleted {
			return "D"
		}
		return " "
	case 'd':
		if b.Description != "" {
			return b.Description
		}
		return f.expandCode('F', e, n)
	case 'F':
		if b.DFilename != "" {
			return b.DFilename
		}
		return f.expandCode('f', e, n)
	case 'f':
		return homeRelative(b.Filename, f.opts.HomeDir)
	case 'e':
		if b.Encoding == "" {
			return string(body.Enc7Bit)
		}
		return string(b.Encoding)
	case 'I':
		switch b.Disposition {
		case body.DispInline:
			return "I"
		case body.DispAttachment:
			return "A"
		case body.DispFormData:
			return "F"
		case body.DispNone:
			return "-"
		default:
			return "!"
		}
	case 'm':
		return string(b.Type)
	case 'M':
		return b.Subtype
	case 'n':
		return strconv.Itoa(n)
	case 'Q':
		if b.AttachQualifies {
			return "Q"
		}
		return ""
	case 's':
		return strconv.FormatInt(f.size(b), 10)
	case 't':
		if b.Tagged {
			return "*"
		}
		return " "
	case 'T':
		return e.TreeGlyphs
	case 'u':
		if b.Unlink {
			return "-"
		}
		return " "
	case 'X':
		return strconv.Itoa(b.AttachCount + boolToInt(b.AttachQualifies))
	default:
		return ""
	}
}

func (f *EntryFormatter) size(b *body.Body) int64 {
	if f.opts.StatAttach && f.opts.StatFile != nil {
		if sz, ok := f.opts.StatFile(b); ok {
			return sz
		}
	}
	return b.Length
}

func homeRelative(filename, home string) string {
	if filename == "" || home == "" {
		return filename
	}
	if strings.HasPrefix(filename, home) {
		return "~" + strings.TrimPrefix(filename, home)
	}
	return filename
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// StatFileSize stats path and returns its size. It takes a path rather
// than a Body, so it is not itself a StatFile callback and is never
// installed as one by default; a StatFile callback can use it when a
// part's content lives in an on-disk file.
func StatFileSize(path string) (int64, bool) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, false
	}
	return fi.Size(), true
}
