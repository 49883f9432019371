// Package body defines the MIME part tree that the attachment browser
// flattens and operates over. It is modeled on the teacher's
// indexer.MIMENode (github.com/geoffreyhinton/mail_go/indexer), but the
// field set follows the Body data model: a discriminated type/subtype,
// an encoding, a disposition, and a child/sibling chain instead of a
// slice of children, so that tree-walking code can be written the way
// the flattener is specified (walk the sibling chain at each level).
package body

import "time"

// Type is the top-level MIME type discriminant.
type Type string

const (
	TypeText        Type = "text"
	TypeMessage     Type = "message"
	TypeMultipart   Type = "multipart"
	TypeApplication Type = "application"
	TypeImage       Type = "image"
	TypeAudio       Type = "audio"
	TypeVideo       Type = "video"
	TypeModel       Type = "model"
	TypeOther       Type = "other"

	// TypeTop is the parent-type sentinel meaning "top-level", used by
	// TreeFlattener when there is no enclosing multipart.
	TypeTop Type = ""
)

// Encoding is the Content-Transfer-Encoding discriminant.
type Encoding string

const (
	Enc7Bit           Encoding = "7bit"
	Enc8Bit           Encoding = "8bit"
	EncBinary         Encoding = "binary"
	EncQuotedPrintable Encoding = "quoted-printable"
	EncBase64         Encoding = "base64"
	EncOther          Encoding = "x-unknown"
)

// Disposition is the Content-Disposition discriminant.
type Disposition string

const (
	DispInline     Disposition = "inline"
	DispAttachment Disposition = "attachment"
	DispFormData   Disposition = "form-data"
	DispNone       Disposition = "none"
)

// Address is a parsed email address, grounded on indexer.Address.
type Address struct {
	Name    string
	Address string
}

// Header is the embedded message header carried by message/rfc822 and
// message/news parts, and by the top-level message.
type Header struct {
	From       []Address
	To         []Address
	Cc         []Address
	Bcc        []Address
	ReplyTo    []Address
	Subject    string
	MessageID  string
	Date       time.Time
	Security   SecurityFlags
	Changed    bool
	AttachDel  bool
	Fields     map[string]string
}

// SecurityFlags mirrors the bitset the original keeps on the header to
// record whether a message is encrypted, signed, or S/MIME-opaque.
type SecurityFlags uint8

const (
	SecNone SecurityFlags = 0
	SecEncrypt SecurityFlags = 1 << iota
	SecSign
	SecSMIME
	SecSMIMEOpaque
	SecPGPEnc
	SecGoodSign
)

func (s SecurityFlags) Has(f SecurityFlags) bool { return s&f != 0 }

// Body is one MIME part in the parsed tree. ID is a stable identifier
// assigned at parse time; per the design notes, back-references from a
// Body to its flattened Entry are kept as an index lookup (body ID ->
// entry) rather than a raw pointer, so Body carries no pointer back
// into the attach package.
type Body struct {
	ID          string
	Type        Type
	Subtype     string
	Encoding    Encoding
	Disposition Disposition
	Filename    string
	DFilename   string
	Description string
	Charset     string
	Length      int64
	LineCount   int
	ContentID   string

	// Parts is the first child (nil for leaf parts). Children are
	// enumerated by following Next from Parts, mirroring the way the
	// flattener is specified to walk "the sibling chain at each level".
	Parts *Body
	// Next is the next sibling of this Body within its parent's chain.
	Next *Body

	// Hdr is set on message/rfc822 and message/news parts (and on the
	// synthetic root), carrying the embedded message header.
	Hdr *Header

	// Raw holds the still-encoded bytes for this part's body, used by
	// decode/save/pipe/print.
	Raw []byte

	Tagged          bool
	Deleted         bool
	Collapsed       bool
	Unlink          bool
	NoConv          bool
	AttachCount     int
	AttachQualifies bool
}

// Children returns this Body's children as a slice, for callers that
// prefer slice iteration over walking Next by hand.
func (b *Body) Children() []*Body {
	if b == nil || b.Parts == nil {
		return nil
	}
	var out []*Body
	for c := b.Parts; c != nil; c = c.Next {
		out = append(out, c)
	}
	return out
}

// HasChildren reports whether b has at least one child part.
func (b *Body) HasChildren() bool {
	return b != nil && b.Parts != nil
}

// IsMultipart reports whether b is a multipart/* container.
func (b *Body) IsMultipart() bool {
	return b != nil && b.Type == TypeMultipart
}

// IsMessageRFC822 reports whether b is message/rfc822 or message/news,
// the two message subtypes that the flatten rules (Body §3) descend
// into when not collapsed.
func (b *Body) IsMessageRFC822() bool {
	return b != nil && b.Type == TypeMessage && (b.Subtype == "rfc822" || b.Subtype == "news")
}

// IsEncryptedMultipart reports whether b is a multipart/encrypted
// container, which the flatten rules always present as a single opaque
// entry.
func (b *Body) IsEncryptedMultipart() bool {
	return b != nil && b.Type == TypeMultipart && b.Subtype == "encrypted"
}

// IsOpaqueOctetStream is the predicate of the original's check_msg
// shortcut: an application/octet-stream part with no filename. The
// save, pipe and print engines do not call it.
func (b *Body) IsOpaqueOctetStream() bool {
	return b != nil && b.Type == TypeApplication && b.Subtype == "octet-stream" && b.Filename == "" && b.DFilename == ""
}

// DisplayFilename implements the f/F fallthrough of the format table:
// prefer DFilename, then Filename, else empty.
func (b *Body) DisplayFilename() string {
	if b.DFilename != "" {
		return b.DFilename
	}
	return b.Filename
}

// Describe implements the d/F/f fallthrough chain of the format table.
func (b *Body) Describe() string {
	if b.Description != "" {
		return b.Description
	}
	if name := b.DisplayFilename(); name != "" {
		return name
	}
	return ""
}
