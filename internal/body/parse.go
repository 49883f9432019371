package body

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"net/textproto"
	"strings"

	"github.com/google/uuid"
)

// ParseMessage turns a raw RFC822 message into a Body tree and its
// embedded Header. The recursive per-boundary node construction
// follows the shape of the teacher's indexer.MIMEParser
// (github.com/geoffreyhinton/mail_go/indexer: NewMIMEParser/Parse,
// which walks a message line by line spawning a child MIMENode per
// boundary) but is built on net/mail and mime/multipart so that
// RFC 2045 boundary and header-folding edge cases are handled by the
// standard library rather than re-implemented.
func ParseMessage(rfc822 []byte) (*Body, *Header, error) {
	msg, err := mail.ReadMessage(bytes.NewReader(rfc822))
	if err != nil {
		return nil, nil, fmt.Errorf("parse message: %w", err)
	}

	hdr := headerFromMail(msg.Header)

	bodyBytes, err := io.ReadAll(msg.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read message body: %w", err)
	}

	root, err := buildNode(mimeHeaderFromMail(msg.Header), bodyBytes, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("build mime tree: %w", err)
	}
	root.Hdr = hdr
	return root, hdr, nil
}

// maxMultipartDepth bounds recursion against maliciously or accidentally
// self-referential multipart nesting, the way the pack's
// zostay-go-email mime parser bounds FillParts with MaxDepth.
const maxMultipartDepth = 32

func buildNode(h textproto.MIMEHeader, raw []byte, depth int) (*Body, error) {
	if depth > maxMultipartDepth {
		return nil, fmt.Errorf("exceeded max multipart depth %d", maxMultipartDepth)
	}

	n := &Body{ID: uuid.NewString()}
	applyHeader(n, h)
	n.Raw = raw
	n.Length = int64(len(raw))
	n.LineCount = strings.Count(string(raw), "\n") + 1

	switch {
	case n.Type == TypeMultipart:
		boundary := mediaParam(h.Get("Content-Type"), "boundary")
		if boundary == "" {
			// Malformed multipart with no boundary: present as opaque,
			// per spec.md §7.5 (benign placeholder for malformed MIME).
			n.Type = TypeApplication
			n.Subtype = "octet-stream"
			return n, nil
		}
		mr := multipart.NewReader(bytes.NewReader(raw), boundary)
		var last *Body
		for {
			part, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				break
			}
			partBytes, err := io.ReadAll(part)
			if err != nil {
				continue
			}
			child, err := buildNode(textproto.MIMEHeader(part.Header), partBytes, depth+1)
			if err != nil {
				continue
			}
			if last == nil {
				n.Parts = child
			} else {
				last.Next = child
			}
			last = child
		}

	case n.IsMessageRFC822():
		inner, innerHdr, err := ParseMessage(raw)
		if err == nil {
			n.Parts = inner
			n.Hdr = innerHdr
		}
	}

	return n, nil
}

func applyHeader(n *Body, h textproto.MIMEHeader) {
	ct := h.Get("Content-Type")
	if ct == "" {
		ct = "text/plain"
	}
	mt, params, err := mime.ParseMediaType(ct)
	if err != nil {
		mt = "text/plain"
		params = map[string]string{}
	}
	typ, sub, _ := strings.Cut(mt, "/")
	n.Type = Type(strings.ToLower(typ))
	n.Subtype = strings.ToLower(sub)
	if cs, ok := params["charset"]; ok {
		n.Charset = cs
	}
	if name, ok := params["name"]; ok {
		n.Filename = name
	}

	if cte := h.Get("Content-Transfer-Encoding"); cte != "" {
		n.Encoding = Encoding(strings.ToLower(strings.TrimSpace(cte)))
	} else {
		n.Encoding = Enc7Bit
	}

	n.Disposition = DispInline
	if cd := h.Get("Content-Disposition"); cd != "" {
		dt, params, err := mime.ParseMediaType(cd)
		if err == nil {
			switch strings.ToLower(dt) {
			case "attachment":
				n.Disposition = DispAttachment
			case "form-data":
				n.Disposition = DispFormData
			case "inline":
				n.Disposition = DispInline
			default:
				n.Disposition = DispNone
			}
			if fn, ok := params["filename"]; ok {
				n.DFilename = fn
			}
		}
	}

	n.Description = h.Get("Content-Description")
	if cid := h.Get("Content-Id"); cid != "" {
		n.ContentID = strings.Trim(cid, "<>")
	}
}

func mediaParam(headerValue, key string) string {
	_, params, err := mime.ParseMediaType(headerValue)
	if err != nil {
		return ""
	}
	return params[key]
}

func mimeHeaderFromMail(h mail.Header) textproto.MIMEHeader {
	return textproto.MIMEHeader(h)
}

func headerFromMail(h mail.Header) *Header {
	hdr := &Header{Fields: map[string]string{}}
	hdr.Subject = h.Get("Subject")
	hdr.MessageID = h.Get("Message-Id")
	hdr.From = parseAddressList(h, "From")
	hdr.To = parseAddressList(h, "To")
	hdr.Cc = parseAddressList(h, "Cc")
	hdr.Bcc = parseAddressList(h, "Bcc")
	hdr.ReplyTo = parseAddressList(h, "Reply-To")
	if d, err := h.Date(); err == nil {
		hdr.Date = d
	}
	for k := range h {
		hdr.Fields[textproto.CanonicalMIMEHeaderKey(k)] = h.Get(k)
	}
	return hdr
}

func parseAddressList(h mail.Header, key string) []Address {
	raw := h.Get(key)
	if raw == "" {
		return nil
	}
	list, err := mail.ParseAddressList(raw)
	if err != nil {
		return nil
	}
	out := make([]Address, 0, len(list))
	for _, a := range list {
		out = append(out, Address{Name: a.Name, Address: a.Address})
	}
	return out
}
