package body

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime/quotedprintable"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// DecodeAttachment decodes b.Raw according to b.Encoding. It is the
// `decode_attachment` external collaborator named in spec.md §1,
// implemented here rather than stubbed because attachment save/pipe/
// print all need a concrete decode step and golang.org/x/text is
// already grounded in the pack (other_examples: derat-rendmail uses
// charmap/runes/transform for exactly this).
func DecodeAttachment(b *Body) ([]byte, error) {
	switch b.Encoding {
	case EncBase64:
		out, err := base64.StdEncoding.DecodeString(stripWhitespace(string(b.Raw)))
		if err != nil {
			// tolerate unpadded/loose base64, common in the wild
			out, err = base64.RawStdEncoding.DecodeString(stripWhitespace(string(b.Raw)))
			if err != nil {
				return nil, fmt.Errorf("decode base64 attachment: %w", err)
			}
		}
		return out, nil
	case EncQuotedPrintable:
		r := quotedprintable.NewReader(bytes.NewReader(b.Raw))
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("decode quoted-printable attachment: %w", err)
		}
		return out, nil
	default:
		return b.Raw, nil
	}
}

func stripWhitespace(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r == '\r' || r == '\n' || r == ' ' || r == '\t' {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// BodyCharset implements `get_body_charset`: returns the charset a text
// part was declared in, defaulting to us-ascii, matching the Content-
// Type parameter precedence the original applies.
func BodyCharset(b *Body) string {
	if b.Type != TypeText {
		return ""
	}
	if b.Charset != "" {
		return b.Charset
	}
	return "us-ascii"
}

// WillConvert reports whether a text part's declared charset differs
// from the display charset (always UTF-8 here), which backs the `c`
// format code ("c" if text and will-convert else "n").
func WillConvert(b *Body) bool {
	if b.Type != TypeText {
		return false
	}
	cs := strings.ToLower(BodyCharset(b))
	return cs != "" && cs != "utf-8" && cs != "us-ascii" && cs != "ascii"
}

// ConvertToUTF8 decodes raw text bytes from the part's declared charset
// into UTF-8, via golang.org/x/text/encoding (htmlindex covers the IANA
// names MIME headers use; charmap is kept as a narrower fallback for
// legacy single-byte names htmlindex doesn't recognize).
func ConvertToUTF8(raw []byte, charset string) ([]byte, error) {
	if charset == "" {
		return raw, nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		enc, err = fallbackCharmap(charset)
		if err != nil {
			return raw, nil
		}
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return raw, fmt.Errorf("convert charset %s: %w", charset, err)
	}
	return out, nil
}

func fallbackCharmap(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("unknown charset %s", name)
	}
}
