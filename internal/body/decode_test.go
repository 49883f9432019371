package body

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAttachmentBase64RoundTrip(t *testing.T) {
	plain := []byte("the quick brown fox")
	encoded := base64.StdEncoding.EncodeToString(plain)
	b := &Body{Encoding: EncBase64, Raw: []byte(encoded)}

	decoded, err := DecodeAttachment(b)
	require.NoError(t, err)
	assert.Equal(t, plain, decoded)

	reencoded := base64.StdEncoding.EncodeToString(decoded)
	assert.Equal(t, encoded, reencoded)
}

func TestDecodeAttachmentQuotedPrintable(t *testing.T) {
	b := &Body{Encoding: EncQuotedPrintable, Raw: []byte("caf=C3=A9")}
	decoded, err := DecodeAttachment(b)
	require.NoError(t, err)
	assert.Equal(t, "café", string(decoded))
}

func TestDecodeAttachmentPassthrough(t *testing.T) {
	b := &Body{Encoding: Enc7Bit, Raw: []byte("plain text")}
	decoded, err := DecodeAttachment(b)
	require.NoError(t, err)
	assert.Equal(t, "plain text", string(decoded))
}

func TestBodyCharsetDefaultsToUSASCII(t *testing.T) {
	b := &Body{Type: TypeText}
	assert.Equal(t, "us-ascii", BodyCharset(b))
	b.Charset = "iso-8859-1"
	assert.Equal(t, "iso-8859-1", BodyCharset(b))
}

func TestWillConvert(t *testing.T) {
	b := &Body{Type: TypeText, Charset: "utf-8"}
	assert.False(t, WillConvert(b))
	b.Charset = "iso-8859-1"
	assert.True(t, WillConvert(b))
}
