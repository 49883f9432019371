package body

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const simpleMessage = "From: a@example.com\r\n" +
	"To: b@example.com\r\n" +
	"Subject: hello\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"hi there\r\n"

func TestParseMessageSimple(t *testing.T) {
	root, hdr, err := ParseMessage([]byte(simpleMessage))
	require.NoError(t, err)
	assert.Equal(t, "hello", hdr.Subject)
	require.Len(t, hdr.From, 1)
	assert.Equal(t, "a@example.com", hdr.From[0].Address)
	assert.Equal(t, TypeText, root.Type)
	assert.Equal(t, "plain", root.Subtype)
	assert.Equal(t, "utf-8", root.Charset)
	assert.Nil(t, root.Parts)
}

const multipartAlternative = "From: a@example.com\r\n" +
	"To: b@example.com\r\n" +
	"Subject: alt\r\n" +
	"Content-Type: multipart/alternative; boundary=\"B\"\r\n" +
	"\r\n" +
	"--B\r\n" +
	"Content-Type: text/plain\r\n" +
	"\r\n" +
	"plain body\r\n" +
	"--B\r\n" +
	"Content-Type: text/html\r\n" +
	"\r\n" +
	"<p>html body</p>\r\n" +
	"--B--\r\n"

func TestParseMessageMultipartAlternative(t *testing.T) {
	root, _, err := ParseMessage([]byte(multipartAlternative))
	require.NoError(t, err)
	assert.Equal(t, TypeMultipart, root.Type)
	assert.Equal(t, "alternative", root.Subtype)
	children := root.Children()
	require.Len(t, children, 2)
	assert.Equal(t, "plain", children[0].Subtype)
	assert.Equal(t, "html", children[1].Subtype)
	assert.True(t, strings.Contains(string(children[0].Raw), "plain body"))
}

func TestDisplayFilenameFallthrough(t *testing.T) {
	b := &Body{}
	assert.Equal(t, "", b.DisplayFilename())
	b.Filename = "f.txt"
	assert.Equal(t, "f.txt", b.DisplayFilename())
	b.DFilename = "d.txt"
	assert.Equal(t, "d.txt", b.DisplayFilename())
}

func TestDescribeFallthrough(t *testing.T) {
	b := &Body{Filename: "f.txt"}
	assert.Equal(t, "f.txt", b.Describe())
	b.Description = "a description"
	assert.Equal(t, "a description", b.Describe())
}

func TestIsOpaqueOctetStream(t *testing.T) {
	b := &Body{Type: TypeApplication, Subtype: "octet-stream"}
	assert.True(t, b.IsOpaqueOctetStream())
	b.Filename = "x.bin"
	assert.False(t, b.IsOpaqueOctetStream())
}
