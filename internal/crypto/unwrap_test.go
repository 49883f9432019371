package crypto

import (
	"testing"

	"github.com/corvidmail/attachbrowser/internal/body"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwrapPassesThroughWithoutHeader(t *testing.T) {
	root := &body.Body{ID: "root"}
	u, err := Unwrap(nil, root, nil, nil)
	require.NoError(t, err)
	assert.False(t, u.Owned)
	assert.Same(t, root, u.Root)
}

func TestUnwrapPassesThroughWhenNotSecured(t *testing.T) {
	root := &body.Body{ID: "root"}
	hdr := &body.Header{}
	u, err := Unwrap(hdr, root, nil, nil)
	require.NoError(t, err)
	assert.False(t, u.Owned)
}

func TestUnwrapEncryptedWithoutEngineFails(t *testing.T) {
	root := &body.Body{ID: "root"}
	hdr := &body.Header{Security: body.SecEncrypt}
	_, err := Unwrap(hdr, root, nil, nil)
	assert.ErrorIs(t, err, ErrDecryptFailed)
}

func TestUnwrapSMIMEOpaqueWithoutEngineFails(t *testing.T) {
	root := &body.Body{ID: "root"}
	hdr := &body.Header{Security: body.SecSMIMEOpaque}
	_, err := Unwrap(hdr, root, nil, nil)
	assert.ErrorIs(t, err, ErrDecryptFailed)
}

type noPassphrase struct{}

func (noPassphrase) Get() (string, bool) { return "", false }
func (noPassphrase) Forget()             {}

func TestUnwrapEncryptedWithoutPassphraseFails(t *testing.T) {
	root := &body.Body{ID: "root"}
	hdr := &body.Header{Security: body.SecEncrypt}
	pgp := &PGPEngine{Passphrase: noPassphrase{}}
	_, err := Unwrap(hdr, root, pgp, nil)
	assert.ErrorIs(t, err, ErrNoPassphrase)
}

func TestIsSMIMEOpaqueDetectsPkcs7Mime(t *testing.T) {
	b := &body.Body{Type: body.TypeApplication, Subtype: "pkcs7-mime"}
	assert.True(t, isSMIMEOpaque(b))

	b.Subtype = "pdf"
	assert.False(t, isSMIMEOpaque(b))
}

func TestPgpCiphertextRequiresTwoChildren(t *testing.T) {
	root := &body.Body{Type: body.TypeMultipart, Subtype: "encrypted"}
	_, ok := pgpCiphertext(root)
	assert.False(t, ok)

	control := &body.Body{ID: "control"}
	data := &body.Body{ID: "data", Raw: []byte("cipher")}
	control.Next = data
	root.Parts = control
	raw, ok := pgpCiphertext(root)
	require.True(t, ok)
	assert.Equal(t, []byte("cipher"), raw)
}
