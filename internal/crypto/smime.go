package crypto

import (
	"crypto/rsa"
	"crypto/x509"
	"fmt"

	"github.com/corvidmail/attachbrowser/internal/body"
	"go.mozilla.org/pkcs7"
)

// SMIMEEngine decrypts S/MIME-opaque parts, including the nested case
// (an S/MIME-opaque envelope whose plaintext is again S/MIME-opaque)
// that spec.md §8 scenario 6 and §4.8 step 2 call out explicitly.
type SMIMEEngine struct {
	Cert *x509.Certificate
	Key  *rsa.PrivateKey
}

// DecryptOpaque decrypts one layer of S/MIME envelope data.
func (e *SMIMEEngine) DecryptOpaque(raw []byte) ([]byte, error) {
	p7, err := pkcs7.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: parse pkcs7: %v", ErrDecryptFailed, err)
	}
	plain, err := p7.Decrypt(e.Cert, e.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptFailed, err)
	}
	return plain, nil
}

// DecryptChain repeatedly decrypts while the plaintext is itself
// S/MIME-opaque, releasing each intermediate immediately after the
// next decryption succeeds (spec.md §5 "intermediate decryption
// artifacts released immediately"). Returns the innermost Body tree.
func (e *SMIMEEngine) DecryptChain(raw []byte) (*Result, error) {
	var sec body.SecurityFlags = body.SecSMIME

	for {
		plain, err := e.DecryptOpaque(raw)
		if err != nil {
			return nil, err
		}

		root, hdr, err := body.ParseMessage(plain)
		if err != nil {
			return nil, fmt.Errorf("%w: parse decrypted body: %v", ErrDecryptFailed, err)
		}

		if isSMIMEOpaque(root) {
			raw = plain
			continue
		}

		if hdr != nil {
			hdr.Security |= sec
		}
		return &Result{Root: root, Security: sec}, nil
	}
}

func isSMIMEOpaque(b *body.Body) bool {
	return b != nil && b.Type == body.TypeApplication &&
		(b.Subtype == "pkcs7-mime" || b.Subtype == "x-pkcs7-mime")
}
