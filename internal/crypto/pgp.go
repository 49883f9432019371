package crypto

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/corvidmail/attachbrowser/internal/body"
)

// PGPEngine decrypts multipart/encrypted and the "known malformed"
// inline-PGP variant the original also special-cases (spec.md §4.8
// PGP branch).
type PGPEngine struct {
	SecretKeys openpgp.EntityList
	Passphrase PassphraseCache
}

// DecryptMultipart decrypts a multipart/encrypted part's ciphertext
// child and re-parses the plaintext into a fresh Body tree.
func (e *PGPEngine) DecryptMultipart(ciphertext []byte) (*Result, error) {
	pass, ok := e.Passphrase.Get()
	if !ok {
		return nil, ErrNoPassphrase
	}
	for _, key := range e.SecretKeys.DecryptionKeys() {
		if key.PrivateKey == nil || !key.PrivateKey.Encrypted {
			continue
		}
		if err := key.PrivateKey.Decrypt([]byte(pass)); err != nil {
			continue
		}
	}

	md, err := openpgp.ReadMessage(bytes.NewReader(ciphertext), e.SecretKeys, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptFailed, err)
	}
	plain, err := io.ReadAll(md.UnverifiedBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptFailed, err)
	}

	root, _, err := body.ParseMessage(plain)
	if err != nil {
		return nil, fmt.Errorf("%w: parse decrypted body: %v", ErrDecryptFailed, err)
	}

	sec := body.SecPGPEnc
	if md.IsSigned {
		sec |= body.SecSign
		if md.SignatureError == nil {
			sec |= body.SecGoodSign
		}
	}
	return &Result{Root: root, Security: sec}, nil
}

// ExtractKeys implements EXTRACT_KEYS: pull the public keys embedded
// in a PGP key-block part and return them serialized for import.
func (e *PGPEngine) ExtractKeys(raw []byte) ([]byte, error) {
	block, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(raw))
	if err != nil {
		// tolerate unarmored key material
		block, err = openpgp.ReadKeyRing(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("extract pgp keys: %w", err)
		}
	}
	var out bytes.Buffer
	for _, entity := range block {
		if err := entity.Serialize(&out); err != nil {
			return nil, fmt.Errorf("serialize extracted key: %w", err)
		}
	}
	return out.Bytes(), nil
}
