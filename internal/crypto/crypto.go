// Package crypto implements the decrypt chain CryptoUnwrap drives:
// PGP via github.com/ProtonMail/go-crypto/openpgp, S/MIME (including
// nested S/MIME) via go.mozilla.org/pkcs7, both grounded on the
// manifests of the pack's zostay-go-email/lorduskordus-aerion repos
// which vendor exactly these libraries for exactly this purpose.
package crypto

import (
	"errors"

	"github.com/corvidmail/attachbrowser/internal/body"
)

// ErrNoPassphrase is returned when a PGP-encrypted message has no
// cached, valid passphrase (spec.md §4.8 step 2).
var ErrNoPassphrase = errors.New("no valid passphrase cached")

// ErrDecryptFailed wraps any failure from the underlying PGP/SMIME
// library.
var ErrDecryptFailed = errors.New("decryption failed")

// Result is the outcome of one decrypt step: the decrypted body tree
// and whether the header's security flags should be refreshed.
type Result struct {
	Root     *body.Body
	Security body.SecurityFlags
}

// PassphraseCache is the external passphrase store (spec.md §1).
type PassphraseCache interface {
	Get() (string, bool)
	Forget()
}

// KeyRing resolves a private key capable of decrypting data addressed
// to one of its recipients.
type KeyRing interface {
	Decrypt(ciphertext []byte, passphrase string) ([]byte, error)
	ExtractKeys(addrs []body.Address) ([]byte, error)
}
