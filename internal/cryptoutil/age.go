// Package cryptoutil wraps filippo.io/age for optional encryption of
// the forensic attempt log, for operators who want the search trail
// itself kept confidential.
package cryptoutil

import (
	"bytes"
	"fmt"
	"io"
	"sync/atomic"

	"filippo.io/age"

	"github.com/MuddySheep/Shamirs-Leak/internal/secure"
)

//nolint:gochecknoglobals // package-level work-factor knob, tunable for tests
var scryptWorkFactor atomic.Int32

//nolint:gochecknoinits // sets the secure default work factor
func init() {
	scryptWorkFactor.Store(18)
}

// SetScryptWorkFactor overrides the scrypt work factor used by Encrypt
// and Decrypt. Range 10 (fast/insecure) to 22 (very secure); intended
// for tests that need a fast round trip.
func SetScryptWorkFactor(factor int) {
	if factor < 10 {
		factor = 10
	} else if factor > 22 {
		factor = 22
	}
	scryptWorkFactor.Store(int32(factor))
}

// Encrypt encrypts plaintext with an age scrypt (passphrase) recipient.
func Encrypt(plaintext []byte, passphrase string) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt recipient: %w", err)
	}
	recipient.SetWorkFactor(int(scryptWorkFactor.Load()))

	buf := &bytes.Buffer{}
	w, err := age.Encrypt(buf, recipient)
	if err != nil {
		return nil, fmt.Errorf("initializing encryption: %w", err)
	}

	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("writing encrypted data: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing encryption: %w", err)
	}

	return buf.Bytes(), nil
}

// Decrypt decrypts ciphertext with an age scrypt (passphrase) identity.
//
// The caller should zero the returned slice when done; prefer
// DecryptSecure when the plaintext is itself sensitive.
func Decrypt(ciphertext []byte, passphrase string) ([]byte, error) {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt identity: %w", err)
	}
	identity.SetMaxWorkFactor(int(scryptWorkFactor.Load()))

	r, err := age.Decrypt(bytes.NewReader(ciphertext), identity)
	if err != nil {
		return nil, fmt.Errorf("initializing decryption: %w", err)
	}

	plaintext, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading decrypted data: %w", err)
	}

	return plaintext, nil
}

// DecryptSecure decrypts ciphertext into a secure.Bytes so the
// plaintext is mlocked and zeroed on Destroy.
func DecryptSecure(ciphertext []byte, passphrase string) (*secure.Bytes, error) {
	plaintext, err := Decrypt(ciphertext, passphrase)
	if err != nil {
		return nil, err
	}
	defer func() {
		for i := range plaintext {
			plaintext[i] = 0
		}
	}()

	return secure.FromSlice(plaintext), nil
}
