// Package password derives and verifies salted password hashes using scrypt.
//
// The encoded form is "<salt-hex>:<key-hex>". The cost parameters are fixed
// and versioned with the encoding: changing them invalidates stored hashes,
// so they must never be tweaked in place.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"

	"github.com/julinuzzo19/ecommerce-auth-service/internal/common"
)

const (
	// scrypt cost parameters, fixed for every stored credential.
	costN = 16384
	costR = 8
	costP = 1

	saltLength = 16
	keyLength  = 64

	delimiter = ":"
)

// Scrypt is a password hasher with a bounded number of concurrent
// derivations. Key derivation is CPU- and memory-bound; the cap keeps a
// burst of signups from starving the rest of the process.
type Scrypt struct {
	sem chan struct{}
}

// NewScrypt returns a hasher that allows at most maxConcurrent in-flight
// derivations. Values below 1 are treated as 1.
func NewScrypt(maxConcurrent int) *Scrypt {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Scrypt{sem: make(chan struct{}, maxConcurrent)}
}

// Hash derives a key from password with a fresh random salt and returns the
// encoded "<salt-hex>:<key-hex>" form. Two calls with the same password
// produce different encodings.
func (s *Scrypt) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	key, err := s.derive([]byte(password), salt)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(salt) + delimiter + hex.EncodeToString(key), nil
}

// Verify recomputes the derived key for password using the salt embedded in
// encoded and compares it to the stored key in constant time.
//
// A malformed encoded value returns common.ErrCorruptCredential. That is a
// data-integrity signal, not a password mismatch, and callers must not
// conflate the two.
func (s *Scrypt) Verify(password string, encoded string) (bool, error) {
	salt, key, err := decode(encoded)
	if err != nil {
		return false, err
	}

	candidate, err := s.derive([]byte(password), salt)
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}

func (s *Scrypt) derive(password, salt []byte) ([]byte, error) {
	s.sem <- struct{}{}
	defer func() { <-s.sem }()

	key, err := scrypt.Key(password, salt, costN, costR, costP, keyLength)
	if err != nil {
		return nil, fmt.Errorf("deriving key: %w", err)
	}
	return key, nil
}

func decode(encoded string) (salt, key []byte, err error) {
	saltHex, keyHex, ok := strings.Cut(encoded, delimiter)
	if !ok {
		return nil, nil, fmt.Errorf("%w: missing delimiter", common.ErrCorruptCredential)
	}

	salt, err = hex.DecodeString(saltHex)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid salt encoding", common.ErrCorruptCredential)
	}
	if len(salt) != saltLength {
		return nil, nil, fmt.Errorf("%w: salt length %d", common.ErrCorruptCredential, len(salt))
	}

	key, err = hex.DecodeString(keyHex)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid key encoding", common.ErrCorruptCredential)
	}
	if len(key) != keyLength {
		return nil, nil, fmt.Errorf("%w: key length %d", common.ErrCorruptCredential, len(key))
	}

	return salt, key, nil
}
