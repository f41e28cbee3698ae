// SPDX-License-Identifier: MPL-2.0

package secret

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/scrypt"
)

const (
	envelopeVersion = 1
	saltSize        = 16
	keySize         = 32

	// DefaultCost is the scrypt work factor exponent (N = 2^DefaultCost).
	DefaultCost = 15
	minCost     = 10
	maxCost     = 20
)

var (
	// ErrDecrypt is returned when a value cannot be opened with the secret.
	ErrDecrypt = errors.New("unable to decrypt value")
	// ErrInvalidCost is returned for a work factor outside the supported range.
	ErrInvalidCost = errors.New("invalid scrypt cost")
)

type (
	// Decrypter opens values produced by an Encrypter.
	Decrypter interface {
		Decrypt(ciphertext, secret string) (string, error)
	}

	// Encrypter seals plaintext with a secret.
	Encrypter interface {
		Encrypt(plaintext, secret string) (string, error)
	}

	// Crypto implements Encrypter and Decrypter.
	Crypto struct {
		cost uint8
	}

	// Option configures Crypto.
	Option func(*Crypto)
)

// WithCost sets the scrypt work factor exponent used when encrypting.
// Decryption always uses the exponent recorded in the envelope.
func WithCost(cost uint8) Option {
	return func(c *Crypto) { c.cost = cost }
}

// New returns a Crypto with DefaultCost.
func New(opts ...Option) *Crypto {
	c := &Crypto{cost: DefaultCost}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Encrypt seals plaintext. The envelope layout is
// version | cost | salt | nonce | ciphertext, base64 encoded.
func (c *Crypto) Encrypt(plaintext, secret string) (string, error) {
	if c.cost < minCost || c.cost > maxCost {
		return "", fmt.Errorf("%w: %d (want %d..%d)", ErrInvalidCost, c.cost, minCost, maxCost)
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	aead, err := newAEAD(secret, salt, c.cost)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	header := []byte{envelopeVersion, c.cost}
	out := make([]byte, 0, len(header)+saltSize+len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, header...)
	out = append(out, salt...)
	out = append(out, nonce...)
	out = aead.Seal(out, nonce, []byte(plaintext), header)

	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt opens an envelope produced by Encrypt.
func (c *Crypto) Decrypt(ciphertext, secret string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: not base64: %w", ErrDecrypt, err)
	}
	if len(raw) < 2+saltSize || raw[0] != envelopeVersion {
		return "", fmt.Errorf("%w: unrecognized envelope", ErrDecrypt)
	}

	cost := raw[1]
	if cost < minCost || cost > maxCost {
		return "", fmt.Errorf("%w: %w: %d", ErrDecrypt, ErrInvalidCost, cost)
	}

	salt := raw[2 : 2+saltSize]
	aead, err := newAEAD(secret, salt, cost)
	if err != nil {
		return "", err
	}

	rest := raw[2+saltSize:]
	if len(rest) < aead.NonceSize()+aead.Overhead() {
		return "", fmt.Errorf("%w: truncated envelope", ErrDecrypt)
	}
	nonce, sealed := rest[:aead.NonceSize()], rest[aead.NonceSize():]

	plain, err := aead.Open(nil, nonce, sealed, raw[:2])
	if err != nil {
		return "", fmt.Errorf("%w: wrong secret or corrupted value", ErrDecrypt)
	}
	return string(plain), nil
}

func newAEAD(secret string, salt []byte, cost uint8) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(secret), salt, 1<<cost, 8, 1, keySize)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return cipher.NewGCM(block)
}
