// SPDX-License-Identifier: MPL-2.0

package secret

import (
	"encoding/base64"
	"errors"
	"testing"
)

func TestEncryptDecrypt(t *testing.T) {
	t.Parallel()

	c := New(WithCost(minCost))

	tests := []struct {
		name      string
		plaintext string
	}{
		{name: "word", plaintext: "hunter2"},
		{name: "empty", plaintext: ""},
		{name: "unicode", plaintext: "pässwörd ✓"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sealed, err := c.Encrypt(tt.plaintext, "s3cret")
			if err != nil {
				t.Fatalf("Encrypt() error = %v", err)
			}
			if sealed == tt.plaintext {
				t.Fatal("Encrypt() returned the plaintext")
			}

			got, err := c.Decrypt(sealed, "s3cret")
			if err != nil {
				t.Fatalf("Decrypt() error = %v", err)
			}
			if got != tt.plaintext {
				t.Errorf("Decrypt() = %q, want %q", got, tt.plaintext)
			}
		})
	}
}

func TestEncryptIsSalted(t *testing.T) {
	t.Parallel()

	c := New(WithCost(minCost))
	a, err := c.Encrypt("same", "k")
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Encrypt("same", "k")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two encryptions of the same value should differ")
	}
}

func TestDecryptFailures(t *testing.T) {
	t.Parallel()

	c := New(WithCost(minCost))
	sealed, err := c.Encrypt("value", "right")
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := base64.StdEncoding.DecodeString(sealed)

	tampered := append([]byte(nil), raw...)
	tampered[len(tampered)-1] ^= 0xff

	badVersion := append([]byte(nil), raw...)
	badVersion[0] = 9

	tests := []struct {
		name       string
		ciphertext string
		secret     string
	}{
		{name: "wrong secret", ciphertext: sealed, secret: "wrong"},
		{name: "not base64", ciphertext: "%%%", secret: "right"},
		{name: "too short", ciphertext: base64.StdEncoding.EncodeToString([]byte{1, 10}), secret: "right"},
		{name: "tampered", ciphertext: base64.StdEncoding.EncodeToString(tampered), secret: "right"},
		{name: "unknown version", ciphertext: base64.StdEncoding.EncodeToString(badVersion), secret: "right"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := c.Decrypt(tt.ciphertext, tt.secret); !errors.Is(err, ErrDecrypt) {
				t.Errorf("Decrypt() error = %v, want ErrDecrypt", err)
			}
		})
	}
}

func TestEncryptRejectsInvalidCost(t *testing.T) {
	t.Parallel()

	for _, cost := range []uint8{0, minCost - 1, maxCost + 1} {
		if _, err := New(WithCost(cost)).Encrypt("x", "y"); !errors.Is(err, ErrInvalidCost) {
			t.Errorf("Encrypt() with cost %d error = %v, want ErrInvalidCost", cost, err)
		}
	}
}
