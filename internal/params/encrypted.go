// SPDX-License-Identifier: MPL-2.0

package params

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/invowk/prun/internal/secret"
	"github.com/invowk/prun/pkg/profile"
)

const (
	// EncryptedPrefix marks the companion parameter carrying an encrypted value.
	EncryptedPrefix = "encrypted"
	// SecretParameter is the parameter holding the decryption secret.
	SecretParameter = "secret"
)

// ErrSecretRequired is wrapped by SecretRequiredError.
var ErrSecretRequired = errors.New("secret required")

type (
	// SecretRequiredError is returned when an encrypted value is present but
	// no secret was supplied to open it.
	SecretRequiredError struct {
		Name      string
		Companion string
	}

	// EncryptedRetriever resolves name from encrypted<Name>.
	EncryptedRetriever struct {
		decrypter secret.Decrypter
	}
)

func (e *SecretRequiredError) Error() string {
	return fmt.Sprintf("parameter %q is encrypted (%s) but no %q was given", e.Name, e.Companion, SecretParameter)
}

// Unwrap returns ErrSecretRequired.
func (e *SecretRequiredError) Unwrap() error { return ErrSecretRequired }

// NewEncryptedRetriever returns a retriever decrypting with dec. With a nil
// dec the retriever declines every lookup.
func NewEncryptedRetriever(dec secret.Decrypter) *EncryptedRetriever {
	return &EncryptedRetriever{decrypter: dec}
}

// EncryptedName returns the companion name of name: "password" becomes
// "encryptedPassword".
func EncryptedName(name string) string {
	first, size := utf8.DecodeRuneInString(name)
	if first == utf8.RuneError {
		return EncryptedPrefix + name
	}
	return EncryptedPrefix + string(unicode.ToUpper(first)) + name[size:]
}

// Lookup implements Retriever. Names carrying the encrypted prefix are
// declined, so resolving a companion never triggers decryption itself. The
// secret is never looked up in encrypted form.
func (e *EncryptedRetriever) Lookup(ctx context.Context, _ *profile.Command, params Parameters, name string, _ []string, r *Resolver) (string, bool, error) {
	if name == "" || name == SecretParameter || strings.HasPrefix(name, EncryptedPrefix) {
		return "", false, nil
	}

	companion := EncryptedName(name)
	encrypted, ok, err := lookupRawFirst(ctx, params, companion, r)
	if err != nil || !ok || encrypted == "" {
		return "", false, err
	}

	if e.decrypter == nil {
		return "", false, nil
	}

	key, ok, err := lookupRawFirst(ctx, params, SecretParameter, r)
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, &SecretRequiredError{Name: name, Companion: companion}
	}

	plain, err := e.decrypter.Decrypt(encrypted, key)
	if err != nil {
		return "", false, fmt.Errorf("failed to decrypt %s: %w", companion, err)
	}
	return plain, true, nil
}

func lookupRawFirst(ctx context.Context, params Parameters, name string, r *Resolver) (string, bool, error) {
	if v, ok := params.Get(name); ok {
		return v, true, nil
	}
	return r.Resolve(ctx, name)
}
