// SPDX-License-Identifier: MPL-2.0

// Package params resolves command parameters lazily.
//
// A Resolver binds raw parameters (flags given by the caller) to a command
// and its positional arguments. Values are only computed when asked for: each
// Resolve call walks the retriever chain in registration order and stops at
// the first retriever that produces a value. A retriever may decline a name
// it does not handle, or one it recognizes but cannot answer; both let the
// walk continue. When every retriever declines the value is absent, which
// callers must tell apart from an empty value.
//
// The default chain is, in order:
//
//  1. ParameterRetriever: the raw parameter, or the positional argument bound
//     to an arg variable.
//  2. EncryptedRetriever: decrypts encrypted<Name> with the secret parameter.
//  3. DefaultRetriever: the variable default from the command definition.
//
// Order matters. Raw values win over decrypted ones, and a decrypted value
// wins over a default. The encrypted retriever looks its companion up through
// the same Resolver, so a default can hold the ciphertext.
package params
