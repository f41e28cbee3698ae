// SPDX-License-Identifier: MPL-2.0

// Package secret provides the decryption capability behind encrypted
// parameters.
//
// A parameter named "password" may be supplied as "encryptedPassword"
// together with a "secret". Crypto produces and opens those values: the key is
// derived from the secret with scrypt and the payload is sealed with
// AES-256-GCM. The envelope is base64 text, safe to store in profile files.
package secret
