// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/pbkdf2"
)

// createEncryptedExport builds a passphrase-protected export document the way
// the dashboard backend writes them.
func createEncryptedExport(t *testing.T, plaintext []byte, passphrase string) []byte {
	t.Helper()

	salt := []byte("fm-export-salt")
	iterations := 1000 // keep the test fast; production uses far more
	keyLength := 32

	key := pbkdf2.Key([]byte(passphrase), salt, iterations, keyLength, sha512.New)

	block, err := aes.NewCipher(key)
	require.NoError(t, err)
	aesGCM, err := cipher.NewGCM(block)
	require.NoError(t, err)

	nonce := make([]byte, aesGCM.NonceSize())
	_, err = rand.Read(nonce)
	require.NoError(t, err)

	ciphertext := aesGCM.Seal(nonce, nonce, plaintext, nil)

	kpConfig, err := json.Marshal(map[string]interface{}{
		"salt":          base64.StdEncoding.EncodeToString(salt),
		"iterations":    iterations,
		"hash_function": "sha512",
		"key_length":    keyLength,
	})
	require.NoError(t, err)

	doc, err := json.Marshal(map[string]interface{}{
		"meta": map[string]interface{}{
			"key_provider.pbkdf2.export": base64.StdEncoding.EncodeToString(kpConfig),
		},
		"encrypted_data": base64.StdEncoding.EncodeToString(ciphertext),
	})
	require.NoError(t, err)

	return doc
}

// TestDecryptExport_ValidEncryption verifies successful decryption of a
// properly encrypted export with a valid passphrase.
func TestDecryptExport_ValidEncryption(t *testing.T) {
	t.Parallel()
	passphrase := "test-passphrase"
	plaintext := []byte(`{"format_version":1,"serial":7,"order":{"id":"o-100"}}`)

	exportData := createEncryptedExport(t, plaintext, passphrase)

	result, err := DecryptExport(exportData, passphrase)

	assert.NoError(t, err)
	assert.Equal(t, plaintext, result)
}

// TestDecryptExport_WrongPassphrase verifies that decryption fails with the
// wrong passphrase.
func TestDecryptExport_WrongPassphrase(t *testing.T) {
	t.Parallel()
	exportData := createEncryptedExport(t, []byte(`{"serial":1}`), "correct")

	_, err := DecryptExport(exportData, "wrong")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decrypt")
}

// TestDecryptExport_InvalidJSON verifies that a non-JSON document returns an
// error.
func TestDecryptExport_InvalidJSON(t *testing.T) {
	t.Parallel()
	result, err := DecryptExport([]byte("not valid json"), "passphrase")

	assert.Error(t, err)
	assert.Nil(t, result)
}

// TestDecryptExport_InvalidBase64Key verifies error when the key provider
// config is not valid base64.
func TestDecryptExport_InvalidBase64Key(t *testing.T) {
	t.Parallel()
	doc, err := json.Marshal(map[string]interface{}{
		"meta": map[string]interface{}{
			"key_provider.pbkdf2.export": "not-valid-base64!@#$",
		},
		"encrypted_data": "dGVzdA==",
	})
	require.NoError(t, err)

	result, err := DecryptExport(doc, "passphrase")

	assert.Error(t, err)
	assert.Nil(t, result)
}

// TestDecryptExport_TruncatedCiphertext verifies error when the ciphertext is
// shorter than a GCM nonce.
func TestDecryptExport_TruncatedCiphertext(t *testing.T) {
	t.Parallel()
	kpConfig, err := json.Marshal(map[string]interface{}{
		"salt":          base64.StdEncoding.EncodeToString([]byte("salt")),
		"iterations":    1000,
		"hash_function": "sha512",
		"key_length":    32,
	})
	require.NoError(t, err)

	doc, err := json.Marshal(map[string]interface{}{
		"meta": map[string]interface{}{
			"key_provider.pbkdf2.export": base64.StdEncoding.EncodeToString(kpConfig),
		},
		"encrypted_data": base64.StdEncoding.EncodeToString([]byte("abc")),
	})
	require.NoError(t, err)

	result, err := DecryptExport(doc, "passphrase")

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "ciphertext too short")
}
