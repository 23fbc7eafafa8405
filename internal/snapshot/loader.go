// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/term"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/fmctl/fmctl/internal/backend"
)

// DecryptExport decrypts a passphrase-protected snapshot export using the
// provided passphrase. Exports are AES-GCM encrypted with a PBKDF2-derived
// key whose parameters travel in the document's meta block.
func DecryptExport(data []byte, passphrase string) ([]byte, error) {
	var doc struct {
		Meta struct {
			Key string `json:"key_provider.pbkdf2.export"`
		} `json:"meta"`
		EncryptedData string `json:"encrypted_data"`
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse export: %w", err)
	}

	// Decode key provider config
	keyProviderConfig, err := base64.StdEncoding.DecodeString(doc.Meta.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to decode key provider config: %w", err)
	}

	var kpConfig struct {
		Salt       string `json:"salt"`
		Iterations int    `json:"iterations"`
		HashFunc   string `json:"hash_function"`
		KeyLength  int    `json:"key_length"`
	}

	if err = json.Unmarshal(keyProviderConfig, &kpConfig); err != nil {
		return nil, fmt.Errorf("failed to parse key provider config: %w", err)
	}

	// Decode salt
	salt, err := base64.StdEncoding.DecodeString(kpConfig.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}

	// Generate key using configured PBKDF2 parameters
	key := pbkdf2.Key(
		[]byte(passphrase),
		salt,
		kpConfig.Iterations,
		kpConfig.KeyLength,
		sha512.New,
	)

	// Decrypt the snapshot body using the derived key
	return decryptBody(doc.EncryptedData, key)
}

// GetPassphrase prompts interactively for a passphrase without echoing input.
func GetPassphrase() (string, error) {
	var password []byte
	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, os.Interrupt)

	oldState, err := term.MakeRaw(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	defer term.Restore(int(syscall.Stdin), oldState) //nolint:errcheck

	fmt.Print("Enter passphrase: ")
	defer fmt.Print("\r")

loop:
	for {
		select {
		case <-signalChannel:
			fmt.Println("\nInterrupt received, exiting...")
			return "", fmt.Errorf("interrupted")
		default:
			var buf [1]byte
			n, readErr := syscall.Read(syscall.Stdin, buf[:])
			if readErr != nil || n == 0 {
				break loop
			}
			if buf[0] == '\n' || buf[0] == '\r' {
				break loop
			}
			if buf[0] == 127 || buf[0] == 8 { // Handle backspace
				if len(password) > 0 {
					password = password[:len(password)-1]
					fmt.Print("\b \b")
				}
			} else {
				password = append(password, buf[0])
				fmt.Print("*")
			}
		}
	}
	fmt.Println()
	return string(password), nil
}

// MaybeDecrypt inspects a snapshot document and, if it is an encrypted
// export, resolves a passphrase (flag, FMCTL_PASSPHRASE env, interactive
// prompt, in that order) and decrypts it. Plain documents pass through.
func MaybeDecrypt(cmd *cli.Command, doc []byte) ([]byte, error) {
	var jsonData map[string]interface{}
	if err := json.Unmarshal(doc, &jsonData); err != nil {
		return doc, nil
	}
	if _, exists := jsonData["encrypted_data"]; !exists {
		return doc, nil
	}

	// First, look to the flag for passphrase value.
	passphrase := cmd.String("passphrase")

	// Next look in env and use it if found.
	if passphrase == "" {
		passphrase = os.Getenv("FMCTL_PASSPHRASE")
	}

	// Finally, prompt for passphrase
	if passphrase == "" {
		passphrase, _ = GetPassphrase()
	}

	decrypted, err := DecryptExport(doc, passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return decrypted, nil
}

// LoadSnapshotData loads and optionally decrypts a snapshot document from the
// backend resolved for the command's source spec.
func LoadSnapshotData(ctx context.Context, cmd *cli.Command) (map[string]interface{}, error) {
	// Figure out what type of Backend we're reading from.
	be, err := backend.NewBackend(ctx, *cmd)
	if err != nil {
		log.Errorf("err: %v", err)
		return nil, err
	}

	// Get the snapshot document.
	doc, err := be.Snapshot()
	if err != nil {
		log.Errorf("err: %v", err)
		return nil, err
	}

	doc, err = MaybeDecrypt(cmd, doc)
	if err != nil {
		return nil, err
	}

	// Parse the snapshot document as JSON
	var snapshotData map[string]interface{}
	if err := json.Unmarshal(doc, &snapshotData); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot JSON: %w", err)
	}

	return snapshotData, nil
}

func decryptBody(encryptedData string, derivedKey []byte) ([]byte, error) {
	// Decode base64 data
	ciphertext, err := base64.StdEncoding.DecodeString(encryptedData)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}

	// Create cipher directly with derived key
	block, err := aes.NewCipher(derivedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	// Create GCM
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	// Extract nonce and ciphertext - no salt needed since key is already derived
	nonceSize := aesGCM.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf(
			"ciphertext too short: expected at least %d bytes, got %d",
			nonceSize,
			len(ciphertext),
		)
	}

	nonce := ciphertext[:nonceSize]
	encrypted := ciphertext[nonceSize:]

	// Decrypt
	plaintext, err := aesGCM.Open(nil, nonce, encrypted, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}

	return plaintext, nil
}
