// Package secrets handles encryption of the upstream API credential at rest.
package secrets

import (
	"fmt"

	"github.com/fernet/fernet-go"
)

// EncryptToken encrypts a plaintext token with the given base64 fernet key.
// Used by deployment tooling to produce the value stored in the environment.
func EncryptToken(token, key string) (string, error) {
	k, err := fernet.DecodeKey(key)
	if err != nil {
		return "", fmt.Errorf("invalid fernet key: %w", err)
	}
	encrypted, err := fernet.EncryptAndSign([]byte(token), k)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt token: %w", err)
	}
	return string(encrypted), nil
}

// DecryptToken decrypts a fernet-encrypted token with the given base64 key.
// Tokens do not expire; rotation happens by re-encrypting with a new key.
func DecryptToken(encrypted, key string) (string, error) {
	k, err := fernet.DecodeKey(key)
	if err != nil {
		return "", fmt.Errorf("invalid fernet key: %w", err)
	}
	token := fernet.VerifyAndDecrypt([]byte(encrypted), 0, []*fernet.Key{k})
	if token == nil {
		return "", fmt.Errorf("failed to decrypt token: verification failed")
	}
	return string(token), nil
}
