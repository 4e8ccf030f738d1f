package secrets_test

import (
	"testing"

	"github.com/fernet/fernet-go"

	"github.com/loopital/ledger-backend/internal/secrets"
)

// TestTokenRoundTrip verifies encrypt/decrypt with a generated key.
func TestTokenRoundTrip(t *testing.T) {
	var key fernet.Key
	if err := key.Generate(); err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	encoded := key.Encode()

	encrypted, err := secrets.EncryptToken("loopital-api-token", encoded)
	if err != nil {
		t.Fatalf("EncryptToken returned unexpected error: %v", err)
	}

	decrypted, err := secrets.DecryptToken(encrypted, encoded)
	if err != nil {
		t.Fatalf("DecryptToken returned unexpected error: %v", err)
	}
	if decrypted != "loopital-api-token" {
		t.Errorf("Expected original token back, got %q", decrypted)
	}
}

func TestDecryptToken_Errors(t *testing.T) {
	t.Run("rejects invalid key", func(t *testing.T) {
		if _, err := secrets.DecryptToken("whatever", "not-a-key"); err == nil {
			t.Error("Expected error for invalid key")
		}
	})

	t.Run("rejects token signed with a different key", func(t *testing.T) {
		var k1, k2 fernet.Key
		if err := k1.Generate(); err != nil {
			t.Fatalf("Failed to generate key: %v", err)
		}
		if err := k2.Generate(); err != nil {
			t.Fatalf("Failed to generate key: %v", err)
		}

		encrypted, err := secrets.EncryptToken("secret", k1.Encode())
		if err != nil {
			t.Fatalf("EncryptToken returned unexpected error: %v", err)
		}

		if _, err := secrets.DecryptToken(encrypted, k2.Encode()); err == nil {
			t.Error("Expected verification failure with wrong key")
		}
	})
}
