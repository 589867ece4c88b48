package password

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/julinuzzo19/ecommerce-auth-service/internal/common"
)

func TestHashAndVerify_Roundtrip(t *testing.T) {
	t.Parallel()

	h := NewScrypt(1)

	encoded, err := h.Hash("pw123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	ok, err := h.Verify("pw123", encoded)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !ok {
		t.Fatalf("expected matching password to verify")
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	t.Parallel()

	h := NewScrypt(1)

	encoded, err := h.Hash("correct horse")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	ok, err := h.Verify("battery staple", encoded)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if ok {
		t.Fatalf("expected mismatching password to fail verification")
	}
}

func TestHash_DistinctSalts(t *testing.T) {
	t.Parallel()

	h := NewScrypt(2)

	a, err := h.Hash("pw123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	b, err := h.Hash("pw123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same password must differ (random salts)")
	}
}

func TestHash_EncodingShape(t *testing.T) {
	t.Parallel()

	h := NewScrypt(1)

	encoded, err := h.Hash("pw123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	saltHex, keyHex, ok := strings.Cut(encoded, ":")
	if !ok {
		t.Fatalf("expected salt:key form, got %q", encoded)
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		t.Fatalf("salt segment is not hex: %v", err)
	}
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		t.Fatalf("key segment is not hex: %v", err)
	}
	if len(salt) != 16 {
		t.Fatalf("salt length: got %d want 16", len(salt))
	}
	if len(key) != 64 {
		t.Fatalf("key length: got %d want 64", len(key))
	}
}

func TestVerify_CorruptEncodings(t *testing.T) {
	t.Parallel()

	h := NewScrypt(1)

	tests := []struct {
		name    string
		encoded string
	}{
		{"missing delimiter", "deadbeef"},
		{"non-hex salt", "zzzz:" + strings.Repeat("ab", 64)},
		{"non-hex key", strings.Repeat("ab", 16) + ":zzzz"},
		{"short salt", "abcd:" + strings.Repeat("ab", 64)},
		{"short key", strings.Repeat("ab", 16) + ":abcd"},
		{"empty", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.Verify("pw123", tc.encoded)
			if err == nil {
				t.Fatalf("expected error for corrupt encoding %q", tc.encoded)
			}
			if !errors.Is(err, common.ErrCorruptCredential) {
				t.Fatalf("expected ErrCorruptCredential, got %v", err)
			}
		})
	}
}

func TestVerify_ConcurrentDerivations(t *testing.T) {
	t.Parallel()

	h := NewScrypt(2)

	encoded, err := h.Hash("pw123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			ok, err := h.Verify("pw123", encoded)
			if err == nil && !ok {
				err = errors.New("verification unexpectedly failed")
			}
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		if err := <-done; err != nil {
			t.Fatalf("concurrent Verify error: %v", err)
		}
	}
}
