package security

import (
	"strings"
	"testing"
)

func TestBcrypt_HashCompare_RoundTrip(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(4) // low cost keeps the test fast

	hash, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "secret1" || strings.Contains(hash, "secret1") {
		t.Fatalf("hash must not contain the plaintext: %q", hash)
	}

	if err := h.Compare(hash, "secret1"); err != nil {
		t.Fatalf("expected match, got %v", err)
	}
	if err := h.Compare(hash, "wrong"); err == nil {
		t.Fatalf("expected mismatch")
	}
}

func TestBcrypt_SamePassword_DifferentHashes(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(4)

	h1, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	h2, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected salted hashes to differ")
	}
}

func TestBcrypt_ZeroCost_UsesDefault(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(0)
	if h.cost <= 0 {
		t.Fatalf("expected positive default cost, got %d", h.cost)
	}
}
