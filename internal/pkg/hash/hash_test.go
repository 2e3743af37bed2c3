package hash

import "testing"

func TestSHA256Hasher_Deterministic(t *testing.T) {
	h := NewSHA256Hasher()

	a, err := h.Hash("password1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := h.Hash("password1")

	if a != b {
		t.Errorf("same password must hash identically: %q vs %q", a, b)
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars for a 256-bit digest, got %d", len(a))
	}
	if !h.Compare(a, "password1") {
		t.Error("Compare must accept the original password")
	}
	if h.Compare(a, "password2") {
		t.Error("Compare must reject a different password")
	}
}

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(4) // min cost: keep the test fast

	hashed, err := h.Hash("password1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hashed == "password1" {
		t.Fatal("hash must not be the plaintext")
	}
	if !h.Compare(hashed, "password1") {
		t.Error("Compare must accept the original password")
	}
	if h.Compare(hashed, "wrong-password") {
		t.Error("Compare must reject a wrong password")
	}
}
