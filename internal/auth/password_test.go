package auth

import "testing"

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	// MinCost keeps the test fast; production uses cost 12.
	h := NewPasswordHasher(4)

	hash, err := h.Hash("pw123456")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "pw123456" {
		t.Fatalf("hash must not equal the plaintext")
	}
	if !h.Verify("pw123456", hash) {
		t.Fatalf("Verify rejected the correct password")
	}
	if h.Verify("pw1234567", hash) {
		t.Fatalf("Verify accepted a wrong password")
	}
}

func TestPasswordHasher_SaltedHashesDiffer(t *testing.T) {
	h := NewPasswordHasher(4)

	first, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	second, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if first == second {
		t.Fatalf("expected embedded salt to produce different hashes")
	}
	if !h.Verify("same-password", first) || !h.Verify("same-password", second) {
		t.Fatalf("both hashes must verify against the original password")
	}
}

func TestPasswordHasher_InvalidCostFallsBack(t *testing.T) {
	h := NewPasswordHasher(-1)
	if h.cost != defaultBcryptCost {
		t.Fatalf("expected default cost %d, got %d", defaultBcryptCost, h.cost)
	}
}
