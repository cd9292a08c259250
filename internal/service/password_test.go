package service

import "testing"

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("senha123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "senha123" {
		t.Fatalf("hash must not equal plaintext")
	}

	if !CheckPassword(hash, "senha123") {
		t.Fatalf("expected password to match its own hash")
	}
	if CheckPassword(hash, "senha124") {
		t.Fatalf("wrong password must not match")
	}
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	h1, err := HashPassword("senha123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	h2, err := HashPassword("senha123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same password must differ by salt")
	}
}

func TestCheckPassword_GarbageHash(t *testing.T) {
	if CheckPassword("not-a-bcrypt-hash", "whatever") {
		t.Fatalf("garbage hash must not validate")
	}
}
