package service

import "golang.org/x/crypto/bcrypt"

// bcryptCost mirrors the salt rounds the legacy hasher used.
const bcryptCost = 8

// HashPassword derives a storable hash from a plaintext password. The core
// never sees the plaintext again after this call site.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether the password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
