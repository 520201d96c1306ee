package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// HashSecret hashes a demo-account secret with bcrypt.
func HashSecret(secret string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckSecretHash verifies a demo-account secret against its hash.
func CheckSecretHash(secret, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
	return err == nil
}
