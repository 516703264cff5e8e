package utils

import "golang.org/x/crypto/bcrypt"

// passwordCost is the bcrypt work factor for staff account passwords.
const passwordCost = bcrypt.DefaultCost

// HashPassword derives a bcrypt hash for storage on a staff account.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), passwordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether plaintext matches the stored hash.
func CheckPasswordHash(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
