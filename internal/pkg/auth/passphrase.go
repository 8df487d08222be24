package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// PassphraseCost is the bcrypt cost used when hashing new passphrases
const PassphraseCost = 12

// HashPassphrase hashes a shared secret for storage in configuration
func HashPassphrase(passphrase string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(passphrase), PassphraseCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassphrase reports whether passphrase matches the stored bcrypt hash.
// An empty hash never matches.
func CheckPassphrase(hashed, passphrase string) bool {
	if hashed == "" || passphrase == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(passphrase)) == nil
}
