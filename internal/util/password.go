package util

import (
	zxcvbn "github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordScore is the lowest zxcvbn score (0-4) accepted at
// registration and password rotation.
const MinPasswordScore = 3

// HashPassword produces a bcrypt digest. cost <= 0 falls back to 12.
func HashPassword(plain string, cost int) (string, error) {
	if cost <= 0 {
		cost = 12
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored digest.
// A mismatch is a boolean, never an error.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// PasswordScore rates a candidate password on the zxcvbn 0-4 scale.
// No personal-data context is passed, so passwords containing the user's
// own name or email are not penalized.
func PasswordScore(plain string) int {
	return zxcvbn.PasswordStrength(plain, nil).Score
}

// StrongPassword reports whether the candidate clears MinPasswordScore.
func StrongPassword(plain string) bool {
	return PasswordScore(plain) >= MinPasswordScore
}
