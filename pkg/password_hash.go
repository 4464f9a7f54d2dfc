package pkg

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHashCost is the bcrypt cost for stored user passwords.
const PasswordHashCost = 12

func HashPassword(password string) (string, error) {
	return HashPasswordWithCost(password, PasswordHashCost)
}

func HashPasswordWithCost(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return BytesToString(hash), nil
}

// CheckPasswordHash reports whether password matches a bcrypt hash of any cost.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
