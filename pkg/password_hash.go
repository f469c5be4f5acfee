package pkg

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// AdminSecretCost is the bcrypt cost used for stored secret hashes.
const AdminSecretCost = 12

var ErrEmptyPassword = errors.New("empty password")

func HashPassword(password string) (string, error) {
	return HashPasswordWithCost(password, AdminSecretCost)
}

func HashPasswordWithCost(password string, cost int) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return BytesToString(bytes), err
}

// CheckPasswordHash never matches an empty password or hash, so an unset
// secret keeps the guarded endpoint closed.
func CheckPasswordHash(password, hash string) bool {
	if password == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
