package pkg

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHashCost is the bcrypt cost used for lifter passwords.
const PasswordHashCost = 14

var ErrEmptyPassword = errors.New("empty password")

func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordHashCost)
	if err != nil {
		return "", err
	}
	return BytesToString(hash), nil
}

func CheckPasswordHash(password, hash string) bool {
	if password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
