package service

import (
	"golang.org/x/crypto/bcrypt"

	apperr "github.com/mdtajulislammt/Flutter-task-backend/internal/errors"
	"github.com/mdtajulislammt/Flutter-task-backend/pkg/constant"
)

// HashPassword enforces the minimum-length policy before hashing.
func HashPassword(plaintext string) (string, error) {
	if len(plaintext) < constant.MinPasswordLength {
		return "", apperr.ErrPasswordTooShort
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
