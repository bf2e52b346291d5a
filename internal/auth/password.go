package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinAPIKeyLength is the minimum accepted API key length.
const MinAPIKeyLength = 16

var (
	ErrInvalidAPIKey  = errors.New("invalid API key")
	ErrAPIKeyTooShort = errors.New("API key must be at least 16 characters")
	ErrAPIKeyTooLong  = errors.New("API key exceeds maximum length of 72 bytes")
)

// HashAPIKey creates a bcrypt hash of key.
func HashAPIKey(key string, cost int) (string, error) {
	if len(key) < MinAPIKeyLength {
		return "", ErrAPIKeyTooShort
	}
	// bcrypt has a 72-byte limit
	if len(key) > 72 {
		return "", ErrAPIKeyTooLong
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(key), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckAPIKey compares key with its hash.
func CheckAPIKey(key, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidAPIKey
		}
		return err
	}
	return nil
}
