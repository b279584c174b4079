// Package id validates and mints record store identifiers.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// RecordPrefix begins every record id issued by the store.
	RecordPrefix = "rec"

	// DefaultLength is the length of the random part of a generated record id.
	DefaultLength = 14
)

// Generate creates a random Base62 string of the given length.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// NewRecordID mints an id in the store's format. Only in-process fakes need it;
// real ids are always assigned by the store.
func NewRecordID() string {
	suffix, err := Generate(DefaultLength)
	if err != nil {
		panic(err)
	}
	return RecordPrefix + suffix
}

// IsRecordID reports whether s looks like a store-assigned record id:
// the "rec" prefix followed by at least one Base62 character.
func IsRecordID(s string) bool {
	if !strings.HasPrefix(s, RecordPrefix) || len(s) == len(RecordPrefix) {
		return false
	}
	for _, c := range s[len(RecordPrefix):] {
		if !strings.ContainsRune(alphabet, c) {
			return false
		}
	}
	return true
}

// ValidateRecordID returns an error describing why s is not a record id.
func ValidateRecordID(s string) error {
	if s == "" {
		return fmt.Errorf("record id is empty")
	}
	if !IsRecordID(s) {
		return fmt.Errorf("invalid record id %q: expected %sxxxxx", s, RecordPrefix)
	}
	return nil
}
