package daylog

import (
	"errors"
	"fmt"
	"regexp"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// idAlphabet is the character set used for generating item IDs
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	// idLength is the length of generated item IDs
	idLength = 8
)

var (
	idPattern = regexp.MustCompile(`^[a-z0-9]{8}$`)

	// ErrInvalidID indicates that an item ID doesn't match the required format
	ErrInvalidID = errors.New("invalid item ID: must be 8 lowercase alphanumeric characters")
)

// NewID generates a new 8-character lowercase alphanumeric item ID.
// Panics if ID generation fails, as this is a critical system failure.
func NewID() string {
	id, err := gonanoid.Generate(idAlphabet, idLength)
	if err != nil {
		panic(fmt.Sprintf("critical: failed to generate item ID: %v", err))
	}
	return id
}

// NewItemID generates IDs until taken reports one as free.
func NewItemID(taken func(string) bool) string {
	for {
		id := NewID()
		if taken == nil || !taken(id) {
			return id
		}
	}
}

// ValidateID checks whether the given string is a valid item ID.
func ValidateID(id string) error {
	if !idPattern.MatchString(id) {
		return ErrInvalidID
	}
	return nil
}
