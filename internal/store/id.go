package store

import (
	"errors"

	"github.com/oklog/ulid/v2"
)

// ErrMalformedID is returned by ParseID for strings that are not store identifiers.
var ErrMalformedID = errors.New("malformed store identifier")

// NewID generates a store identifier. Identifiers sort by creation time.
func NewID() string {
	return ulid.Make().String()
}

// ParseID validates s as a store identifier and returns its canonical form.
func ParseID(s string) (string, error) {
	id, err := ulid.ParseStrict(s)
	if err != nil {
		return "", ErrMalformedID
	}
	return id.String(), nil
}

