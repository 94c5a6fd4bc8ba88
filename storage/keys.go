package storage

import (
	"errors"
	"regexp"
)

// ErrInvalidKey is returned for keys that are not safe to use as object names.
var ErrInvalidKey = errors.New("invalid storage key")

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// validateKey restricts keys to a single path segment so that no backend can be
// tricked into writing outside its prefix.
func validateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return ErrInvalidKey
	}
	return nil
}
