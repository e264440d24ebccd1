package persistence

import (
	"regexp"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateKey rejects keys that are empty or would escape a file store root.
func ValidateKey(key string) error {
	if !validKey.MatchString(key) {
		return ErrInvalidKey
	}

	return nil
}
