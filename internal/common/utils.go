package common

import "strings"

// WipeByteArray overwrites b with zeros. Used to drop plaintext passwords
// from memory once they have been sent. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// StripBearer returns the token carried by an authorization value of the
// form "Bearer <token>". The scheme is matched case-insensitively. ok is
// false when the scheme is missing.
func StripBearer(value string) (token string, ok bool) {
	if len(value) < len(BearerPrefix) || !strings.EqualFold(value[:len(BearerPrefix)], BearerPrefix) {
		return "", false
	}
	return strings.TrimSpace(value[len(BearerPrefix):]), true
}
