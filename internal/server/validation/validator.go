// Package validation checks sign-up credentials against the email and
// password patterns supplied by configuration.
package validation

import (
	"fmt"
	"regexp"
)

// CredentialValidator holds the compiled email and password patterns.
// It is safe for concurrent use.
type CredentialValidator struct {
	email    *regexp.Regexp
	password *regexp.Regexp
}

// NewCredentialValidator compiles both patterns once. A malformed pattern
// is returned as an error; the server treats it as fatal at startup.
func NewCredentialValidator(emailPattern, passwordPattern string) (*CredentialValidator, error) {
	email, err := compileFull(emailPattern)
	if err != nil {
		return nil, fmt.Errorf("email pattern: %w", err)
	}
	password, err := compileFull(passwordPattern)
	if err != nil {
		return nil, fmt.Errorf("password pattern: %w", err)
	}
	return &CredentialValidator{email: email, password: password}, nil
}

// compileFull anchors the pattern so it must match the whole candidate,
// whether or not the configured expression carries its own ^ and $.
func compileFull(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(`^(?:` + pattern + `)$`)
}

// ValidateEmail reports whether the whole candidate matches the email pattern.
func (v *CredentialValidator) ValidateEmail(candidate string) bool {
	return v.email.MatchString(candidate)
}

// ValidatePassword reports whether the whole candidate matches the password pattern.
func (v *CredentialValidator) ValidatePassword(candidate string) bool {
	return v.password.MatchString(candidate)
}
