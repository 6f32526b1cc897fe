// Package auth issues and verifies the bearer tokens handed out on sign-up
// and login. Tokens are HS256 JWTs whose subject is the account email.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Authority signs and verifies tokens with a server-held secret.
// It keeps no per-token state and is safe for concurrent use.
type Authority struct {
	secretKey []byte
	validity  time.Duration
	now       func() time.Time
}

// NewAuthority returns an Authority issuing tokens valid for validity.
func NewAuthority(secretKey string, validity time.Duration) (*Authority, error) {
	if secretKey == "" {
		return nil, errors.New("token secret key is empty")
	}
	if validity <= 0 {
		return nil, errors.New("token validity must be positive")
	}
	return &Authority{secretKey: []byte(secretKey), validity: validity, now: time.Now}, nil
}

// Issue signs a token for subject expiring at now+validity. Every token
// carries a fresh jti, so two tokens issued in the same second still differ.
func (a *Authority) Issue(subject string, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.validity)),
	})

	return token.SignedString(a.secretKey)
}

// Validate reports whether the token is well formed, signed with our key
// and not expired. It never says why a token was rejected.
func (a *Authority) Validate(token string) bool {
	_, err := a.parse(token)
	return err == nil
}

// SubjectOf returns the subject of a verified token. ok is false for any
// token Validate would reject.
func (a *Authority) SubjectOf(token string) (subject string, ok bool) {
	claims, err := a.parse(token)
	if err != nil {
		return "", false
	}
	return claims.Subject, true
}

func (a *Authority) parse(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}
