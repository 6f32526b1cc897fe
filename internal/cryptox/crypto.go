// Package cryptox holds the password hashing used for stored credentials.
//
// Hashes are argon2id digests encoded together with their parameters and
// salt, so cost settings can change without invalidating older hashes:
//
//	argon2id$v=19$m=65536,t=3,p=4$<salt>$<key>
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	argon2Variant = "argon2id"
	saltLength    = 16
	keyLength     = 32
)

var ErrInvalidHash = errors.New("argon2: invalid encoded hash")

// Argon2Params are the cost parameters for new hashes.
type Argon2Params struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
}

// Argon2Hasher hashes and verifies passwords with argon2id.
type Argon2Hasher struct {
	params Argon2Params
}

func NewArgon2Hasher(p Argon2Params) (*Argon2Hasher, error) {
	if p.Memory < 8*1024 {
		return nil, fmt.Errorf("argon2: memory must be at least 8192 KiB, got %d", p.Memory)
	}
	if p.Iterations == 0 || p.Parallelism == 0 {
		return nil, errors.New("argon2: iterations and parallelism must be positive")
	}
	return &Argon2Hasher{params: p}, nil
}

// Hash derives a salted argon2id digest of plaintext.
func (h *Argon2Hasher) Hash(plaintext string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("argon2: generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(plaintext), salt, h.params.Iterations, h.params.Memory, h.params.Parallelism, keyLength)

	return strings.Join([]string{
		argon2Variant,
		fmt.Sprintf("v=%d", argon2.Version),
		fmt.Sprintf("m=%d,t=%d,p=%d", h.params.Memory, h.params.Iterations, h.params.Parallelism),
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	}, "$"), nil
}

// Verify reports whether plaintext matches encoded, using the parameters
// stored in encoded rather than the hasher's current ones.
func (h *Argon2Hasher) Verify(plaintext, encoded string) (bool, error) {
	p, salt, want, err := decode(encoded)
	if err != nil {
		return false, err
	}

	got := argon2.IDKey([]byte(plaintext), salt, p.Iterations, p.Memory, p.Parallelism, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func decode(encoded string) (Argon2Params, []byte, []byte, error) {
	var p Argon2Params

	parts := strings.Split(encoded, "$")
	if len(parts) != 5 || parts[0] != argon2Variant {
		return p, nil, nil, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[1], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, ErrInvalidHash
	}
	if _, err := fmt.Sscanf(parts[2], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &p.Parallelism); err != nil {
		return p, nil, nil, ErrInvalidHash
	}
	if p.Iterations == 0 || p.Parallelism == 0 {
		return p, nil, nil, ErrInvalidHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return p, nil, nil, ErrInvalidHash
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(key) == 0 {
		return p, nil, nil, ErrInvalidHash
	}

	return p, salt, key, nil
}
