package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cheap parameters keep the suite fast
var testParams = Argon2Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1}

func newHasher(t *testing.T) *Argon2Hasher {
	t.Helper()
	h, err := NewArgon2Hasher(testParams)
	require.NoError(t, err)
	return h
}

func TestHashAndVerify(t *testing.T) {
	h := newHasher(t)

	digest, err := h.Hash("Abcdef12")
	require.NoError(t, err)

	assert.NotEmpty(t, digest)
	assert.NotEqual(t, "Abcdef12", digest)
	assert.NotContains(t, digest, "Abcdef12")
	assert.True(t, strings.HasPrefix(digest, "argon2id$v=19$m=8192,t=1,p=1$"), digest)

	ok, err := h.Verify("Abcdef12", digest)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("Abcdef13", digest)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHash_SaltedPerCall(t *testing.T) {
	h := newHasher(t)

	a, err := h.Hash("Abcdef12")
	require.NoError(t, err)
	b, err := h.Hash("Abcdef12")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "same password must hash differently")
}

func TestVerify_UsesEncodedParameters(t *testing.T) {
	old := newHasher(t)
	digest, err := old.Hash("Abcdef12")
	require.NoError(t, err)

	stronger, err := NewArgon2Hasher(Argon2Params{Memory: 16 * 1024, Iterations: 2, Parallelism: 2})
	require.NoError(t, err)

	ok, err := stronger.Verify("Abcdef12", digest)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_InvalidEncodings(t *testing.T) {
	h := newHasher(t)

	for _, encoded := range []string{
		"",
		"plaintext",
		"bcrypt$v=19$m=8192,t=1,p=1$c2FsdA$a2V5",
		"argon2id$v=18$m=8192,t=1,p=1$c2FsdA$a2V5",
		"argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5",
		"argon2id$v=19$m=8192,t=0,p=1$c2FsdA$a2V5",
		"argon2id$v=19$m=8192,t=1,p=1$!!!$a2V5",
		"argon2id$v=19$m=8192,t=1,p=1$c2FsdA$",
	} {
		ok, err := h.Verify("Abcdef12", encoded)
		assert.ErrorIs(t, err, ErrInvalidHash, "encoded %q", encoded)
		assert.False(t, ok)
	}
}

func TestNewArgon2Hasher_RejectsWeakParams(t *testing.T) {
	_, err := NewArgon2Hasher(Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1})
	assert.Error(t, err)

	_, err = NewArgon2Hasher(Argon2Params{Memory: 8192, Iterations: 0, Parallelism: 1})
	assert.Error(t, err)
}
