package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newAuthority(t *testing.T, secret string, validity time.Duration) *Authority {
	t.Helper()
	a, err := NewAuthority(secret, validity)
	if err != nil {
		t.Fatalf("NewAuthority error: %v", err)
	}
	return a
}

func TestIssueAndSubjectOf_Success(t *testing.T) {
	t.Parallel()

	a := newAuthority(t, "super-secret", time.Hour)

	tok, err := a.Issue("kevin@example.com", time.Now())
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if !a.Validate(tok) {
		t.Fatalf("fresh token must validate")
	}

	sub, ok := a.SubjectOf(tok)
	if !ok {
		t.Fatalf("SubjectOf rejected a valid token")
	}
	if sub != "kevin@example.com" {
		t.Fatalf("subject mismatch: got %q", sub)
	}
}

func TestIssue_EmbedsExpiry(t *testing.T) {
	t.Parallel()

	a := newAuthority(t, "k", 30*time.Minute)
	now := time.Now().Truncate(time.Second)

	tok, err := a.Issue("kevin@example.com", now)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		t.Fatalf("ParseUnverified error: %v", err)
	}
	if !claims.ExpiresAt.Time.Equal(now.Add(30 * time.Minute)) {
		t.Fatalf("exp = %v, want %v", claims.ExpiresAt.Time, now.Add(30*time.Minute))
	}
	if !claims.IssuedAt.Time.Equal(now) {
		t.Fatalf("iat = %v, want %v", claims.IssuedAt.Time, now)
	}
}

func TestIssue_SameInstantDiffers(t *testing.T) {
	t.Parallel()

	a := newAuthority(t, "k", time.Hour)
	now := time.Now()

	t1, err := a.Issue("kevin@example.com", now)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	t2, err := a.Issue("kevin@example.com", now)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if t1 == t2 {
		t.Fatalf("tokens issued at the same instant must differ")
	}
}

func TestValidate_Expired(t *testing.T) {
	t.Parallel()

	a := newAuthority(t, "secret", time.Minute)

	tok, err := a.Issue("u1@example.com", time.Now().Add(-2*time.Minute))
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if a.Validate(tok) {
		t.Fatalf("expired token must not validate")
	}
	if _, ok := a.SubjectOf(tok); ok {
		t.Fatalf("expired token must not yield a subject")
	}
}

func TestValidate_ClockIsInjectable(t *testing.T) {
	t.Parallel()

	a := newAuthority(t, "secret", time.Minute)
	issued := time.Now()

	tok, err := a.Issue("u1@example.com", issued)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	a.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if a.Validate(tok) {
		t.Fatalf("token must be expired once the clock passes exp")
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := newAuthority(t, "right-secret", time.Hour).Issue("u2@example.com", time.Now())
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if newAuthority(t, "wrong-secret", time.Hour).Validate(tok) {
		t.Fatalf("token signed with another key must not validate")
	}
}

func TestValidate_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	secret := "k"
	a := newAuthority(t, secret, time.Hour)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "kevin@example.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	tok, err := forged.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}
	if a.Validate(tok) {
		t.Fatalf("HS512 token must be rejected")
	}

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "kevin@example.com"})
	tok, err = noExp.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}
	if a.Validate(tok) {
		t.Fatalf("token without exp must be rejected")
	}
}

func TestValidate_MalformedStrings(t *testing.T) {
	t.Parallel()

	a := newAuthority(t, "k", time.Hour)
	for _, tok := range []string{"", "not.a.valid.token", "not.a.jwt", "Bearer x"} {
		if a.Validate(tok) {
			t.Fatalf("malformed token %q must not validate", tok)
		}
		if _, ok := a.SubjectOf(tok); ok {
			t.Fatalf("malformed token %q must not yield a subject", tok)
		}
	}
}

func TestNewAuthority_RejectsBadConfig(t *testing.T) {
	t.Parallel()

	if _, err := NewAuthority("", time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
	if _, err := NewAuthority("k", 0); err == nil {
		t.Fatalf("expected error for zero validity")
	}
}
