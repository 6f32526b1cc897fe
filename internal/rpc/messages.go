package rpc

import "time"

type Phone struct {
	Number      int64  `json:"number"`
	CityCode    int    `json:"city_code"`
	CountryCode string `json:"country_code"`
}

type SignUpRequest struct {
	Name     string  `json:"name,omitempty"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phones   []Phone `json:"phones,omitempty"`
}

// LoginRequest is empty: the bearer token travels in the "authorization"
// metadata entry.
type LoginRequest struct{}

// AccountReply is the account state after a successful sign-up or login.
// PasswordHash is the stored digest, never the plaintext.
type AccountReply struct {
	ID           string    `json:"id"`
	Name         string    `json:"name,omitempty"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Token        string    `json:"token"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	LastLoginAt  time.Time `json:"last_login_at"`
	Phones       []Phone   `json:"phones,omitempty"`
}
