package models

import "time"

// Phone is pass-through contact data stored alongside an account.
type Phone struct {
	Number      int64
	CityCode    int
	CountryCode string
}

// Account is the persisted identity record. Email is the natural key and
// Token holds the most recently issued bearer token.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Token        string
	IsActive     bool
	CreatedAt    time.Time
	LastLoginAt  time.Time
	Phones       []Phone
}

// Clone returns a deep copy so stores and callers never share the phones slice.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	c := *a
	if a.Phones != nil {
		c.Phones = append([]Phone(nil), a.Phones...)
	}
	return &c
}
