package http

import (
	"time"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// PhoneDTO keeps the field names existing clients already send.
type PhoneDTO struct {
	Number      int64  `json:"number"`
	CityCode    int    `json:"citycode"`
	CountryCode string `json:"contrycode"`
}

type SignUpRequest struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Phones   []PhoneDTO `json:"phones"`
}

// AccountResponse is returned by both sign-up and login. Password carries
// the stored hash.
type AccountResponse struct {
	ID        string     `json:"id"`
	Created   time.Time  `json:"created"`
	LastLogin time.Time  `json:"lastLogin"`
	Token     string     `json:"token"`
	IsActive  bool       `json:"isActive"`
	Name      string     `json:"name,omitempty"`
	Email     string     `json:"email"`
	Password  string     `json:"password"`
	Phones    []PhoneDTO `json:"phones"`
}

type ErrorDetail struct {
	Timestamp time.Time `json:"timestamp"`
	Code      int       `json:"codigo"`
	Detail    string    `json:"detail"`
}

type ErrorResponse struct {
	Error []ErrorDetail `json:"error"`
}

func toPhones(in []PhoneDTO) []models.Phone {
	if len(in) == 0 {
		return nil
	}
	out := make([]models.Phone, len(in))
	for i, p := range in {
		out[i] = models.Phone{Number: p.Number, CityCode: p.CityCode, CountryCode: p.CountryCode}
	}
	return out
}

func toAccountResponse(a *models.Account) AccountResponse {
	phones := make([]PhoneDTO, len(a.Phones))
	for i, p := range a.Phones {
		phones[i] = PhoneDTO{Number: p.Number, CityCode: p.CityCode, CountryCode: p.CountryCode}
	}
	return AccountResponse{
		ID:        a.ID,
		Created:   a.CreatedAt,
		LastLogin: a.LastLoginAt,
		Token:     a.Token,
		IsActive:  a.IsActive,
		Name:      a.Name,
		Email:     a.Email,
		Password:  a.PasswordHash,
		Phones:    phones,
	}
}
