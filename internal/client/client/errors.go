package client

import "errors"

var (
	ErrUnavailable   = errors.New("server unavailable")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrAlreadyExists = errors.New("account already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrRejected      = errors.New("login rejected")
)
