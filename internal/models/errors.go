package models

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrConfiguration = errors.New("configuration missing")
	ErrIO            = errors.New("ledger io failure")
	ErrUnauthorized  = errors.New("invalid credentials")
	ErrInvalid       = errors.New("invalid input")
)
