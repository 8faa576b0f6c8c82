package model

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

// ErrPasswordTooLong is returned by a PasswordHasher for input it cannot hash.
var ErrPasswordTooLong = errors.New("password is too long")

var (
	ErrTokenInvalid  = errors.New("token is invalid")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenMismatch = errors.New("refresh token mismatch")
)
