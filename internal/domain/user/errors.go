package user

import "errors"

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailExists        = errors.New("user email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactive           = errors.New("user account is inactive")
)
