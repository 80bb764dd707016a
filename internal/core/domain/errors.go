package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAuthInProgress     = errors.New("authentication already in progress")
	ErrAuthTimeout        = errors.New("authentication timed out")
	ErrInvalidIdentity    = errors.New("invalid identity")
	ErrForbidden          = errors.New("access forbidden")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrProjectNotFound    = errors.New("project not found")
	ErrInvalidTransition  = errors.New("invalid guard transition")
)
