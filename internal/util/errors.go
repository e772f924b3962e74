package util

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrModuleNotFound       = errors.New("module not found")
	ErrItemNotInModule      = errors.New("item not part of module content")
	ErrUsernameTaken        = errors.New("username already registered")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrCertificateNotFound  = errors.New("certificate not found")
	ErrCertificateIssued    = errors.New("certificate already issued for this module")
	ErrModuleNotCompleted   = errors.New("module not sufficiently completed")
	ErrInvalidTimeSpent     = errors.New("time spent must not be negative")
	ErrInvalidQuizScore     = errors.New("quiz score must be between 0 and 100")
	ErrModuleWithoutContent = errors.New("module has no lessons or quizzes")
	ErrInvalidCredentials   = errors.New("invalid credentials")
)
