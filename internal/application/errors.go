package application

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrLocked             = errors.New("content is locked")
	ErrWalletRequired     = errors.New("wallet address required")
	ErrModuleIncomplete   = errors.New("module not completed")
	ErrNoMentor           = errors.New("no mentor assigned")
	ErrStorageDisabled    = errors.New("file storage not configured")
)
