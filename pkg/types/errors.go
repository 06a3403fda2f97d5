package types

import "errors"

// Item operation errors.
var (
	ErrTitleRequired  = errors.New("title is required")
	ErrDuplicateTitle = errors.New("todo with this title already exists")
	ErrNotFound       = errors.New("item not found")
	ErrInvalidID      = errors.New("invalid item id")
)

// Login errors.
var (
	ErrCredentialsRequired = errors.New("username and password are required")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)
