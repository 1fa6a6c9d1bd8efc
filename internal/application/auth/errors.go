package auth

import "errors"

var (
	ErrMissingFields         = errors.New("Please add all required fields (name, email, password, role)")
	ErrAdminRegistration     = errors.New("Admin registration is not allowed")
	ErrInvalidRole           = errors.New("Invalid role value")
	ErrInvalidEmailFormat    = errors.New("Invalid email format")
	ErrPasswordTooShort      = errors.New("Password must be at least 6 characters")
	ErrEmailTaken            = errors.New("User already exists")
	ErrEmailPasswordRequired = errors.New("Please provide email and password")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// responses do not reveal whether an account exists.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrUserNotFound       = errors.New("User not found")
	ErrInvalidToken       = errors.New("Not authorized, token failed")
)
