package domain

import "errors"

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrTaskFieldsRequired = errors.New("title and description are required")
	ErrInvalidTaskStatus  = errors.New("invalid task status")

	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user with this email already exists")
	ErrInvalidUserPayload = errors.New("invalid user payload")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
)
