// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

// Client-facing errors. Their text is returned verbatim in response bodies.
var (
	// ErrAllFieldsRequired is returned when a signup or reset form is incomplete.
	ErrAllFieldsRequired = errors.New("All fields are required")

	// ErrPasswordMismatch is returned when password and confirmation differ.
	ErrPasswordMismatch = errors.New("Passwords do not match")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("Email already registered")

	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("User not found")

	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("Invalid credentials")

	// ErrEmailNotFound is returned by forgot-password for unknown addresses.
	ErrEmailNotFound = errors.New("Email not found")

	// ErrEmailRequired is returned when a signup OTP is requested without an address.
	ErrEmailRequired = errors.New("Email is required")

	// ErrInvalidOrExpiredOTP is returned when a reset OTP is missing, expired or wrong.
	ErrInvalidOrExpiredOTP = errors.New("Invalid or expired OTP")

	// ErrOTPNotRequested is returned when no live signup OTP exists for the address.
	ErrOTPNotRequested = errors.New("OTP expired or not requested")

	// ErrInvalidOTP is returned when a signup OTP does not match.
	ErrInvalidOTP = errors.New("Invalid OTP")
)
