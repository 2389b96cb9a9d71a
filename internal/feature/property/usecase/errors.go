// Package usecase implements the business logic for the property feature.
package usecase

import "errors"

var (
	// ErrMissingRequiredFields is returned when a submission lacks a title, a resolvable price or a location.
	ErrMissingRequiredFields = errors.New("Missing required fields: Title, Price, and Location are mandatory.")

	// ErrPriceTooLarge is returned when a submitted amount does not fit the stored range.
	ErrPriceTooLarge = errors.New("Price is too large.")

	// ErrMissingDescribeFields is returned when a draft is requested without a title and location.
	ErrMissingDescribeFields = errors.New("Title and Location are required to draft a description.")

	// ErrPropertyNotFound is returned when a listing does not exist or is owned by another user.
	ErrPropertyNotFound = errors.New("property not found")

	// ErrTooManyImages is returned when a request carries more images than MaxImages.
	ErrTooManyImages = errors.New("too many images")

	// ErrImageRejected is returned when image screening flags an upload.
	ErrImageRejected = errors.New("image rejected by content screening")

	// ErrDescriberUnavailable is returned when no description generator is configured.
	ErrDescriberUnavailable = errors.New("description drafts are not configured")
)
