package shared

import "errors"

var (

	// common errors
	ErrorNotFound = errors.New("not found")
	ErrorInternal = errors.New("internal error")

	ErrorAlreadyExists = errors.New("already exists")
	ErrorValidation    = errors.New("validation error")

	// auth-specific errors
	ErrorUnauthorized = errors.New("invalid username or password")

	// upload-specific errors
	ErrorMissingPhoto = errors.New("photo is missing")
	ErrorMissingOwner = errors.New("owner id is missing")
)
