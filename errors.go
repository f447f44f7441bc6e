package main

import "github.com/pkg/errors"

var (
	// ErrMalformedRequest is returned when the request line is missing or
	// does not have exactly three fields.
	ErrMalformedRequest = errors.New("malformed request")

	// ErrResourceNotFound is returned when a static path has no backing page.
	ErrResourceNotFound = errors.New("resource not found")
)
