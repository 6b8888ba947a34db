// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// services and handlers to distinguish between different failure
// scenarios without inspecting driver errors.
package repository

import "errors"

// ErrSessionNotFound is returned when a seat session does not exist or
// has expired. Handlers translate it into an HTTP 404 response.
var ErrSessionNotFound = errors.New("seat session not found")

// ErrSessionConflict is returned when a seat session kept changing
// underneath an update and the retry budget ran out.
var ErrSessionConflict = errors.New("seat session update conflict")

// ErrFlightNotFound is returned when the requested flight is not in the
// catalog.
var ErrFlightNotFound = errors.New("flight not found")
