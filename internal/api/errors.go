package api

import "fmt"

// UnknownError is the message used when an error answer carries no
// readable {"error": "..."} field.
const UnknownError = "Unknown error"

// AppError is a request the backend understood and refused.
type AppError struct {
	Status  int
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("backend refused request (status %d): %s", e.Status, e.Message)
}

// TransportError is a request that never produced a usable answer: the
// backend was unreachable or its body could not be read or decoded.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
