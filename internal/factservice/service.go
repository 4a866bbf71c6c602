// Package factservice wraps the one external call the app makes: fetching a
// text fact about a number from the numbers API.
package factservice

import (
	"context"
)

// DefaultEndpoint is the numbers API base URL.
const DefaultEndpoint = "http://numbersapi.com"

// Service fetches the fact text for a number in a category.
// Every failure is reported as a *FetchError.
type Service interface {
	Fetch(ctx context.Context, number, category string) (string, error)
}

// Func adapts a plain function to Service.
type Func func(ctx context.Context, number, category string) (string, error)

// Fetch calls f.
func (f Func) Fetch(ctx context.Context, number, category string) (string, error) {
	return f(ctx, number, category)
}

// FetchError is the single error kind surfaced to the state layer.
// Malformed requests, transport failures and undecodable bodies all map to it.
type FetchError struct {
	Message string
	Err     error // underlying cause, for logs only
}

func (e *FetchError) Error() string {
	return e.Message
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError builds a FetchError with no underlying cause.
func NewFetchError(message string) *FetchError {
	return &FetchError{Message: message}
}
