// Package fetcher retrieves raw page markup for lineup and metadata pages.
package fetcher

import (
	"context"

	"github.com/rotisserie/eris"
)

// ErrFetchFailed matches every transport-level failure returned by a Fetcher.
var ErrFetchFailed = eris.New("fetch failed")

// Fetcher retrieves the markup at a URL.
type Fetcher interface {
	// Fetch returns the response body. Any transport error or non-success
	// status is reported as a *FetchError.
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetchError records the URL that could not be retrieved.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return "fetch " + e.URL + ": " + e.Err.Error()
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrFetchFailed) true for any FetchError.
func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }

// Func adapts a function to the Fetcher interface.
type Func func(ctx context.Context, url string) ([]byte, error)

// Fetch calls f.
func (f Func) Fetch(ctx context.Context, url string) ([]byte, error) { return f(ctx, url) }
