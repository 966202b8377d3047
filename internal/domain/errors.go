package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a provider reports a missing record; callers
	// treat it as a nil result rather than a failure
	ErrNotFound = errors.New("record not found")

	// ErrRateLimited is returned when a provider signals throttling
	ErrRateLimited = errors.New("rate limited by provider")

	// ErrRateLimitExhausted is returned after the retry budget for a
	// rate-limited call has been spent
	ErrRateLimitExhausted = errors.New("rate limit retry budget exhausted")

	// ErrMalformedRecord is returned when a provider response has an
	// unexpected shape; the record is skipped, the page continues
	ErrMalformedRecord = errors.New("malformed provider record")

	// ErrFetchFailed is returned when media bytes cannot be retrieved from
	// any gateway
	ErrFetchFailed = errors.New("media fetch failed")

	// ErrUnsupportedMediaType is returned when sniffed content is neither an
	// image, a video, nor pass-through interactive content
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)

// MissingRequiredFieldsError is returned by the transformer when a raw record
// lacks a resolvable contract address or token id. Identity is never fabricated.
type MissingRequiredFieldsError struct {
	Source string
	Fields []string
}

func (e *MissingRequiredFieldsError) Error() string {
	return fmt.Sprintf("record from %s missing required fields: %v", e.Source, e.Fields)
}

// IsMissingRequiredFields reports whether err is a MissingRequiredFieldsError
func IsMissingRequiredFields(err error) bool {
	var target *MissingRequiredFieldsError
	return errors.As(err, &target)
}
