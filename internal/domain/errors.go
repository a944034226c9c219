package domain

import "errors"

var (
	ErrNotFound        = errors.New("resource not found")
	ErrUnauthorized    = errors.New("not authorized")
	ErrFeatureDisabled = errors.New("feature disabled")
	ErrConfiguration   = errors.New("service misconfigured")
	ErrUpstream        = errors.New("upstream service failed")
	ErrMerge           = errors.New("catalog update failed")
	ErrMissingFile     = errors.New("missing image")
	ErrInvalidInput    = errors.New("invalid input")
	ErrRateLimited     = errors.New("rate limit exceeded")
)
