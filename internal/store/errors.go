package store

import "errors"

var (
	ErrSparkNotFound       = errors.New("spark not found")
	ErrAnonymousNotAllowed = errors.New("anonymous posting not permitted for this spark")
)
