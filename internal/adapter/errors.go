package adapter

import "errors"

var (
	ErrUnknownMailProvider = errors.New("unknown mail provider")
	ErrEmptyRecipient      = errors.New("mail recipient is empty")

	ErrBadRequest          = errors.New("mail api rejected the request")
	ErrUnauthorized        = errors.New("mail api unauthorized")
	ErrRateLimited         = errors.New("mail api rate limit exceeded")
	ErrInternalServerError = errors.New("mail api internal error")
)
