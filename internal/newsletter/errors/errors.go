package errors

import "errors"

var (
	ErrAlreadySubscribed = errors.New("email already subscribed")
)
