package guardian

import (
	"errors"

	"liyu1981.xyz/guardian-alert-service/pkg/auth"
)

var (
	ErrAuthInvalid         = auth.ErrAuthInvalid
	ErrInvalidTimestamp    = errors.New("invalid timestamp")
	ErrInvalidCheckIn      = errors.New("invalid check-in")
	ErrPersonNotFound      = errors.New("monitored person not found")
	ErrNoCaretakerAssigned = errors.New("no caretaker assigned")
	ErrNotFound            = errors.New("not found")
	ErrInvalidPlatform     = errors.New("invalid device platform")
)
