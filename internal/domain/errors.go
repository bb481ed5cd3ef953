package domain

import "errors"

var (
	ErrForbidden          = errors.New("forbidden")
	ErrUnknownIntent      = errors.New("unknown intent")
	ErrNotSignedIn        = errors.New("not signed in")
	ErrCredentialNotFound = errors.New("stored credential not found")
)
