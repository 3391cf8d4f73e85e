package services

import (
	"errors"
	"fmt"
)

// Failure kinds. Controllers map them to HTTP statuses with errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrConfiguration = errors.New("configuration failure")
)

var (
	ErrOwnerNotFound        = fmt.Errorf("owner %w", ErrNotFound)
	ErrPropertyNotFound     = fmt.Errorf("property %w", ErrNotFound)
	ErrDuplicateCode        = fmt.Errorf("%w: codeInternal already exists", ErrConflict)
	ErrOwnerHasProperties   = fmt.Errorf("%w: owner has related properties", ErrConflict)
	ErrCoverImageConflict   = fmt.Errorf("%w: concurrent cover image update", ErrConflict)
	ErrMissingSigningSecret = fmt.Errorf("%w: signing secret is not set", ErrConfiguration)
)
