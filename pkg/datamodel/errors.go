package datamodel

import (
	"errors"
	"fmt"
)

// Root argument errors. Every error returned by builders in this module
// matches exactly one of them under errors.Is.
var (
	ErrMissingArgument = errors.New("missing argument")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Structural argument errors.
var (
	ErrMalformedEntityID  = fmt.Errorf("%w: malformed entity ID", ErrInvalidArgument)
	ErrMissingSubject     = fmt.Errorf("%w: statement has no subject", ErrInvalidArgument)
	ErrMissingStatementID = fmt.Errorf("%w: statement has no ID", ErrInvalidArgument)
)

// Consistency argument errors.
var (
	ErrDuplicateStatementID = fmt.Errorf("%w: duplicate statement ID", ErrInvalidArgument)
	ErrSubjectMismatch      = fmt.Errorf("%w: statement subject mismatch", ErrInvalidArgument)
	ErrUnknownStatementID   = fmt.Errorf("%w: unknown statement ID", ErrInvalidArgument)
	ErrEntityKindMismatch   = fmt.Errorf("%w: entity kind mismatch", ErrInvalidArgument)
	ErrEntityIDMismatch     = fmt.Errorf("%w: entity ID mismatch", ErrInvalidArgument)
	ErrLanguageMismatch     = fmt.Errorf("%w: language code mismatch", ErrInvalidArgument)
	ErrUnknownEntityID      = fmt.Errorf("%w: unknown entity ID", ErrInvalidArgument)
)
