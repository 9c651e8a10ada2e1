package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a client-visible failure.
type ErrorKind int

const (
	// NullInput: a required field is missing.
	NullInput ErrorKind = iota + 1
	// InvalidInput: a present field fails a format or content rule.
	InvalidInput
	// DuplicateData: a uniqueness constraint would be violated.
	DuplicateData
	// NegativeValue: a numeric field is below zero.
	NegativeValue
	// NoRecord: a query found zero matching rows.
	NoRecord
	// IDNotFound: a lookup by identifier found no row.
	IDNotFound
	// Unauthorized: credentials are missing or wrong.
	Unauthorized
)

func (k ErrorKind) String() string {
	switch k {
	case NullInput:
		return "NullInput"
	case InvalidInput:
		return "InvalidInput"
	case DuplicateData:
		return "DuplicateData"
	case NegativeValue:
		return "NegativeValue"
	case NoRecord:
		return "NoRecord"
	case IDNotFound:
		return "IdNotFound"
	case Unauthorized:
		return "Unauthorized"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a domain failure carrying its kind and a client-facing message.
type Error struct {
	Kind    ErrorKind
	Message string
}

// NewError builds an *Error with a formatted message.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Message
}

// KindOf reports the kind of err if it is, or wraps, an *Error.
func KindOf(err error) (ErrorKind, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind, true
	}
	return 0, false
}
