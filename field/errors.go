package field

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound                = errors.New("not found")
	ErrInvalidDataType         = errors.New("invalid data type")
	ErrMissingContentType      = errors.New("missing content type")
	ErrDuplicateSingletonField = errors.New("duplicate singleton field")
	ErrOverLimit               = errors.New("over field limit")
	ErrStorageFailure          = errors.New("storage failure")
	ErrMissingColumn           = errors.New("missing mandatory column")
)

func enrichError(err error, msg string, args ...any) error {
	s := msg
	if len(args) > 0 {
		s = fmt.Sprintf(msg, args...)
	}
	return fmt.Errorf("%w: %s", err, s)
}

func NotFound(msg string, args ...any) error {
	return enrichError(ErrNotFound, msg, args...)
}

func InvalidDataType(msg string, args ...any) error {
	return enrichError(ErrInvalidDataType, msg, args...)
}

func MissingContentType(msg string, args ...any) error {
	return enrichError(ErrMissingContentType, msg, args...)
}

func DuplicateSingletonField(msg string, args ...any) error {
	return enrichError(ErrDuplicateSingletonField, msg, args...)
}

func OverLimit(msg string, args ...any) error {
	return enrichError(ErrOverLimit, msg, args...)
}

func MissingColumn(column string) error {
	return enrichError(ErrMissingColumn, "«%s»", column)
}

// StorageFailure keeps both ErrStorageFailure and cause reachable via errors.Is.
// A nil cause yields nil; an error already marked as a storage failure is
// returned unchanged.
func StorageFailure(cause error, op string) error {
	if cause == nil {
		return nil
	}
	if errors.Is(cause, ErrStorageFailure) {
		return cause
	}
	return fmt.Errorf("%w: %s: %w", ErrStorageFailure, op, cause)
}
