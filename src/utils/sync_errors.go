package utils

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes a sync failure so callers can branch on the cause
// without parsing messages.
type ErrorKind string

const (
	AuthErrorKind    ErrorKind = "AUTH"
	RemoteErrorKind  ErrorKind = "REMOTE"
	ParseErrorKind   ErrorKind = "PARSE"
	StorageErrorKind ErrorKind = "STORAGE"
)

// SyncError is the error type crossing the sync pipeline boundary. It always
// carries one of the four kinds above.
type SyncError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *SyncError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

func NewAuthError(message string, err error) error {
	return &SyncError{Kind: AuthErrorKind, Message: message, Err: err}
}

func NewRemoteError(message string, err error) error {
	return &SyncError{Kind: RemoteErrorKind, Message: message, Err: err}
}

func NewParseError(message string, err error) error {
	return &SyncError{Kind: ParseErrorKind, Message: message, Err: err}
}

func NewStorageError(message string, err error) error {
	return &SyncError{Kind: StorageErrorKind, Message: message, Err: err}
}

// KindOf reports the ErrorKind of err, or empty when err is not a SyncError.
func KindOf(err error) ErrorKind {
	var syncErr *SyncError
	if errors.As(err, &syncErr) {
		return syncErr.Kind
	}
	return ""
}
