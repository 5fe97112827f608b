package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a class of failure. Codes are stable and are what
// tests and the CLI match on, never the message text.
type ErrorCode string

const (
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCancelled    ErrorCode = "CANCELLED"

	// Configuration
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	ErrPatternInvalid ErrorCode = "PATTERN_INVALID"

	// Copying
	ErrSourceUnreadable      ErrorCode = "SOURCE_UNREADABLE"
	ErrDestinationUnwritable ErrorCode = "DESTINATION_UNWRITABLE"

	// ErrPatternMatchedNothing is informational. It is logged and reported as
	// a warning, never returned as a run failure.
	ErrPatternMatchedNothing ErrorCode = "PATTERN_MATCHED_NOTHING"
)

// Detail keys attached to copy errors
const (
	DetailTask        = "task"
	DetailSource      = "source_pattern"
	DetailDestination = "destination"
	DetailFile        = "file"
	DetailConfigPath  = "config_path"
	DetailTaskIndex   = "task_index"
)

// CopyError is a coded error carrying the task and file it concerns
type CopyError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

func (e *CopyError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *CopyError) Unwrap() error {
	return e.Wrapped
}

// Is matches any CopyError with the same code, so errors.Is(err,
// New(ErrCancelled, "")) works as a code test.
func (e *CopyError) Is(target error) bool {
	var t *CopyError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// New creates a CopyError
func New(code ErrorCode, message string) *CopyError {
	return &CopyError{Code: code, Message: message, Details: make(map[string]interface{})}
}

// Newf creates a CopyError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *CopyError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps err under code. A nil err gives nil.
func Wrap(err error, code ErrorCode, message string) *CopyError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps err under code with a formatted message. A nil err gives nil.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *CopyError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail sets one detail and returns e
func (e *CopyError) WithDetail(key string, value interface{}) *CopyError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails merges details into e and returns it
func (e *CopyError) WithDetails(details map[string]interface{}) *CopyError {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

// WithTask records the task a failure belongs to. Details already set,
// such as the failing file, are kept.
func (e *CopyError) WithTask(name, source, destination string) *CopyError {
	return e.WithDetails(map[string]interface{}{
		DetailTask:        name,
		DetailSource:      source,
		DetailDestination: destination,
	})
}

// walk visits every CopyError in err's tree depth first, outermost first,
// descending into joined errors. It stops when fn returns false.
func walk(err error, fn func(*CopyError) bool) bool {
	for err != nil {
		if ce, ok := err.(*CopyError); ok && !fn(ce) {
			return false
		}
		switch u := err.(type) {
		case interface{ Unwrap() []error }:
			for _, e := range u.Unwrap() {
				if !walk(e, fn) {
					return false
				}
			}
			return true
		case interface{ Unwrap() error }:
			err = u.Unwrap()
		default:
			return true
		}
	}
	return true
}

// IsErrorCode reports whether any CopyError in err's chain, including
// every branch of a joined error, has code.
func IsErrorCode(err error, code ErrorCode) bool {
	found := false
	walk(err, func(ce *CopyError) bool {
		found = ce.Code == code
		return !found
	})
	return found
}

// Codes returns the codes found in err's chain, outermost first
func Codes(err error) []ErrorCode {
	var codes []ErrorCode
	walk(err, func(ce *CopyError) bool {
		codes = append(codes, ce.Code)
		return true
	})
	return codes
}

// GetErrorCode returns the code of the outermost CopyError, or ErrUnknown
func GetErrorCode(err error) ErrorCode {
	var ce *CopyError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details of the outermost CopyError, or nil
func GetErrorDetails(err error) map[string]interface{} {
	var ce *CopyError
	if errors.As(err, &ce) {
		return ce.Details
	}
	return nil
}
