package models

import (
	"errors"
	"fmt"
)

// ErrValidation represents a validation error with field and message.
type ErrValidation struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e ErrValidation) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

var (
	// ErrNotFound indicates the requested file or record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateFile indicates a file with the same name is already registered.
	ErrDuplicateFile = errors.New("file already registered")

	// ErrUnsupportedFileType indicates the file extension has no classification.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrFileTooLarge indicates content exceeds the configured maximum file size.
	ErrFileTooLarge = errors.New("file exceeds maximum size")

	// ErrProviderUnavailable indicates the content provider could not be reached.
	ErrProviderUnavailable = errors.New("content provider unavailable")

	// ErrUnsupportedImageFormat indicates a logo in a format outside SupportedImageFormats.
	ErrUnsupportedImageFormat = errors.New("unsupported image format")

	// ErrUnsupportedArchiveFormat indicates an unknown export format.
	ErrUnsupportedArchiveFormat = errors.New("unsupported archive format")
)

// CodedError attaches one of the development ErrorCodes to an error.
type CodedError struct {
	Code ErrorCode
	Err  error
}

// Error implements the error interface.
func (e *CodedError) Error() string {
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

// Unwrap returns the wrapped error.
func (e *CodedError) Unwrap() error {
	return e.Err
}

// WithCode wraps err with the given code. A nil err stays nil.
func WithCode(code ErrorCode, err error) error {
	if err == nil {
		return nil
	}
	return &CodedError{Code: code, Err: err}
}

// CodeOf returns the code attached to err, or an empty code.
func CodeOf(err error) ErrorCode {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ""
}
