// Package errors provides custom error types for the complaints dashboard.
//
// This package defines domain-specific errors that help with error handling
// throughout the application. Each error type carries the context needed to
// turn it into a useful HTTP response.
package errors

import (
	"fmt"
	"strings"
)

// SheetNotFoundError indicates the uploaded workbook has no sheet with the
// expected name.
//
// Recovery strategy: reject the upload and tell the user which sheets the
// workbook actually contains.
type SheetNotFoundError struct {
	Sheet     string
	Available []string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet %q not found in workbook (sheets: %s)",
		e.Sheet, strings.Join(e.Available, ", "))
}

// NewSheetNotFoundError creates a new sheet not found error with context
func NewSheetNotFoundError(sheet string, available []string) *SheetNotFoundError {
	return &SheetNotFoundError{Sheet: sheet, Available: available}
}

// MissingColumnError indicates the header row of the expected sheet lacks a
// required source column.
//
// Recovery strategy: reject the upload with the missing column name.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q not found in header row", e.Column)
}

// NewMissingColumnError creates a new missing column error
func NewMissingColumnError(column string) *MissingColumnError {
	return &MissingColumnError{Column: column}
}

// SessionNotFoundError indicates a request referenced an upload session that
// does not exist or has already expired.
//
// Recovery strategy: ask the user to upload the workbook again.
type SessionNotFoundError struct {
	ID string
}

func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("session %q not found or expired", e.ID)
}

// NewSessionNotFoundError creates a new session not found error
func NewSessionNotFoundError(id string) *SessionNotFoundError {
	return &SessionNotFoundError{ID: id}
}

// UploadError wraps failures while reading an uploaded workbook that are not
// covered by a more specific error type (corrupt file, oversized body).
type UploadError struct {
	Message string
	Err     error
}

func (e *UploadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upload error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("upload error: %s", e.Message)
}

// Unwrap returns the wrapped error for error chain inspection
func (e *UploadError) Unwrap() error {
	return e.Err
}

// NewUploadError creates a new upload error with context
func NewUploadError(msg string, err error) *UploadError {
	return &UploadError{Message: msg, Err: err}
}

// InvalidFilterError indicates a malformed filter parameter (bad date, etc.)
// on a report, export or chart request.
type InvalidFilterError struct {
	Message string
	Err     error
}

func (e *InvalidFilterError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid filter: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("invalid filter: %s", e.Message)
}

// Unwrap returns the wrapped error for error chain inspection
func (e *InvalidFilterError) Unwrap() error {
	return e.Err
}

// NewInvalidFilterError creates a new invalid filter error with context
func NewInvalidFilterError(msg string, err error) *InvalidFilterError {
	return &InvalidFilterError{Message: msg, Err: err}
}

// IsInvalidFilter checks if the error is an invalid filter error
func IsInvalidFilter(err error) bool {
	_, ok := err.(*InvalidFilterError)
	return ok
}

// IsSheetNotFound checks if the error is a sheet not found error
func IsSheetNotFound(err error) bool {
	_, ok := err.(*SheetNotFoundError)
	return ok
}

// IsMissingColumn checks if the error is a missing column error
func IsMissingColumn(err error) bool {
	_, ok := err.(*MissingColumnError)
	return ok
}

// IsSessionNotFound checks if the error is a session not found error
func IsSessionNotFound(err error) bool {
	_, ok := err.(*SessionNotFoundError)
	return ok
}
