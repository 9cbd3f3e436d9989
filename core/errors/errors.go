package errors

import (
	stderrors "errors"
	"fmt"
)

type ErrorCode string

const (
	ErrInvalidInput               ErrorCode = "INVALID_INPUT"
	ErrInvalidRequestData         ErrorCode = "INVALID_REQUEST_DATA"
	ErrUnauthorized               ErrorCode = "UNAUTHORIZED"
	ErrTokenExpired               ErrorCode = "TOKEN_EXPIRED"
	ErrInvalidTokenFormat         ErrorCode = "INVALID_TOKEN_FORMAT"
	ErrMissingAuthorizationHeader ErrorCode = "MISSING_AUTHORIZATION_HEADER"
	ErrForbidden                  ErrorCode = "FORBIDDEN"
	ErrNotFound                   ErrorCode = "NOT_FOUND"
	ErrAlreadyExists              ErrorCode = "ALREADY_EXISTS"
	ErrInternalServer             ErrorCode = "INTERNAL_SERVER"
	ErrCreateFailed               ErrorCode = "CREATE_FAILED"
	ErrGetFailed                  ErrorCode = "GET_FAILED"
	ErrUpdateFailed               ErrorCode = "UPDATE_FAILED"
	ErrDeleteFailed               ErrorCode = "DELETE_FAILED"

	// scheduling
	ErrMalformedInterval      ErrorCode = "MALFORMED_INTERVAL"
	ErrRoomCenterMismatch     ErrorCode = "ROOM_CENTER_MISMATCH"
	ErrGroupTrainingMismatch  ErrorCode = "GROUP_TRAINING_MISMATCH"
	ErrIncompleteRecurrence   ErrorCode = "INCOMPLETE_RECURRENCE"
	ErrIncompleteException    ErrorCode = "INCOMPLETE_EXCEPTION"
	ErrScheduleConflict       ErrorCode = "SCHEDULE_CONFLICT"
	ErrAvailabilityOverlap    ErrorCode = "AVAILABILITY_OVERLAP"
	ErrInvalidHolidayInterval ErrorCode = "INVALID_HOLIDAY_INTERVAL"

	// reporting
	ErrInvalidReportScope ErrorCode = "INVALID_REPORT_SCOPE"
	ErrExportNotReady     ErrorCode = "EXPORT_NOT_READY"
)

// Violation is one attributable rule failure, addressed to a request field.
type Violation struct {
	Field   string    `json:"field,omitempty"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
	Details any       `json:"details,omitempty"`
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetails attaches a payload the client can use to point at offending fields.
func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

// IsValidation reports whether the code is a user-correctable input failure.
func (c ErrorCode) IsValidation() bool {
	switch c {
	case ErrInvalidInput, ErrInvalidRequestData, ErrMalformedInterval, ErrRoomCenterMismatch,
		ErrGroupTrainingMismatch, ErrIncompleteRecurrence, ErrIncompleteException,
		ErrInvalidHolidayInterval, ErrInvalidReportScope:
		return true
	}
	return false
}

// As extracts an *AppError from an error chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
