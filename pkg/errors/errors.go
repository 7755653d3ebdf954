package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// FieldError names one offending input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error represents a typed console error with HTTP awareness.
type Error struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Status  int          `json:"status"`
	Fields  []FieldError `json:"fields,omitempty"`
	Err     error        `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Message
	if len(e.Fields) > 0 {
		names := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			names = append(names, f.Field)
		}
		msg = fmt.Sprintf("%s [%s]", msg, strings.Join(names, ", "))
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors by code so sentinel values work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || t == nil || e == nil {
		return false
	}
	return e.Code == t.Code
}

// FieldNames lists the offending fields in order.
func (e *Error) FieldNames() []string {
	if e == nil {
		return nil
	}
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return names
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors.
var (
	ErrNotFound               = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrTransport              = New("TRANSPORT_ERROR", http.StatusBadGateway, "backend request failed")
	ErrValidation             = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrServerValidation       = New("SERVER_VALIDATION_ERROR", http.StatusUnprocessableEntity, "backend rejected the payload")
	ErrPageOutOfRange         = New("PAGE_OUT_OF_RANGE", http.StatusBadRequest, "page index out of range")
	ErrUnknownFilter          = New("UNKNOWN_FILTER", http.StatusBadRequest, "unknown filter field")
	ErrInvalidFilterValue     = New("INVALID_FILTER_VALUE", http.StatusBadRequest, "invalid filter value")
	ErrUnsortableField        = New("UNSORTABLE_FIELD", http.StatusBadRequest, "field is not sortable")
	ErrUnknownField           = New("UNKNOWN_FIELD", http.StatusBadRequest, "unknown form field")
	ErrSubmitInProgress       = New("SUBMIT_IN_PROGRESS", http.StatusConflict, "a submission is already in progress")
	ErrDraftSaved             = New("DRAFT_SAVED", http.StatusConflict, "draft already saved")
	ErrCancelled              = New("CANCELLED", http.StatusOK, "cancelled by user")
	ErrInternal               = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal error")
	ErrUnexpectedResponseForm = New("UNEXPECTED_RESPONSE", http.StatusBadGateway, "unexpected response shape")
)

// Validation builds a local validation error naming every offending field.
func Validation(fields []FieldError) *Error {
	return &Error{Code: ErrValidation.Code, Status: ErrValidation.Status, Message: ErrValidation.Message, Fields: fields}
}

// ServerValidation builds an error carrying backend field messages.
func ServerValidation(status int, message string, fields []FieldError) *Error {
	if message == "" {
		message = ErrServerValidation.Message
	}
	return &Error{Code: ErrServerValidation.Code, Status: status, Message: message, Fields: fields}
}

// Transport wraps a failed backend call.
func Transport(err error, status int, message string) *Error {
	if status == 0 {
		status = ErrTransport.Status
	}
	if message == "" {
		message = ErrTransport.Message
	}
	return &Error{Code: ErrTransport.Code, Status: status, Message: message, Err: err}
}

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

func hasCode(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// IsValidation reports a locally detected validation failure.
func IsValidation(err error) bool { return hasCode(err, ErrValidation.Code) }

// IsServerValidation reports a backend field-level rejection.
func IsServerValidation(err error) bool { return hasCode(err, ErrServerValidation.Code) }

// IsTransport reports a failed or undecodable backend call. Not-found answers
// count as transport failures for notification purposes.
func IsTransport(err error) bool {
	return hasCode(err, ErrTransport.Code) || hasCode(err, ErrNotFound.Code) || hasCode(err, ErrUnexpectedResponseForm.Code)
}
