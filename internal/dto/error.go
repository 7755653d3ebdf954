package dto

import appErrors "github.com/noah-isme/printshop-console/pkg/errors"

// ErrorBody is the JSON error answer of the inventory backend. Older backend
// builds report field problems as an "errors" object keyed by field name
// instead of the fieldErrors list.
type ErrorBody struct {
	Status      int                    `json:"status"`
	Code        string                 `json:"error,omitempty"`
	Message     string                 `json:"message,omitempty"`
	FieldErrors []appErrors.FieldError `json:"fieldErrors,omitempty"`
	Errors      map[string]string      `json:"errors,omitempty"`
}
