package dto

import (
	"errors"

	"github.com/SscSPs/municipal_tax_app/internal/apperrors"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`   // machine-readable kind
	Message string `json:"message"` // human-readable detail
}

// NewErrorResponse renders err with its stable kind. Internal failures hide their detail.
func NewErrorResponse(err error) ErrorResponse {
	kind := apperrors.KindOf(err)
	if kind == "internal" {
		return ErrorResponse{Error: kind, Message: "an unexpected error occurred"}
	}
	msg := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		msg = appErr.Message
	}
	return ErrorResponse{Error: kind, Message: msg}
}
