package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrClientNotFound is returned when an insured entity is not found.
	ErrClientNotFound = errors.New("client not found")
	// ErrClientEmailTaken is returned when a client email is already registered.
	ErrClientEmailTaken = errors.New("client email already registered")
	// ErrAssessmentNotFound is returned when a risk assessment is not found.
	ErrAssessmentNotFound = errors.New("assessment not found")
	// ErrCompanyNotFound is returned when a company is not found.
	ErrCompanyNotFound = errors.New("company not found")
	// ErrClientInactive is returned when scoring an inactive client.
	ErrClientInactive = errors.New("client is not active")
	// ErrInvalidPolicy is returned when policy details fail validation.
	ErrInvalidPolicy = errors.New("invalid policy details")
	// ErrUnknownLookup is returned when a submitted attribute has no
	// matching reference row.
	ErrUnknownLookup = errors.New("unknown reference value")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrClientNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "CLIENT_NOT_FOUND")
	case ErrAssessmentNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "ASSESSMENT_NOT_FOUND")
	case ErrCompanyNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "COMPANY_NOT_FOUND")
	case ErrClientEmailTaken:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CLIENT_EMAIL_TAKEN")
	case ErrClientInactive:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CLIENT_INACTIVE")
	case ErrInvalidPolicy:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_POLICY")
	case ErrUnknownLookup:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UNKNOWN_REFERENCE_VALUE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
