package redmine

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies every error returned by the client.
type ErrorKind int

const (
	// KindUnknown is reported for errors that did not originate in this package.
	KindUnknown ErrorKind = iota
	// KindRequest covers transport and protocol failures.
	KindRequest
	// KindResponse covers response bodies that are not valid JSON.
	KindResponse
	// KindValidation covers local validation failures.
	KindValidation
)

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindResponse:
		return "response"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Static errors for err113 compliance.
var (
	ErrConfigRequired     = errors.New("config is required")
	ErrBaseURLRequired    = errors.New("base URL is required")
	ErrAPIKeyRequired     = errors.New("API key is required")
	ErrBadResource        = errors.New("bad resource passed")
	ErrMissingEnvelopeKey = errors.New("missing envelope key")
	ErrUnexpectedType     = errors.New("unexpected JSON type")
	ErrInvalidID          = errors.New("the id must be an integer or \"current\"")
	ErrInvalidReference   = errors.New("the reference type must be issue or project")
	ErrNameRequired       = errors.New("name is required")
)

// Status code bounds used when translating transport failures.
const (
	minErrorStatus     = 400
	maxErrorStatus     = 599
	defaultErrorStatus = http.StatusInternalServerError
)

// RequestError is returned when a call fails at the transport or protocol level.
type RequestError struct {
	// Message is the upstream response body, or the low-level error text when
	// no body could be read.
	Message string
	// Code is the HTTP status in [400,599], otherwise 500.
	Code int
	// Errors holds the messages of a {"errors": [...]} body, if any.
	Errors []string
	// Err is the low-level cause, if any.
	Err error
}

// NewRequestError builds the unified request error from a low-level failure.
// status is the HTTP status of the response (0 when none was received) and
// body the upstream response body, if it could be read.
func NewRequestError(err error, status int, body []byte) *RequestError {
	message := strings.TrimSpace(string(body))

	if message == "" && err != nil {
		message = err.Error()
	}

	if message == "" && status != 0 {
		message = http.StatusText(status)
	}

	code := status
	if code < minErrorStatus || code > maxErrorStatus {
		code = defaultErrorStatus
	}

	return &RequestError{
		Message: message,
		Code:    code,
		Errors:  parseErrorMessages(body),
		Err:     err,
	}
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed (code: %d): %s", e.Code, e.Message)
}

// Unwrap returns the low-level cause.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// ResponseError is returned when a response body is not valid JSON.
type ResponseError struct {
	Message string
	Err     error
}

// NewResponseError wraps a JSON decoding failure.
func NewResponseError(err error) *ResponseError {
	return &ResponseError{Message: err.Error(), Err: err}
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	return "invalid response: " + e.Message
}

// Unwrap returns the decoder error.
func (e *ResponseError) Unwrap() error {
	return e.Err
}

// ValidationError is returned for failures detected locally, before or after a
// network call.
type ValidationError struct {
	Message string
	Err     error
}

// NewValidationError wraps one of the static validation errors.
func NewValidationError(err error, message string) *ValidationError {
	if message == "" {
		message = err.Error()
	}

	return &ValidationError{Message: message, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap returns the static error this validation failure is based on.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// KindOf reports which kind of failure err is.
func KindOf(err error) ErrorKind {
	var (
		reqErr  *RequestError
		respErr *ResponseError
		valErr  *ValidationError
	)

	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &valErr):
		return KindValidation
	case errors.As(err, &respErr):
		return KindResponse
	case errors.As(err, &reqErr):
		return KindRequest
	default:
		return KindUnknown
	}
}

// StatusCode returns the code of a RequestError found in err's chain, or 0.
func StatusCode(err error) int {
	reqErr := &RequestError{}
	if errors.As(err, &reqErr) {
		return reqErr.Code
	}

	return 0
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}

// IsUnprocessable checks if the error is a validation failure reported by the server.
func IsUnprocessable(err error) bool {
	return StatusCode(err) == http.StatusUnprocessableEntity
}

// IsSuccess is the success predicate for delete-style calls that only report a status.
func IsSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

// parseErrorMessages extracts the messages of a Redmine {"errors": [...]} body.
func parseErrorMessages(body []byte) []string {
	if len(body) == 0 {
		return nil
	}

	var errResp struct {
		Errors []string `json:"errors"`
	}

	err := json.Unmarshal(body, &errResp)
	if err != nil {
		return nil
	}

	return errResp.Errors
}
