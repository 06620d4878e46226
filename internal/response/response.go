package response

import "github.com/gin-gonic/gin"

// Error codes shared across services and handlers
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeAlreadyExists     = "ALREADY_EXISTS"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeInternal          = "INTERNAL_ERROR"
	ErrCodeIllegalTransition = "ILLEGAL_TRANSITION"
	ErrCodeAlreadyConverted  = "ALREADY_CONVERTED"
	ErrCodeNotClaimable      = "NOT_CLAIMABLE"
	ErrCodeUnassigned        = "UNASSIGNED"
	ErrCodeIncompleteWork    = "INCOMPLETE_WORK"
)

// AppError is the error type returned by the service layer. Code determines
// the HTTP status the handler maps it to.
type AppError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// NewAppError creates a new AppError with the given code
func NewAppError(code, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

// NewValidationError creates a validation error without field details
func NewValidationError(message, details string) *AppError {
	return NewAppError(ErrCodeValidation, message, details)
}

// NewFieldValidationError creates a validation error carrying a
// field-to-message mapping for the caller to re-prompt with
func NewFieldValidationError(message string, fields map[string]string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Fields: fields}
}

// NewNotFoundError creates a not-found error
func NewNotFoundError(message, details string) *AppError {
	return NewAppError(ErrCodeNotFound, message, details)
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message, details string) *AppError {
	return NewAppError(ErrCodeForbidden, message, details)
}

// NewIllegalTransitionError creates an error naming the current state and
// the attempted target
func NewIllegalTransitionError(current, target string) *AppError {
	return NewAppError(ErrCodeIllegalTransition,
		"Transition from "+current+" to "+target+" is not allowed", "")
}

// ErrorDetail is the error body inside an ErrorResponse
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorResponse is the envelope for error responses
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// SuccessResponse is the envelope for success responses
type SuccessResponse struct {
	Data interface{} `json:"data"`
}

// SendError writes an error response with the given status and code
func SendError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// SendErrorWithFields writes a validation error response including the
// field-to-message mapping
func SendErrorWithFields(c *gin.Context, status int, code, message string, fields map[string]string) {
	c.JSON(status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message, Fields: fields}})
}

// SendSuccess writes a success response wrapping data
func SendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse{Data: data})
}
