package api

// ErrorResponse is the wire shape for every failure. Field is set only for
// validation errors where the offending field is derivable.
type ErrorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Error codes. Handlers map these to HTTP statuses; the duplicate-email case
// is 400 rather than 409 by contract.
const (
	CodeValidation         = "VALIDATION"
	CodeEmailTaken         = "EMAIL_TAKEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeNotFound           = "NOT_FOUND"
	CodeCartEmpty          = "CART_EMPTY"
	CodeInternal           = "INTERNAL"
)

// DomainError is a business-rule failure that has a defined wire
// representation. Anything that is not a DomainError is an internal error and
// surfaces as a generic 500 with no detail leaked.
type DomainError struct {
	Code    string
	Message string
	Field   string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewValidationError reports a malformed or missing input field.
func NewValidationError(message, field string) *DomainError {
	return &DomainError{Code: CodeValidation, Message: message, Field: field}
}

// Common domain errors.
var (
	ErrEmailTaken         = &DomainError{Code: CodeEmailTaken, Message: "Email already exists"}
	ErrInvalidCredentials = &DomainError{Code: CodeInvalidCredentials, Message: "Invalid credentials"}
	ErrUnauthorized       = &DomainError{Code: CodeUnauthorized, Message: "Unauthorized"}
	ErrUserNotFound       = &DomainError{Code: CodeNotFound, Message: "User not found"}
	ErrProductNotFound    = &DomainError{Code: CodeNotFound, Message: "Product not found"}
	ErrCartItemNotFound   = &DomainError{Code: CodeNotFound, Message: "Cart item not found"}
	ErrOrderNotFound      = &DomainError{Code: CodeNotFound, Message: "Order not found"}
	ErrCartEmpty          = &DomainError{Code: CodeCartEmpty, Message: "Cart is empty"}
)
