package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeMissingField     = "MISSING_FIELD"
	ErrCodeUnknownCoupon    = "UNKNOWN_COUPON"
	ErrCodeInvalidCoupon    = "INVALID_COUPON"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeInvalidQuantity  = "INVALID_QUANTITY"
	ErrCodeInvalidBuyer     = "INVALID_BUYER"
	ErrCodeQuoteNotFound    = "QUOTE_NOT_FOUND"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrUnknownCoupon   = NewDomainError(ErrCodeUnknownCoupon, "Coupon code is not recognised")
	ErrInvalidCoupon   = NewDomainError(ErrCodeInvalidCoupon, "Coupon definition is malformed")
	ErrProductNotFound = NewDomainError(ErrCodeProductNotFound, "One or more products not found")
	ErrInvalidQuantity = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidBuyer    = NewDomainError(ErrCodeInvalidBuyer, "Buyer ID is required")
)
