package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
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

// Error codes used across the domain. Services attach contextual messages
// via NewDomainError with the same codes.
const (
	CodeNotFound               = "NOT_FOUND"
	CodeAlreadyExists          = "ALREADY_EXISTS"
	CodeInvalidInput           = "INVALID_INPUT"
	CodeValidation             = "VALIDATION_ERROR"
	CodeConcurrencyConflict    = "CONCURRENCY_CONFLICT"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeInvalidState           = "INVALID_STATE"
	CodeInsufficientStock      = "INSUFFICIENT_STOCK"
	CodeUnknownProduct         = "UNKNOWN_PRODUCT"
	CodeUnknownOrder           = "UNKNOWN_ORDER"
	CodeInvalidStateTransition = "INVALID_STATE_TRANSITION"
	CodeOverReceipt            = "OVER_RECEIPT"
	CodeDuplicateConversion    = "DUPLICATE_CONVERSION"
)

// Common domain errors
var (
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists       = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput        = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError(CodeConcurrencyConflict, "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
	ErrInvalidState        = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrInsufficientStock   = NewDomainError(CodeInsufficientStock, "Insufficient stock available")
	ErrUnknownProduct      = NewDomainError(CodeUnknownProduct, "Product has no inventory record")
	ErrUnknownOrder        = NewDomainError(CodeUnknownOrder, "Customer order not found")
	ErrOverReceipt         = NewDomainError(CodeOverReceipt, "Received quantity exceeds ordered quantity")
	ErrDuplicateConversion = NewDomainError(CodeDuplicateConversion, "Order has already been converted to a sale")
)
