package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeEmptyItems        = "EMPTY_ITEMS"
	ErrCodeInvalidQuantity   = "INVALID_QUANTITY"
	ErrCodeInvalidPrice      = "INVALID_PRICE"
	ErrCodeInvalidTotal      = "INVALID_TOTAL"
	ErrCodeTotalMismatch     = "TOTAL_MISMATCH"
	ErrCodeMissingClientKey  = "MISSING_CLIENT_KEY"
	ErrCodeInvalidContact    = "INVALID_CONTACT"
	ErrCodeUnauthorised      = "UNAUTHORIZED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
	ErrCodeDuplicateOrderKey = "DUPLICATE_CLIENT_KEY"
)

// DomainError carries a stable error code alongside a user-facing message.
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
	ErrEmptyItems       = NewDomainError(ErrCodeEmptyItems, "Order must contain at least one item")
	ErrInvalidQuantity  = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be at least 1")
	ErrInvalidPrice     = NewDomainError(ErrCodeInvalidPrice, "Item price must not be negative")
	ErrInvalidTotal     = NewDomainError(ErrCodeInvalidTotal, "Total must not be negative")
	ErrTotalMismatch    = NewDomainError(ErrCodeTotalMismatch, "Total does not match the priced items")
	ErrMissingClientKey = NewDomainError(ErrCodeMissingClientKey, "clientKey is required")
	ErrUnauthorised     = NewDomainError(ErrCodeUnauthorised, "Authentication required")

	// ErrDuplicateClientKey signals the storage-level uniqueness constraint
	// on client_key fired. Callers translate it into the already-placed
	// success path, never into a user-visible failure.
	ErrDuplicateClientKey = NewDomainError(ErrCodeDuplicateOrderKey, "An order with this clientKey already exists")

	ErrContactName    = NewDomainError(ErrCodeInvalidContact, "Name must be between 2 and 100 characters")
	ErrContactEmail   = NewDomainError(ErrCodeInvalidContact, "A valid email address is required")
	ErrContactMessage = NewDomainError(ErrCodeInvalidContact, "Message must be between 5 and 2000 characters")
)
