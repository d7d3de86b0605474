package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeInvalidPromoCode   = "INVALID_PROMO_CODE"
	ErrCodeInvalidPromoLength = "INVALID_PROMO_LENGTH"
	ErrCodeItemNotFound       = "ITEM_NOT_FOUND"
	ErrCodeWishlistNotFound   = "WISHLIST_NOT_FOUND"
	ErrCodeEmptyWishlistName  = "EMPTY_WISHLIST_NAME"
	ErrCodeDuplicateItem      = "DUPLICATE_ITEM"
	ErrCodeCartConverted      = "CART_CONVERTED"
	ErrCodeInvalidQuantity    = "INVALID_QUANTITY"
	ErrCodeSyncFailed         = "SYNC_FAILED"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
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
	ErrInvalidPromoCode   = NewDomainError(ErrCodeInvalidPromoCode, "Promo code is not recognised")
	ErrInvalidPromoLength = NewDomainError(ErrCodeInvalidPromoLength, "Promo code must be between 4 and 16 characters")
	ErrItemNotFound       = NewDomainError(ErrCodeItemNotFound, "Item not found")
	ErrWishlistNotFound   = NewDomainError(ErrCodeWishlistNotFound, "Wishlist not found")
	ErrEmptyWishlistName  = NewDomainError(ErrCodeEmptyWishlistName, "Wishlist name must not be empty")
	ErrDuplicateItem      = NewDomainError(ErrCodeDuplicateItem, "Item already present")
	ErrCartConverted      = NewDomainError(ErrCodeCartConverted, "Cart has been converted to an order and is immutable")
	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrSyncFailed         = NewDomainError(ErrCodeSyncFailed, "Failed to sync cart with server")
)
