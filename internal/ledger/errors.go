// internal/ledger/errors.go
package ledger

import "errors"

// Every mutating ledger operation either commits fully or returns one of
// these errors with no state change. Callers match with errors.Is.
var (
	ErrInvalidPrice        = errors.New("price must be greater than zero")
	ErrNotFound            = errors.New("record not found")
	ErrUnauthorized        = errors.New("caller is not authorized")
	ErrInactive            = errors.New("product is not active")
	ErrInsufficientPayment = errors.New("payment is less than the product price")
	ErrSelfPurchase        = errors.New("creators cannot purchase their own products")
	ErrTransferFailed      = errors.New("value transfer failed")
	ErrInvalidFeeBps       = errors.New("platform fee must be between 0 and 10000 basis points")
)
