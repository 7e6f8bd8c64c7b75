package checkout

import "errors"

var (
	ErrEmptyCart     = errors.New("cart is empty, nothing to checkout")
	ErrInvalidStatus = errors.New("invalid order status")
)

// ValidationError rejects customer input before any state is touched.
type ValidationError struct {
	Field   string
	Title   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
