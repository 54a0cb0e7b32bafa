package checkout

import (
	"errors"
	"fmt"

	"marmita-storefront/internal/order"
)

var (
	ErrBlankName            = errors.New("customer name is required")
	ErrInvalidPhone         = errors.New("phone must have at least 10 digits")
	ErrBlankAddress         = errors.New("delivery address is required")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrEmptyCart            = errors.New("empty cart")
)

// ValidationError is a form problem found before anything is sent.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// PartialFailureError means the order exists remotely but its payment
// record could not be created. The cart has already been cleared.
type PartialFailureError struct {
	Order *order.Order
	Err   error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("order %s placed, payment record failed: %v", e.Order.ID, e.Err)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsPartialFailure reports whether err means the order was placed without a
// payment record.
func IsPartialFailure(err error) bool {
	var pe *PartialFailureError
	return errors.As(err, &pe)
}
