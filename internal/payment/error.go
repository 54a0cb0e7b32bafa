package payment

import "errors"

var (
	ErrUnknownMethod  = errors.New("unknown payment method")
	ErrMissingOrderID = errors.New("payment requires an order id")
	ErrInvalidAmount  = errors.New("payment amount must not be negative")
)
