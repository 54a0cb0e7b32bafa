package order

import "errors"

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrMissingOrderID  = errors.New("backend returned an order without id")
	ErrMissingID       = errors.New("order id is required")
	ErrNoItems         = errors.New("order has no items")
	ErrInvalidStatus   = errors.New("invalid order status")
	ErrInvalidPriority = errors.New("order priority must be between 0 and 10")
)
