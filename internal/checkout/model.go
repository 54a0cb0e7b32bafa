package checkout

import (
	"marmita-storefront/internal/cart"
	"marmita-storefront/internal/order"
	"marmita-storefront/internal/payment"

	"github.com/shopspring/decimal"
)

// Form is what the customer fills in at checkout. Fields are validated in
// declaration order.
type Form struct {
	CustomerName    string         `validate:"notblank"`
	CustomerPhone   string         `validate:"notblank,phonedigits"`
	CustomerAddress string         `validate:"notblank"`
	Notes           *string
	PaymentMethod   payment.Method `validate:"paymentmethod"`
}

// Submission is the order about to be sent. It owns a copy of the cart
// lines, so later cart changes do not touch it.
type Submission struct {
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	Items           []cart.Line
	Total           decimal.Decimal
	Notes           *string
	PaymentMethod   payment.Method
}

// Receipt is the result of a fully successful checkout.
type Receipt struct {
	Order        *order.Order
	Payment      *payment.Payment
	Instructions []string
}

func (s *Submission) newOrder() order.NewOrder {
	items := make([]order.Item, 0, len(s.Items))
	for _, l := range s.Items {
		items = append(items, order.Item{
			ID:       l.ID,
			Name:     l.Name,
			Price:    l.UnitPrice,
			Quantity: l.Quantity,
		})
	}

	return order.NewOrder{
		CustomerName:    s.CustomerName,
		CustomerPhone:   s.CustomerPhone,
		CustomerAddress: s.CustomerAddress,
		Items:           items,
		Total:           s.Total,
		Notes:           s.Notes,
	}
}
