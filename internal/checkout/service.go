// Package checkout turns the cart and the customer's form into an order and
// its payment record.
package checkout

import (
	"context"
	"fmt"
	"strings"

	"marmita-storefront/internal/cart"
	"marmita-storefront/internal/logger"
	"marmita-storefront/internal/order"
	"marmita-storefront/internal/payment"
	"marmita-storefront/internal/utils"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Cart is the part of the cart store checkout reads and empties.
type Cart interface {
	Snapshot() cart.State
	Deduct(lines []cart.Line)
}

type Service interface {
	Build(state cart.State, form Form) (*Submission, error)
	Submit(ctx context.Context, form Form) (*Receipt, error)
}

type service struct {
	cart     Cart
	orders   order.Service
	payments payment.Repository
	validate *validatorv10.Validate
}

func NewService(c Cart, orders order.Service, payments payment.Repository) Service {
	return &service{
		cart:     c,
		orders:   orders,
		payments: payments,
		validate: newValidator(),
	}
}

// Build validates form against state and assembles the submission. Nothing
// is sent.
func (s *service) Build(state cart.State, form Form) (*Submission, error) {
	if err := validateForm(s.validate, form); err != nil {
		return nil, err
	}
	if state.IsEmpty() {
		return nil, &ValidationError{Field: "cart", Err: ErrEmptyCart}
	}

	items := state.Lines()
	total := decimal.Zero
	for _, l := range items {
		total = total.Add(l.Subtotal())
	}

	return &Submission{
		CustomerName:    strings.TrimSpace(form.CustomerName),
		CustomerPhone:   utils.DigitsOnly(form.CustomerPhone),
		CustomerAddress: strings.TrimSpace(form.CustomerAddress),
		Items:           items,
		Total:           total,
		Notes:           utils.NilIfBlank(utils.PtrString(form.Notes)),
		PaymentMethod:   form.PaymentMethod,
	}, nil
}

// Submit places the order for the current cart, then records its payment.
//
// A failed order leaves the cart as it was. Once the order exists the
// ordered lines leave the cart, so it is empty unless items were added while
// the order was in flight; if the payment record then fails a *PartialFailureError
// carrying the order is returned so it can be followed up by the store.
func (s *service) Submit(ctx context.Context, form Form) (*Receipt, error) {
	ctx = logger.EnsureRequestID(ctx)
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
	)

	sub, err := s.Build(s.cart.Snapshot(), form)
	if err != nil {
		log.Info("checkout rejected", zap.Error(err))
		return nil, err
	}

	created, err := s.orders.Create(ctx, sub.newOrder())
	if err != nil {
		log.Error("order creation failed; cart kept", zap.Error(err))
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.cart.Deduct(sub.Items)

	pay, err := s.payments.Create(ctx, payment.Record{
		OrderID: created.ID,
		Method:  sub.PaymentMethod,
		Amount:  sub.Total,
	})
	if err != nil {
		log.Warn("order placed without payment record",
			zap.String("order_id", created.ID),
			zap.String("payment_method", string(sub.PaymentMethod)),
			zap.String("amount", sub.Total.StringFixed(2)),
			zap.Error(err),
		)
		return nil, &PartialFailureError{Order: created, Err: err}
	}

	log.Info("checkout completed",
		zap.String("order_id", created.ID),
		zap.String("payment_id", pay.ID),
	)

	return &Receipt{
		Order:        created,
		Payment:      pay,
		Instructions: payment.Instructions(sub.PaymentMethod, created.ID, sub.Total),
	}, nil
}
