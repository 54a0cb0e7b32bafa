package payment

import (
	"context"
	"strings"

	"marmita-storefront/internal/logger"
	"marmita-storefront/internal/supabase"

	"go.uber.org/zap"
)

const table = "payments"

type Repository interface {
	Create(ctx context.Context, rec Record) (*Payment, error)
}

type repository struct {
	rest supabase.REST
}

func NewRepository(rest supabase.REST) Repository {
	return &repository{rest: rest}
}

// Create stores rec as a pending payment. The anonymous key is enough,
// same as order creation.
func (r *repository) Create(ctx context.Context, rec Record) (*Payment, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreatePayment"),
		zap.String("order_id", rec.OrderID),
	)

	if strings.TrimSpace(rec.OrderID) == "" {
		return nil, ErrMissingOrderID
	}
	if !rec.Method.Valid() {
		return nil, ErrUnknownMethod
	}
	if rec.Amount.IsNegative() {
		return nil, ErrInvalidAmount
	}

	body := row{
		OrderID: rec.OrderID,
		Method:  rec.Method.Wire(),
		Amount:  rec.Amount,
		Status:  StatusPending,
	}

	var rows []row
	if err := r.rest.Insert(ctx, table, body, supabase.Anon, &rows); err != nil {
		log.Error("failed to create payment record", zap.Error(err))
		return nil, err
	}

	p := &Payment{
		OrderID: rec.OrderID,
		Method:  rec.Method,
		Amount:  rec.Amount,
		Status:  StatusPending,
	}
	if created, err := supabase.One(rows); err == nil {
		p.ID = created.ID
		if created.Status != "" {
			p.Status = created.Status
		}
		if m, err := ParseMethod(created.Method); err == nil {
			p.Method = m
		}
		p.Amount = created.Amount
	}

	log.Info("payment record created",
		zap.String("payment_id", p.ID),
		zap.String("payment_method", string(p.Method)),
	)
	return p, nil
}
