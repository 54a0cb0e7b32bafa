package order

import (
	"context"
	"errors"
	"strings"

	"marmita-storefront/internal/logger"
	"marmita-storefront/internal/supabase"
	"marmita-storefront/internal/utils"

	"go.uber.org/zap"
)

const (
	MinPriority = 0
	MaxPriority = 10
)

type Service interface {
	Create(ctx context.Context, in NewOrder) (*Order, error)
	ListByPhone(ctx context.Context, phone string) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*Order, error)
	UpdatePriority(ctx context.Context, id string, priority int) (*Order, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Create places the order. A created order without an id is reported as
// ErrMissingOrderID so no payment gets attached to it.
func (s *service) Create(ctx context.Context, in NewOrder) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
	)

	if len(in.Items) == 0 {
		return nil, ErrNoItems
	}

	created, err := s.repo.Create(ctx, in)
	if err != nil {
		if errors.Is(err, supabase.ErrEmptyResponse) {
			log.Error("order created without representation")
			return nil, ErrMissingOrderID
		}
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	if strings.TrimSpace(created.ID) == "" {
		log.Error("order created without id")
		return nil, ErrMissingOrderID
	}

	log.Info("order created",
		zap.String("order_id", created.ID),
		zap.Int("items", len(created.Items)),
		zap.String("total", created.Total.StringFixed(2)),
	)
	return created, nil
}

// ListByPhone normalizes phone to digits; a phone without digits matches
// nothing and never reaches the backend.
func (s *service) ListByPhone(ctx context.Context, phone string) ([]Order, error) {
	digits := utils.DigitsOnly(phone)
	if digits == "" {
		return []Order{}, nil
	}

	orders, err := s.repo.ListByPhone(ctx, digits)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list orders by phone",
			zap.String("layer", "service"),
			zap.Error(err),
		)
		return nil, err
	}
	return orders, nil
}

func (s *service) ListAll(ctx context.Context) ([]Order, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) UpdateStatus(ctx context.Context, id, status string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateStatus"),
		zap.String("order_id", id),
	)

	if strings.TrimSpace(id) == "" {
		return nil, ErrMissingID
	}

	st := Status(strings.ToLower(strings.TrimSpace(status)))
	if !st.Valid() {
		log.Warn("rejected order status", zap.String("status", status))
		return nil, ErrInvalidStatus
	}

	updated, err := s.repo.UpdateStatus(ctx, id, st)
	if err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return nil, err
	}

	log.Info("order status updated", zap.String("status", string(st)))
	return updated, nil
}

func (s *service) UpdatePriority(ctx context.Context, id string, priority int) (*Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrMissingID
	}
	if priority < MinPriority || priority > MaxPriority {
		return nil, ErrInvalidPriority
	}
	return s.repo.UpdatePriority(ctx, id, priority)
}
