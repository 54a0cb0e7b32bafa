package order

import (
	"context"

	"marmita-storefront/internal/supabase"
)

const table = "orders"

type Repository interface {
	Create(ctx context.Context, in NewOrder) (*Order, error)
	ListByPhone(ctx context.Context, phone string) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Order, error)
	UpdatePriority(ctx context.Context, id string, priority int) (*Order, error)
}

type repository struct {
	rest supabase.REST
}

func NewRepository(rest supabase.REST) Repository {
	return &repository{rest: rest}
}

func (r *repository) Create(ctx context.Context, in NewOrder) (*Order, error) {
	var rows []row
	if err := r.rest.Insert(ctx, table, mapNewOrderToRow(in), supabase.Anon, &rows); err != nil {
		return nil, err
	}

	created, err := supabase.One(rows)
	if err != nil {
		return nil, err
	}

	o := mapRowToOrder(*created)
	return &o, nil
}

// ListByPhone returns the orders placed with phone, newest first.
func (r *repository) ListByPhone(ctx context.Context, phone string) ([]Order, error) {
	var rows []row
	q := supabase.NewQuery().
		Select("*").
		Eq("customer_phone", phone).
		Order("created_at", true)
	if err := r.rest.Select(ctx, table, q, supabase.Anon, &rows); err != nil {
		return nil, err
	}
	return mapRowsToOrders(rows), nil
}

// ListAll is the kitchen queue: highest priority first, then oldest first.
func (r *repository) ListAll(ctx context.Context) ([]Order, error) {
	var rows []row
	q := supabase.NewQuery().
		Select("*").
		Order("priority", true).
		Order("created_at", false)
	if err := r.rest.Select(ctx, table, q, supabase.User, &rows); err != nil {
		return nil, err
	}
	return mapRowsToOrders(rows), nil
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status) (*Order, error) {
	return r.patch(ctx, id, statusPatch{Status: string(status)})
}

func (r *repository) UpdatePriority(ctx context.Context, id string, priority int) (*Order, error) {
	return r.patch(ctx, id, priorityPatch{Priority: priority})
}

func (r *repository) patch(ctx context.Context, id string, body any) (*Order, error) {
	var rows []row
	q := supabase.NewQuery().Eq("id", id)
	if err := r.rest.Update(ctx, table, q, body, supabase.User, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrOrderNotFound
	}

	o := mapRowToOrder(rows[0])
	return &o, nil
}
