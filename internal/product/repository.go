package product

import (
	"context"
	"strings"

	"marmita-storefront/internal/logger"
	"marmita-storefront/internal/supabase"

	"go.uber.org/zap"
)

const table = "marmitas"

type Repository interface {
	ListAvailablePage(ctx context.Context, limit, offset int) ([]Product, error)
	ListAvailable(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (*Product, error)

	// Admin operations; they require a signed-in session.
	ListAll(ctx context.Context) ([]Product, error)
	Create(ctx context.Context, in Input) (*Product, error)
	Update(ctx context.Context, id string, in Input) (*Product, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	rest supabase.REST
}

func NewRepository(rest supabase.REST) Repository {
	return &repository{rest: rest}
}

func availableQuery() *supabase.Query {
	return supabase.NewQuery().
		Select("*").
		Eq("available", "true").
		Order("name", false)
}

func (r *repository) ListAvailablePage(ctx context.Context, limit, offset int) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListAvailablePage"),
		zap.Int("limit", limit),
		zap.Int("offset", offset),
	)

	var rows []row
	q := availableQuery().Limit(limit).Offset(offset)
	if err := r.rest.Select(ctx, table, q, supabase.Anon, &rows); err != nil {
		log.Error("failed to fetch product page", zap.Error(err))
		return nil, err
	}

	log.Debug("product page fetched", zap.Int("count", len(rows)))
	return mapRowsToProducts(rows), nil
}

func (r *repository) ListAvailable(ctx context.Context) ([]Product, error) {
	var rows []row
	if err := r.rest.Select(ctx, table, availableQuery(), supabase.Anon, &rows); err != nil {
		logger.FromCtx(ctx).Error("failed to list available products",
			zap.String("layer", "repository"),
			zap.Error(err),
		)
		return nil, err
	}
	return mapRowsToProducts(rows), nil
}

func (r *repository) Get(ctx context.Context, id string) (*Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrMissingID
	}

	var rows []row
	q := supabase.NewQuery().Select("*").Eq("id", id).Limit(1)
	if err := r.rest.Select(ctx, table, q, supabase.Anon, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrProductNotFound
	}

	p := mapRowToProduct(rows[0])
	return &p, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Product, error) {
	var rows []row
	q := supabase.NewQuery().Select("*").Order("created_at", true)
	if err := r.rest.Select(ctx, table, q, supabase.User, &rows); err != nil {
		return nil, err
	}
	return mapRowsToProducts(rows), nil
}

func (r *repository) Create(ctx context.Context, in Input) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
	)

	if err := in.validate(); err != nil {
		log.Warn("invalid product input", zap.Error(err))
		return nil, err
	}

	var rows []row
	if err := r.rest.Insert(ctx, table, mapInputToRow(in), supabase.User, &rows); err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	created, err := supabase.One(rows)
	if err != nil {
		log.Error("create returned no representation", zap.Error(err))
		return nil, err
	}

	p := mapRowToProduct(*created)
	log.Info("product created", zap.String("product_id", p.ID))
	return &p, nil
}

func (r *repository) Update(ctx context.Context, id string, in Input) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Update"),
		zap.String("product_id", id),
	)

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrMissingID
	}
	if err := in.validate(); err != nil {
		log.Warn("invalid product input", zap.Error(err))
		return nil, err
	}

	var rows []row
	q := supabase.NewQuery().Eq("id", id)
	if err := r.rest.Update(ctx, table, q, mapInputToRow(in), supabase.User, &rows); err != nil {
		log.Error("failed to update product", zap.Error(err))
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrProductNotFound
	}

	p := mapRowToProduct(rows[0])
	return &p, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrMissingID
	}

	q := supabase.NewQuery().Eq("id", id)
	if err := r.rest.Delete(ctx, table, q, supabase.User); err != nil {
		logger.FromCtx(ctx).Error("failed to delete product",
			zap.String("layer", "repository"),
			zap.String("product_id", id),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (in Input) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrInvalidName
	}
	if in.Price.IsNegative() {
		return ErrInvalidPrice
	}
	for _, ing := range in.Ingredients {
		if ing.Grams < 0 {
			return ErrInvalidGrams
		}
	}
	return nil
}
