// Package storefront wires every collaborator from one Config.
package storefront

import (
	"context"
	"net/http"

	"marmita-storefront/internal/address"
	"marmita-storefront/internal/auth"
	"marmita-storefront/internal/cart"
	"marmita-storefront/internal/checkout"
	"marmita-storefront/internal/config"
	"marmita-storefront/internal/feed"
	"marmita-storefront/internal/logger"
	"marmita-storefront/internal/metrics"
	"marmita-storefront/internal/order"
	"marmita-storefront/internal/payment"
	"marmita-storefront/internal/product"
	"marmita-storefront/internal/profile"
	"marmita-storefront/internal/session"
	"marmita-storefront/internal/settings"
	"marmita-storefront/internal/storage"
	"marmita-storefront/internal/supabase"

	"golang.org/x/time/rate"
)

type Storefront struct {
	backend *supabase.Client

	Session  session.Store
	Auth     auth.Service
	Products product.Repository
	Feed     *feed.Pager
	Cart     *cart.Store
	Orders   order.Service
	Payments payment.Repository
	Checkout checkout.Service
	Profile  profile.Service
	Settings settings.Service
	Storage  storage.Service
	Address  address.Lookup
}

// New builds a storefront against the backend described by cfg. It fails
// only when cfg is incomplete.
func New(cfg *config.Config) (*Storefront, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := &http.Client{
		Timeout:   cfg.HTTPTimeout,
		Transport: logger.Transport(nil),
	}

	store := session.NewMemoryStore()
	client := supabase.New(supabase.Options{
		BaseURL:    cfg.SupabaseURL,
		APIKey:     cfg.SupabaseKey,
		HTTPClient: httpClient,
		Tokens:     store,
		RateLimit:  rate.Limit(cfg.RateLimitRPS),
		Burst:      cfg.RateLimitBurst,
	})

	return assemble(client, store, cfg.FeedPageSize, address.NewViaCEP(cfg.ViaCEPURL, httpClient)), nil
}

func assemble(client *supabase.Client, store session.Store, pageSize int, lookup address.Lookup) *Storefront {
	authSvc := auth.NewService(client, store)
	products := product.NewRepository(client)
	cartStore := cart.NewStore()
	orders := order.NewService(order.NewRepository(client))
	payments := payment.NewRepository(client)

	return &Storefront{
		backend:  client,
		Session:  store,
		Auth:     authSvc,
		Products: products,
		Feed:     feed.NewPager(products, pageSize),
		Cart:     cartStore,
		Orders:   orders,
		Payments: payments,
		Checkout: checkout.NewService(cartStore, orders, payments),
		Profile:  profile.NewService(client, authSvc),
		Settings: settings.NewService(client),
		Storage:  storage.NewService(client),
		Address:  lookup,
	}
}

// CheckoutForm returns a form prefilled for the signed-in customer, or one
// with only the payment method set when nobody is signed in.
func (s *Storefront) CheckoutForm(ctx context.Context, method payment.Method) (checkout.Form, error) {
	pre, err := s.Profile.Prefill(ctx)
	if err != nil {
		return checkout.Form{PaymentMethod: method}, err
	}
	return checkout.Form{
		CustomerName:    pre.CustomerName,
		CustomerPhone:   pre.CustomerPhone,
		CustomerAddress: pre.CustomerAddress,
		PaymentMethod:   method,
	}, nil
}

// BackendStats reports the backend calls made through this storefront.
func (s *Storefront) BackendStats() metrics.CallStats {
	return s.backend.Stats()
}
