package checkout

import (
	"context"
	"errors"
	"testing"

	"marmita-storefront/internal/cart"
	"marmita-storefront/internal/order"
	"marmita-storefront/internal/payment"
	"marmita-storefront/internal/product"
	"marmita-storefront/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, in order.NewOrder) (*order.Order, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) ListByPhone(ctx context.Context, phone string) ([]order.Order, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderService) ListAll(ctx context.Context) ([]order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id, status string) (*order.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) UpdatePriority(ctx context.Context, id string, priority int) (*order.Order, error) {
	args := m.Called(ctx, id, priority)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, rec payment.Record) (*payment.Payment, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func filledCart() *cart.Store {
	s := cart.NewStore()
	a := product.Product{ID: "a", Name: "Feijoada", Price: decimal.RequireFromString("10.00")}
	s.Add(a)
	s.Add(a)
	s.Add(product.Product{ID: "b", Name: "Salada", Price: decimal.RequireFromString("5.00")})
	return s
}

func validForm() Form {
	return Form{
		CustomerName:    " Ana Souza ",
		CustomerPhone:   "(11) 91234-5678",
		CustomerAddress: "Rua das Flores, 10",
		Notes:           utils.StrPtr("sem cebola"),
		PaymentMethod:   payment.MethodPix,
	}
}

func TestService_Build(t *testing.T) {
	svc := NewService(cart.NewStore(), new(MockOrderService), new(MockPaymentRepository))

	t.Run("Success", func(t *testing.T) {
		sub, err := svc.Build(filledCart().Snapshot(), validForm())
		require.NoError(t, err)

		assert.Equal(t, "Ana Souza", sub.CustomerName)
		assert.Equal(t, "11912345678", sub.CustomerPhone)
		assert.Len(t, sub.Items, 2)
		assert.True(t, decimal.NewFromInt(25).Equal(sub.Total))
		assert.Equal(t, "sem cebola", utils.PtrString(sub.Notes))
		assert.Equal(t, payment.MethodPix, sub.PaymentMethod)
	})

	t.Run("BlankNotesDropped", func(t *testing.T) {
		form := validForm()
		form.Notes = utils.StrPtr("   ")

		sub, err := svc.Build(filledCart().Snapshot(), form)
		require.NoError(t, err)
		assert.Nil(t, sub.Notes)
	})

	t.Run("ItemsAreACopy", func(t *testing.T) {
		store := filledCart()
		sub, err := svc.Build(store.Snapshot(), validForm())
		require.NoError(t, err)

		store.Update("a", 9)
		store.Remove("b")

		assert.Len(t, sub.Items, 2)
		assert.Equal(t, 2, sub.Items[0].Quantity)
		assert.True(t, decimal.NewFromInt(25).Equal(sub.Total))
	})
}

func TestService_BuildValidationOrder(t *testing.T) {
	svc := NewService(cart.NewStore(), new(MockOrderService), new(MockPaymentRepository))
	full := filledCart().Snapshot()
	empty := cart.NewStore().Snapshot()

	tests := []struct {
		name    string
		mutate  func(f *Form)
		state   cart.State
		field   string
		wantErr error
	}{
		{"BlankName", func(f *Form) { f.CustomerName = "  "; f.CustomerPhone = "1"; f.CustomerAddress = "" }, empty, "customer_name", ErrBlankName},
		{"BlankPhone", func(f *Form) { f.CustomerPhone = " "; f.CustomerAddress = "" }, empty, "customer_phone", ErrInvalidPhone},
		{"ShortPhone", func(f *Form) { f.CustomerPhone = "(11) 1234-567"; f.CustomerAddress = "" }, empty, "customer_phone", ErrInvalidPhone},
		{"BlankAddress", func(f *Form) { f.CustomerAddress = "\t" }, empty, "customer_address", ErrBlankAddress},
		{"BadMethod", func(f *Form) { f.PaymentMethod = "boleto" }, full, "payment_method", ErrInvalidPaymentMethod},
		{"EmptyCart", func(f *Form) {}, empty, "cart", ErrEmptyCart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			_, err := svc.Build(tt.state, form)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsValidation(err))

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	t.Run("TenDigitLandline", func(t *testing.T) {
		form := validForm()
		form.CustomerPhone = "(11) 3123-4567"
		sub, err := svc.Build(full, form)
		require.NoError(t, err)
		assert.Equal(t, "1131234567", sub.CustomerPhone)
	})
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		store := filledCart()
		orders := new(MockOrderService)
		payments := new(MockPaymentRepository)
		svc := NewService(store, orders, payments)

		created := &order.Order{ID: "o-1", Total: decimal.NewFromInt(25), Status: order.StatusPending}

		orders.On("Create", mock.Anything, mock.MatchedBy(func(in order.NewOrder) bool {
			return in.CustomerPhone == "11912345678" &&
				len(in.Items) == 2 &&
				in.Total.Equal(decimal.NewFromInt(25))
		})).Run(func(mock.Arguments) {
			assert.False(t, store.Snapshot().IsEmpty(), "cart must not be cleared before the order exists")
		}).Return(created, nil)

		payments.On("Create", mock.Anything, mock.MatchedBy(func(rec payment.Record) bool {
			return rec.OrderID == "o-1" && rec.Method == payment.MethodPix && rec.Amount.Equal(decimal.NewFromInt(25))
		})).Return(&payment.Payment{ID: "p-1", OrderID: "o-1", Method: payment.MethodPix, Status: payment.StatusPending}, nil)

		receipt, err := svc.Submit(ctx, validForm())
		require.NoError(t, err)
		assert.Equal(t, "o-1", receipt.Order.ID)
		assert.Equal(t, "p-1", receipt.Payment.ID)
		assert.NotEmpty(t, receipt.Instructions)
		assert.True(t, store.Snapshot().IsEmpty())

		orders.AssertExpectations(t)
		payments.AssertExpectations(t)
	})

	t.Run("ItemsAddedDuringOrderStay", func(t *testing.T) {
		store := filledCart()
		orders := new(MockOrderService)
		payments := new(MockPaymentRepository)
		svc := NewService(store, orders, payments)

		orders.On("Create", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
			store.Add(product.Product{ID: "a", Name: "Feijoada", Price: decimal.RequireFromString("10.00")})
			store.Add(product.Product{ID: "c", Name: "Suco", Price: decimal.RequireFromString("6.00")})
		}).Return(&order.Order{ID: "o-2"}, nil)
		payments.On("Create", mock.Anything, mock.Anything).Return(&payment.Payment{ID: "p-2"}, nil)

		_, err := svc.Submit(ctx, validForm())
		require.NoError(t, err)

		lines := store.Snapshot().Lines()
		require.Len(t, lines, 2)
		assert.Equal(t, "a", lines[0].ID)
		assert.Equal(t, 1, lines[0].Quantity)
		assert.Equal(t, "c", lines[1].ID)
		assert.True(t, decimal.RequireFromString("16").Equal(store.Total()))
	})

	t.Run("ValidationNeverHitsNetwork", func(t *testing.T) {
		store := filledCart()
		orders := new(MockOrderService)
		payments := new(MockPaymentRepository)
		svc := NewService(store, orders, payments)

		form := validForm()
		form.CustomerName = ""

		_, err := svc.Submit(ctx, form)
		assert.ErrorIs(t, err, ErrBlankName)
		assert.Empty(t, orders.Calls)
		assert.Empty(t, payments.Calls)
		assert.Equal(t, 2, store.Snapshot().Len())
	})

	t.Run("OrderFailureKeepsCart", func(t *testing.T) {
		store := filledCart()
		before := store.Snapshot()
		orders := new(MockOrderService)
		payments := new(MockPaymentRepository)
		svc := NewService(store, orders, payments)

		boom := errors.New("network down")
		orders.On("Create", mock.Anything, mock.Anything).Return(nil, boom)

		_, err := svc.Submit(ctx, validForm())
		assert.ErrorIs(t, err, boom)
		assert.False(t, IsPartialFailure(err))
		assert.Equal(t, before.Lines(), store.Snapshot().Lines())
		assert.True(t, before.Total().Equal(store.Total()))
		assert.Empty(t, payments.Calls)
	})

	t.Run("MissingOrderIDKeepsCart", func(t *testing.T) {
		store := filledCart()
		orders := new(MockOrderService)
		payments := new(MockPaymentRepository)
		svc := NewService(store, orders, payments)

		orders.On("Create", mock.Anything, mock.Anything).Return(nil, order.ErrMissingOrderID)

		_, err := svc.Submit(ctx, validForm())
		assert.ErrorIs(t, err, order.ErrMissingOrderID)
		assert.Equal(t, 2, store.Snapshot().Len())
		assert.Empty(t, payments.Calls)
	})

	t.Run("PaymentFailureIsPartial", func(t *testing.T) {
		store := filledCart()
		orders := new(MockOrderService)
		payments := new(MockPaymentRepository)
		svc := NewService(store, orders, payments)

		created := &order.Order{ID: "o-9"}
		boom := errors.New("payments table unavailable")
		orders.On("Create", mock.Anything, mock.Anything).Return(created, nil)
		payments.On("Create", mock.Anything, mock.Anything).Return(nil, boom)

		receipt, err := svc.Submit(ctx, validForm())
		assert.Nil(t, receipt)
		assert.ErrorIs(t, err, boom)
		assert.True(t, IsPartialFailure(err))

		var pe *PartialFailureError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "o-9", pe.Order.ID)
		assert.Contains(t, pe.Error(), "o-9")
		assert.True(t, store.Snapshot().IsEmpty(), "placed order must not be resubmitted from the same cart")
	})
}
