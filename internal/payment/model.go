package payment

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Method is how the customer pays for an order.
type Method string

const (
	MethodPix  Method = "pix"
	MethodCash Method = "cash"
	MethodCard Method = "card"
	MethodMock Method = "mock"
)

const StatusPending = "pending"

// wire values stored in payments.method
var wireNames = map[Method]string{
	MethodPix:  "pix",
	MethodCash: "dinheiro",
	MethodCard: "cartao",
	MethodMock: "mock",
}

func (m Method) Valid() bool {
	_, ok := wireNames[m]
	return ok
}

// Wire is the value the backend stores for m.
func (m Method) Wire() string {
	return wireNames[m]
}

// ParseMethod accepts either the method name or its stored value,
// case-insensitively.
func ParseMethod(s string) (Method, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, wire := range wireNames {
		if s == string(m) || s == wire {
			return m, nil
		}
	}
	return "", ErrUnknownMethod
}

// Record is the payment row created after an order is accepted.
type Record struct {
	OrderID string
	Method  Method
	Amount  decimal.Decimal
}

type Payment struct {
	ID      string
	OrderID string
	Method  Method
	Amount  decimal.Decimal
	Status  string
}

type row struct {
	ID      string          `json:"id,omitempty"`
	OrderID string          `json:"order_id"`
	Method  string          `json:"method"`
	Amount  decimal.Decimal `json:"amount"`
	Status  string          `json:"status,omitempty"`
}
