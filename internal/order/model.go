package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Item is an order line as persisted inside the order row.
type Item struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Quantity int
}

type Order struct {
	ID              string
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	Items           []Item
	Total           decimal.Decimal
	Status          Status
	Notes           *string
	Priority        int
	CreatedAt       *time.Time
}

// NewOrder is what the storefront submits. CustomerPhone holds digits only.
type NewOrder struct {
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	Items           []Item
	Total           decimal.Decimal
	Notes           *string
}

type itemRow struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type row struct {
	ID              string          `json:"id,omitempty"`
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
	CustomerAddress string          `json:"customer_address"`
	Items           []itemRow       `json:"items"`
	Total           decimal.Decimal `json:"total"`
	Status          string          `json:"status,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	Priority        *int            `json:"priority,omitempty"`
	CreatedAt       *time.Time      `json:"created_at,omitempty"`
}

type statusPatch struct {
	Status string `json:"status"`
}

type priorityPatch struct {
	Priority int `json:"priority"`
}
