package product

import "github.com/shopspring/decimal"

type Ingredient struct {
	Name  string `json:"name"`
	Grams int    `json:"grams"`
}

// Product is one marmita in the catalog.
type Product struct {
	ID          string
	Name        string
	Description *string
	Price       decimal.Decimal
	ImageURL    *string
	CategoryID  *string
	Available   bool
	Ingredients []Ingredient
}

// Input carries the editable fields of a product for admin writes.
type Input struct {
	Name        string
	Description *string
	Price       decimal.Decimal
	ImageURL    *string
	CategoryID  *string
	Available   bool
	Ingredients []Ingredient
}

// row is the table shape of `marmitas`.
type row struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    *string         `json:"image_url,omitempty"`
	CategoryID  *string         `json:"category_id,omitempty"`
	Available   *bool           `json:"available,omitempty"`
	Ingredients []Ingredient    `json:"ingredients"`
}
