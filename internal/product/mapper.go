package product

import (
	"strings"

	"marmita-storefront/internal/utils"
)

func mapRowToProduct(r row) Product {
	available := true
	if r.Available != nil {
		available = *r.Available
	}
	return Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		CategoryID:  r.CategoryID,
		Available:   available,
		Ingredients: r.Ingredients,
	}
}

func mapRowsToProducts(rows []row) []Product {
	products := make([]Product, 0, len(rows))
	for _, r := range rows {
		products = append(products, mapRowToProduct(r))
	}
	return products
}

func mapInputToRow(in Input) row {
	available := in.Available
	ingredients := in.Ingredients
	if ingredients == nil {
		ingredients = []Ingredient{}
	}
	return row{
		Name:        strings.TrimSpace(in.Name),
		Description: utils.NilIfBlank(utils.PtrString(in.Description)),
		Price:       in.Price,
		ImageURL:    utils.NilIfBlank(utils.PtrString(in.ImageURL)),
		CategoryID:  utils.NilIfBlank(utils.PtrString(in.CategoryID)),
		Available:   &available,
		Ingredients: ingredients,
	}
}
