package models

import (
	"strconv"
	"strings"

	"fakturierung-local/utils"

	"github.com/google/uuid"
)

// ProductField names an editable column of a product row.
type ProductField string

const (
	ProductName     ProductField = "name"
	ProductQuantity ProductField = "quantity"
	ProductPrice    ProductField = "price"
)

// Product is one line of an invoice. Subtotal is derived from Quantity and
// Price and is overwritten by every setter and by Recalculate.
type Product struct {
	Id       string  `json:"id"`
	Name     string  `json:"name" validate:"required"`
	Quantity float64 `json:"quantity" validate:"finite,gte=1"`
	Price    float64 `json:"price" validate:"finite,gte=0"`
	Subtotal float64 `json:"subtotal"`
}

// NewProduct returns an empty row with a fresh id.
func NewProduct() Product {
	return Product{
		Id:       uuid.NewString(),
		Quantity: 1,
	}
}

func (product *Product) SetQuantity(quantity float64) {
	product.Quantity = quantity
	product.Recalculate()
}

func (product *Product) SetPrice(price float64) {
	product.Price = price
	product.Recalculate()
}

// Recalculate derives the subtotal from the full current row.
func (product *Product) Recalculate() {
	product.Subtotal = utils.LineTotal(product.Quantity, product.Price)
}

// Edit applies raw form input to a field. Numeric input that does not parse
// to a finite number ("abc", "NaN", "Infinity") is stored as 0.
func (product *Product) Edit(field ProductField, raw string) bool {
	switch field {
	case ProductName:
		product.Name = raw
	case ProductQuantity:
		product.SetQuantity(parseAmount(raw))
	case ProductPrice:
		product.SetPrice(parseAmount(raw))
	default:
		return false
	}
	return true
}

func parseAmount(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || !utils.Finite(v) {
		return 0
	}
	return v
}
