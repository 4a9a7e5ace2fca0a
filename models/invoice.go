package models

import (
	"strings"
	"time"

	"fakturierung-local/utils"
)

// DateLayout is the stored form of Invoice.Date.
const DateLayout = "2006-01-02"

// Invoice is a stored invoice. Field order matches the persisted JSON.
type Invoice struct {
	Id       string    `json:"id"`
	Number   string    `json:"number" validate:"notblank"`
	Date     string    `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Customer string    `json:"customer" validate:"notblank"`
	Products []Product `json:"products" validate:"min=1,dive"`
	Total    float64   `json:"total"`
}

// NewDraft returns the state of a blank invoice form: dated on the given day
// with a single empty product row.
func NewDraft(today time.Time) Invoice {
	return Invoice{
		Date:     today.Format(DateLayout),
		Products: []Product{NewProduct()},
	}
}

// AddProduct appends an empty row and returns it.
func (invoice *Invoice) AddProduct() Product {
	p := NewProduct()
	invoice.Products = append(invoice.Products, p)
	return p
}

// RemoveProduct drops the row with the given id. The last remaining row is
// never removed.
func (invoice *Invoice) RemoveProduct(id string) bool {
	if len(invoice.Products) <= 1 {
		return false
	}
	for i, p := range invoice.Products {
		if p.Id == id {
			invoice.Products = append(invoice.Products[:i:i], invoice.Products[i+1:]...)
			return true
		}
	}
	return false
}

// EditProduct applies raw input to one field of the row with the given id.
func (invoice *Invoice) EditProduct(id string, field ProductField, raw string) bool {
	for i := range invoice.Products {
		if invoice.Products[i].Id == id {
			return invoice.Products[i].Edit(field, raw)
		}
	}
	return false
}

// Recalculate refreshes every subtotal and the total.
func (invoice *Invoice) Recalculate() {
	subtotals := make([]float64, len(invoice.Products))
	for i := range invoice.Products {
		invoice.Products[i].Recalculate()
		subtotals[i] = invoice.Products[i].Subtotal
	}
	invoice.Total = utils.Sum(subtotals...)
}

// Normalize trims the free-text header fields the way they are stored.
func (invoice *Invoice) Normalize() {
	invoice.Number = strings.TrimSpace(invoice.Number)
	invoice.Customer = strings.TrimSpace(invoice.Customer)
}

// Clone returns a deep copy so callers can edit drafts without aliasing the
// product slice of a stored record.
func (invoice Invoice) Clone() Invoice {
	out := invoice
	out.Products = append([]Product(nil), invoice.Products...)
	return out
}
