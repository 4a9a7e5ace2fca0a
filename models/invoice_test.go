package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductSubtotalFollowsEdits(t *testing.T) {
	p := NewProduct()
	assert.NotEmpty(t, p.Id)
	assert.Equal(t, 1.0, p.Quantity)
	assert.Equal(t, 0.0, p.Subtotal)

	p.SetPrice(150.5)
	assert.Equal(t, 150.5, p.Subtotal)

	p.SetQuantity(3)
	assert.Equal(t, 451.5, p.Subtotal)

	p.Price = 10
	p.Subtotal = 999
	p.Recalculate()
	assert.Equal(t, 30.0, p.Subtotal)
}

func TestProductEditParsesRawInput(t *testing.T) {
	p := NewProduct()
	require.True(t, p.Edit(ProductPrice, " 12.5 "))
	require.True(t, p.Edit(ProductQuantity, "2"))
	assert.Equal(t, 25.0, p.Subtotal)

	require.True(t, p.Edit(ProductQuantity, "abc"))
	assert.Equal(t, 0.0, p.Quantity)
	assert.Equal(t, 0.0, p.Subtotal)

	require.True(t, p.Edit(ProductName, "Widget"))
	assert.Equal(t, "Widget", p.Name)

	assert.False(t, p.Edit(ProductField("subtotal"), "5"))
}

func TestProductEditStoresNonFiniteInputAsZero(t *testing.T) {
	for _, raw := range []string{"NaN", "Infinity", "inf", "-Inf", "1e400"} {
		t.Run(raw, func(t *testing.T) {
			p := NewProduct()
			p.SetPrice(10)
			require.NotPanics(t, func() {
				require.True(t, p.Edit(ProductPrice, raw))
			})
			assert.Equal(t, 0.0, p.Price)
			assert.Equal(t, 0.0, p.Subtotal)
		})
	}
}

func TestInvoiceRecalculateWithOversizedRows(t *testing.T) {
	inv := Invoice{Products: []Product{
		{Id: "a", Quantity: 1e200, Price: 1e200},
		{Id: "b", Quantity: 2, Price: 5},
	}}
	require.NotPanics(t, inv.Recalculate)
	assert.Equal(t, 0.0, inv.Products[0].Subtotal)
	assert.Equal(t, 10.0, inv.Total)
}

func TestNewDraft(t *testing.T) {
	draft := NewDraft(time.Date(2025, 7, 9, 15, 0, 0, 0, time.UTC))
	assert.Equal(t, "2025-07-09", draft.Date)
	assert.Empty(t, draft.Id)
	require.Len(t, draft.Products, 1)
	assert.Equal(t, 1.0, draft.Products[0].Quantity)
}

func TestInvoiceRows(t *testing.T) {
	draft := NewDraft(time.Now())
	first := draft.Products[0].Id

	assert.False(t, draft.RemoveProduct(first), "last row must stay")

	second := draft.AddProduct()
	assert.NotEqual(t, first, second.Id)
	require.Len(t, draft.Products, 2)

	require.True(t, draft.EditProduct(second.Id, ProductPrice, "4"))
	assert.Equal(t, 4.0, draft.Products[1].Subtotal)
	assert.False(t, draft.EditProduct("missing", ProductPrice, "4"))

	assert.True(t, draft.RemoveProduct(first))
	require.Len(t, draft.Products, 1)
	assert.Equal(t, second.Id, draft.Products[0].Id)
	assert.False(t, draft.RemoveProduct("missing"))
}

func TestInvoiceRecalculate(t *testing.T) {
	inv := Invoice{Products: []Product{
		{Id: "a", Name: "A", Quantity: 1, Price: 100, Subtotal: 1},
		{Id: "b", Name: "B", Quantity: 1, Price: 250.75},
	}}
	inv.Recalculate()
	assert.Equal(t, 100.0, inv.Products[0].Subtotal)
	assert.Equal(t, 250.75, inv.Products[1].Subtotal)
	assert.Equal(t, 350.75, inv.Total)
}

func TestInvoiceNormalizeAndClone(t *testing.T) {
	inv := Invoice{Number: "  INV-0001 ", Customer: "\tAcme ", Products: []Product{{Id: "a"}}}
	inv.Normalize()
	assert.Equal(t, "INV-0001", inv.Number)
	assert.Equal(t, "Acme", inv.Customer)

	cp := inv.Clone()
	cp.Products[0].Name = "changed"
	assert.Empty(t, inv.Products[0].Name)
}

func TestUserSameEmail(t *testing.T) {
	u := User{Email: "a@b.com"}
	assert.True(t, u.SameEmail("A@B.com"))
	assert.True(t, u.SameEmail(" a@b.com "))
	assert.False(t, u.SameEmail("x@y.com"))
}
