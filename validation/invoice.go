package validation

import (
	"math"
	"regexp"
	"strconv"

	"fakturierung-local/models"

	"github.com/go-playground/validator/v10"
)

const (
	MsgNumberRequired   = "Invoice # is required."
	MsgCustomerRequired = "Customer name is required."
	MsgDateFormat       = "Date must be in YYYY-MM-DD format."
	MsgProductsRequired = "At least one product is required."
	MsgRequired         = "Required"
	MsgQuantityMin      = "Must be ≥ 1"
	MsgPriceMin         = "Must be ≥ 0"
	MsgNotANumber       = "Must be a number"
	MsgAmountTooLarge   = "Amount is too large"
)

var productField = regexp.MustCompile(`^products\[(\d+)\]\.(name|quantity|price)$`)

var productKeys = map[string]struct{ prefix, msg string }{
	"name":     {"prod-name-", MsgRequired},
	"quantity": {"prod-qty-", MsgQuantityMin},
	"price":    {"prod-price-", MsgPriceMin},
}

// Invoice checks a draft before it may be saved. Keys are "number",
// "customer", "date", "products" and "prod-name-i", "prod-qty-i",
// "prod-price-i" for row i. The draft is not modified and the stored
// collection is not consulted, so duplicate numbers pass.
func Invoice(draft *models.Invoice) Errors {
	errs := fieldErrors(draft, func(field string, fe validator.FieldError) (string, string) {
		switch field {
		case "number":
			return "number", MsgNumberRequired
		case "customer":
			return "customer", MsgCustomerRequired
		case "date":
			return "date", MsgDateFormat
		case "products":
			return "products", MsgProductsRequired
		}
		if m := productField.FindStringSubmatch(field); m != nil {
			k := productKeys[m[2]]
			if fe.Tag() == "finite" {
				return k.prefix + m[1], MsgNotANumber
			}
			return k.prefix + m[1], k.msg
		}
		return field, fe.Tag()
	})
	if len(draft.Products) == 0 {
		errs["products"] = MsgProductsRequired
	}
	checkAmounts(draft.Products, errs)
	return errs
}

// checkAmounts rejects rows whose subtotal, and invoices whose total, would
// not fit a float64.
func checkAmounts(products []models.Product, errs Errors) {
	var total float64
	for i, p := range products {
		line := p.Quantity * p.Price
		if math.IsInf(line, 0) {
			key := "prod-price-" + strconv.Itoa(i)
			if _, seen := errs[key]; !seen {
				errs[key] = MsgAmountTooLarge
			}
			continue
		}
		total += line
	}
	if math.IsInf(total, 0) {
		if _, seen := errs["products"]; !seen {
			errs["products"] = MsgAmountTooLarge
		}
	}
}
