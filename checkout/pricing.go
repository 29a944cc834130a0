package checkout

import "errors"

// Pricing constants, minor currency units. Compiled in, as the storefront
// has a single region.
const (
	DeliveryFeePerItem int64 = 100
	FlatTax            int64 = 180
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrNegativePrice   = errors.New("unit price cannot be negative")
)

// ComputeTotal prices one order line:
// unitPrice*quantity + DeliveryFeePerItem*itemsInOrder + FlatTax.
func ComputeTotal(unitPrice int64, quantity, itemsInOrder int) (int64, error) {
	if quantity < 1 || itemsInOrder < 1 {
		return 0, ErrInvalidQuantity
	}
	if unitPrice < 0 {
		return 0, ErrNegativePrice
	}
	return unitPrice*int64(quantity) + DeliveryFeePerItem*int64(itemsInOrder) + FlatTax, nil
}
