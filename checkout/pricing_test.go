package checkout

import "testing"

func TestComputeTotal(t *testing.T) {
	// 500*2 + 100*1 + 180
	got, err := ComputeTotal(500, 2, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1280 {
		t.Fatalf("expected 1280, got %d", got)
	}
}

func TestComputeTotalMultiItemOrder(t *testing.T) {
	// the delivery fee scales with distinct items, not with quantity
	got, err := ComputeTotal(1000, 1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1000+300+180 {
		t.Fatalf("expected %d, got %d", 1000+300+180, got)
	}
}

func TestComputeTotalFreeProduct(t *testing.T) {
	got, err := ComputeTotal(0, 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != DeliveryFeePerItem+FlatTax {
		t.Fatalf("expected fees only, got %d", got)
	}
}

func TestComputeTotalRejectsBadInput(t *testing.T) {
	if _, err := ComputeTotal(500, 0, 1); err != ErrInvalidQuantity {
		t.Fatalf("quantity 0: expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := ComputeTotal(500, -2, 1); err != ErrInvalidQuantity {
		t.Fatalf("negative quantity: expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := ComputeTotal(500, 1, 0); err != ErrInvalidQuantity {
		t.Fatalf("zero items: expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := ComputeTotal(-1, 1, 1); err != ErrNegativePrice {
		t.Fatalf("negative price: expected ErrNegativePrice, got %v", err)
	}
}
