package checkout

import (
	"context"
	"errors"
	"testing"

	"vitrin/models"

	"go.mongodb.org/mongo-driver/mongo"
)

func stubPipeline() func() {
	rs, rl, io, de := reserveStock, releaseStock, insertOrder, deleteEntry
	return func() {
		reserveStock, releaseStock, insertOrder, deleteEntry = rs, rl, io, de
	}
}

func testEntry(quantity int) models.CartEntry {
	return models.CartEntry{
		EntryID:   "cart_abc123",
		UserID:    "usr_buyer",
		ProductID: "prd_phone",
		Title:     "Phone",
		Category:  "Mobile",
		UnitPrice: 500,
		Quantity:  quantity,
	}
}

func TestProcessEntryReleasesExactlyReservedStock(t *testing.T) {
	defer stubPipeline()()

	released := -1
	deleted := false
	reserveStock = func(ctx context.Context, category, productID string, quantity int) (int, error) {
		return 3, nil // only 3 of the 5 requested were in stock
	}
	releaseStock = func(ctx context.Context, category, productID string, quantity int) error {
		released = quantity
		return nil
	}
	insertOrder = func(ctx context.Context, order models.Order) error {
		return errors.New("write failed")
	}
	deleteEntry = func(ctx context.Context, source *mongo.Collection, entryID string) error {
		deleted = true
		return nil
	}

	if _, err := processEntry(context.Background(), testEntry(5), PaymentCashOnDelivery, nil); err == nil {
		t.Fatal("expected error from failed order write")
	}
	if released != 3 {
		t.Fatalf("expected release of the 3 reserved units, got %d", released)
	}
	if deleted {
		t.Fatal("cart entry must survive a failed order write")
	}
}

func TestProcessEntryReleasesNothingWhenNothingReserved(t *testing.T) {
	defer stubPipeline()()

	released := -1
	reserveStock = func(ctx context.Context, category, productID string, quantity int) (int, error) {
		return 0, nil // product already out of stock
	}
	releaseStock = func(ctx context.Context, category, productID string, quantity int) error {
		released = quantity
		return nil
	}
	insertOrder = func(ctx context.Context, order models.Order) error {
		return errors.New("write failed")
	}
	deleteEntry = func(ctx context.Context, source *mongo.Collection, entryID string) error {
		return nil
	}

	if _, err := processEntry(context.Background(), testEntry(1), PaymentCashOnDelivery, nil); err == nil {
		t.Fatal("expected error from failed order write")
	}
	if released > 0 {
		t.Fatalf("released %d units that were never reserved", released)
	}
}

func TestProcessEntryDeletesEntryAfterOrderWrite(t *testing.T) {
	defer stubPipeline()()

	var inserted models.Order
	var deletedEntry string
	released := false
	reserveStock = func(ctx context.Context, category, productID string, quantity int) (int, error) {
		return quantity, nil
	}
	releaseStock = func(ctx context.Context, category, productID string, quantity int) error {
		released = true
		return nil
	}
	insertOrder = func(ctx context.Context, order models.Order) error {
		inserted = order
		return nil
	}
	deleteEntry = func(ctx context.Context, source *mongo.Collection, entryID string) error {
		if inserted.OrderID == "" {
			t.Fatal("entry deleted before the order write")
		}
		deletedEntry = entryID
		return nil
	}

	orderID, err := processEntry(context.Background(), testEntry(2), PaymentCashOnDelivery, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orderID == "" || orderID != inserted.OrderID {
		t.Fatalf("returned order id %q does not match inserted %q", orderID, inserted.OrderID)
	}
	if deletedEntry != "cart_abc123" {
		t.Fatalf("expected source entry deleted, got %q", deletedEntry)
	}
	if released {
		t.Fatal("stock released on the success path")
	}
	if inserted.Total != 500*2+100+180 {
		t.Fatalf("unexpected order total %d", inserted.Total)
	}
	if inserted.DeliveryStatus != models.StatusOrdered || inserted.NotificationCount != 1 {
		t.Fatalf("unexpected new-order fields: %+v", inserted)
	}
}
