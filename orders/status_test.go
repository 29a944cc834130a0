package orders

import (
	"context"
	"errors"
	"testing"

	"vitrin/models"
)

func stubStatusStore() func() {
	fo, at := findOrder, applyTransition
	return func() { findOrder, applyTransition = fo, at }
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{models.StatusOrdered, models.StatusOnTheWay, true},
		{models.StatusOrdered, models.StatusCancelled, true},
		{models.StatusOnTheWay, models.StatusDelivered, true},

		{models.StatusOrdered, models.StatusDelivered, false},
		{models.StatusOnTheWay, models.StatusCancelled, false},
		{models.StatusOnTheWay, models.StatusOrdered, false},
		{models.StatusDelivered, models.StatusOrdered, false},
		{models.StatusDelivered, models.StatusOnTheWay, false},
		{models.StatusCancelled, models.StatusOrdered, false},
		{models.StatusCancelled, models.StatusDelivered, false},
		{"Unknown", models.StatusDelivered, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	if len(transitions[models.StatusDelivered]) != 0 {
		t.Fatal("Delivered must be terminal")
	}
	if len(transitions[models.StatusCancelled]) != 0 {
		t.Fatal("Cancelled must be terminal")
	}
}

func TestAdvanceStatusApplies(t *testing.T) {
	defer stubStatusStore()()

	var gotFrom, gotTo string
	findOrder = func(ctx context.Context, orderID string) (models.Order, error) {
		return models.Order{OrderID: orderID, UserID: "usr_owner", DeliveryStatus: models.StatusOrdered}, nil
	}
	applyTransition = func(ctx context.Context, orderID, from, to string) (int64, error) {
		gotFrom, gotTo = from, to
		return 1, nil
	}

	order, err := advanceStatus(context.Background(), "ord_1", models.StatusOnTheWay, "usr_staff", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.DeliveryStatus != models.StatusOnTheWay {
		t.Fatalf("expected On The Way, got %q", order.DeliveryStatus)
	}
	if gotFrom != models.StatusOrdered || gotTo != models.StatusOnTheWay {
		t.Fatalf("write guarded on %q -> %q", gotFrom, gotTo)
	}
}

func TestAdvanceStatusConflictOnConcurrentChange(t *testing.T) {
	defer stubStatusStore()()

	findOrder = func(ctx context.Context, orderID string) (models.Order, error) {
		return models.Order{OrderID: orderID, UserID: "usr_owner", DeliveryStatus: models.StatusOrdered}, nil
	}
	applyTransition = func(ctx context.Context, orderID, from, to string) (int64, error) {
		return 0, nil // another transition won the race
	}

	_, err := advanceStatus(context.Background(), "ord_1", models.StatusOnTheWay, "usr_staff", false)
	if !errors.Is(err, errBadTransition) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestAdvanceStatusOwnerGate(t *testing.T) {
	defer stubStatusStore()()

	findOrder = func(ctx context.Context, orderID string) (models.Order, error) {
		return models.Order{OrderID: orderID, UserID: "usr_owner", DeliveryStatus: models.StatusOrdered}, nil
	}
	applyTransition = func(ctx context.Context, orderID, from, to string) (int64, error) {
		t.Fatal("write attempted for a non-owner")
		return 0, nil
	}

	_, err := advanceStatus(context.Background(), "ord_1", models.StatusCancelled, "usr_other", true)
	if !errors.Is(err, errForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
