package orders

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"vitrin/db"
	"vitrin/models"
	"vitrin/mq"
	"vitrin/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// transitions is the full delivery-status machine. Delivered and
// Cancelled are terminal.
var transitions = map[string][]string{
	models.StatusOrdered:  {models.StatusOnTheWay, models.StatusCancelled},
	models.StatusOnTheWay: {models.StatusDelivered},
}

// CanTransition reports whether from -> to is a legal move.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Seams over the driver calls so the transition rules can be exercised
// without a live store.
var (
	findOrder = func(ctx context.Context, orderID string) (models.Order, error) {
		var order models.Order
		err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order)
		return order, err
	}
	applyTransition = func(ctx context.Context, orderID, from, to string) (int64, error) {
		res, err := db.OrdersCollection.UpdateOne(ctx,
			bson.M{"orderid": orderID, "deliveryStatus": from},
			bson.M{
				"$set": bson.M{"deliveryStatus": to, "updatedAt": time.Now()},
				"$inc": bson.M{"notificationCount": 1},
			},
		)
		if err != nil {
			return 0, err
		}
		return res.MatchedCount, nil
	}
)

// advanceStatus applies one transition to an order, enforcing the
// machine and ownership rules, then bumps the notification counter and
// broadcasts the change. The write is guarded on the status the order
// was read at, so a concurrent transition surfaces as a conflict instead
// of silently standing.
func advanceStatus(ctx context.Context, orderID, to string, byUserID string, ownerOnly bool) (models.Order, error) {
	order, err := findOrder(ctx, orderID)
	if err != nil {
		return order, errNotFound
	}

	if ownerOnly && order.UserID != byUserID {
		return order, errForbidden
	}
	if !CanTransition(order.DeliveryStatus, to) {
		return order, fmt.Errorf("%w: %s -> %s", errBadTransition, order.DeliveryStatus, to)
	}

	matched, err := applyTransition(ctx, order.OrderID, order.DeliveryStatus, to)
	if err != nil {
		return order, fmt.Errorf("status update failed: %w", err)
	}
	if matched == 0 {
		return order, fmt.Errorf("%w: %s changed concurrently", errBadTransition, order.OrderID)
	}

	order.DeliveryStatus = to
	BroadcastOrderUpdate(order.UserID, order.OrderID, to)
	go mq.Emit(context.Background(), "order-status-changed", models.Event{
		Name:      "order-status-changed",
		UserID:    order.UserID,
		EntityID:  order.OrderID,
		ProductID: order.ProductID,
		Title:     "Order update",
		Message:   fmt.Sprintf("Your order for %s is now %s.", order.Title, to),
	})
	return order, nil
}

var (
	errNotFound      = fmt.Errorf("order not found")
	errForbidden     = fmt.Errorf("not your order")
	errBadTransition = fmt.Errorf("illegal status transition")
)

func statusHandler(to string, ownerOnly bool) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		userID := utils.GetUserIDFromRequest(r)
		if userID == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		order, err := advanceStatus(ctx, ps.ByName("orderid"), to, userID, ownerOnly)
		switch {
		case err == nil:
			utils.RespondWithJSON(w, http.StatusOK, order)
		case err == errNotFound:
			http.Error(w, err.Error(), http.StatusNotFound)
		case err == errForbidden:
			http.Error(w, err.Error(), http.StatusForbidden)
		default:
			http.Error(w, err.Error(), http.StatusConflict)
		}
	}
}

// MarkOnTheWay and MarkDelivered are staff actions; route-level role
// gates apply. MarkCancelled is the owner's, and only from Ordered.
var (
	MarkOnTheWay  = statusHandler(models.StatusOnTheWay, false)
	MarkDelivered = statusHandler(models.StatusDelivered, false)
	MarkCancelled = statusHandler(models.StatusCancelled, true)
)
