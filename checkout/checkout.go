package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"vitrin/catalog"
	"vitrin/db"
	"vitrin/models"
	"vitrin/mq"
	"vitrin/orders"
	"vitrin/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type checkoutRequest struct {
	PaymentMethod string       `json:"paymentMethod"`
	Card          *CardDetails `json:"card,omitempty"`
}

type entryResult struct {
	ProductID string `json:"productId"`
	OrderID   string `json:"orderId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Seams over the driver calls so the pipeline ordering and compensation
// can be exercised without a live store.
var (
	reserveStock = catalog.ReserveStock
	releaseStock = catalog.ReleaseStock
	insertOrder  = func(ctx context.Context, order models.Order) error {
		_, err := db.OrdersCollection.InsertOne(ctx, order)
		return err
	}
	deleteEntry = func(ctx context.Context, source *mongo.Collection, entryID string) error {
		_, err := source.DeleteOne(ctx, bson.M{"entryid": entryID})
		return err
	}
)

// processEntry runs the per-entry pipeline: reserve stock, insert the
// order, then delete the source entry. If the order insert fails, exactly
// the reserved units are released; the source entry is deleted only after
// the order write succeeded.
func processEntry(ctx context.Context, entry models.CartEntry, paymentMethod string, source *mongo.Collection) (string, error) {
	if !catalog.ValidCategory(entry.Category) {
		return "", fmt.Errorf("unknown category %q", entry.Category)
	}

	total, err := ComputeTotal(entry.UnitPrice, entry.Quantity, 1)
	if err != nil {
		return "", err
	}

	reserved, err := reserveStock(ctx, entry.Category, entry.ProductID, entry.Quantity)
	if err != nil {
		return "", err
	}

	now := time.Now()
	order := models.Order{
		OrderID:           "ord_" + utils.GenerateRandomString(16),
		UserID:            entry.UserID,
		ProductID:         entry.ProductID,
		Title:             entry.Title,
		ImageURL:          entry.ImageURL,
		Category:          entry.Category,
		UnitPrice:         entry.UnitPrice,
		Quantity:          entry.Quantity,
		Total:             total,
		PaymentMethod:     paymentMethod,
		DeliveryStatus:    models.StatusOrdered,
		OrderDate:         now.Format("02-01-2006"),
		NotificationCount: 1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := insertOrder(ctx, order); err != nil {
		if rerr := releaseStock(ctx, entry.Category, entry.ProductID, reserved); rerr != nil {
			log.Printf("checkout: stock release failed for %s: %v", entry.ProductID, rerr)
		}
		return "", fmt.Errorf("order write failed: %w", err)
	}

	// The order stands from here on; a failed source delete leaves a stale
	// entry, never a missing order.
	if err := deleteEntry(ctx, source, entry.EntryID); err != nil {
		return order.OrderID, fmt.Errorf("entry cleanup failed: %w", err)
	}

	go mq.Emit(context.Background(), "order-placed", models.Event{
		Name:      "order-placed",
		UserID:    entry.UserID,
		EntityID:  order.OrderID,
		ProductID: entry.ProductID,
		Title:     "Order placed",
		Message:   fmt.Sprintf("Your order for %s is confirmed.", entry.Title),
	})
	orders.BroadcastOrderUpdate(entry.UserID, order.OrderID, models.StatusOrdered)

	return order.OrderID, nil
}

// POST /api/checkout/cart
func CheckoutCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if err := ValidatePayment(req.PaymentMethod, req.Card); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, err := utils.FindAndDecode[models.CartEntry](ctx, db.CartCollection, bson.M{"userId": userID})
	if err != nil {
		http.Error(w, "Could not read cart", http.StatusInternalServerError)
		return
	}
	if len(entries) == 0 {
		http.Error(w, "Cart is empty", http.StatusBadRequest)
		return
	}

	results := make([]entryResult, 0, len(entries))
	failed := 0
	for _, entry := range entries {
		orderID, err := processEntry(ctx, entry, req.PaymentMethod, db.CartCollection)
		res := entryResult{ProductID: entry.ProductID, OrderID: orderID}
		if err != nil {
			log.Printf("CheckoutCart: entry %s failed: %v", entry.ProductID, err)
			res.Error = err.Error()
			failed++
		}
		results = append(results, res)
	}

	status := http.StatusOK
	if failed == len(entries) {
		status = http.StatusBadGateway
	} else if failed > 0 {
		status = http.StatusMultiStatus
	}
	utils.RespondWithJSON(w, status, utils.M{"results": results})
}

// POST /api/checkout/buynow/:entryid
func CheckoutBuyNow(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if err := ValidatePayment(req.PaymentMethod, req.Card); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var entry models.CartEntry
	err := db.BuyNowCollection.FindOne(ctx, bson.M{
		"entryid": ps.ByName("entryid"),
		"userId":  userID,
	}).Decode(&entry)
	if err != nil {
		http.Error(w, "Entry not found", http.StatusNotFound)
		return
	}

	orderID, err := processEntry(ctx, entry, req.PaymentMethod, db.BuyNowCollection)
	if err != nil {
		log.Printf("CheckoutBuyNow: entry %s failed: %v", entry.EntryID, err)
		utils.RespondWithJSON(w, http.StatusBadGateway, utils.M{
			"results": []entryResult{{ProductID: entry.ProductID, OrderID: orderID, Error: err.Error()}},
		})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"results": []entryResult{{ProductID: entry.ProductID, OrderID: orderID}},
	})
}
