package orders

import (
	"context"
	"net/http"
	"time"

	"vitrin/db"
	"vitrin/models"
	"vitrin/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GET /api/orders — the caller's orders, newest first.
func GetMyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().SetSkip(skip).SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	filter := bson.M{"userId": userID}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["deliveryStatus"] = status
	}

	orders, err := utils.FindAndDecode[models.Order](ctx, db.OrdersCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, orders)
}

// GET /api/orders/order/:orderid
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var order models.Order
	err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": ps.ByName("orderid")}).Decode(&order)
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	if order.UserID != userID && !isStaff(r) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, order)
}

// GET /api/staff/orders?status= — staff listing across users.
func GetOrdersByStatus(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 50, 200)
	opts := options.Find().SetSkip(skip).SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["deliveryStatus"] = status
	}

	orders, err := utils.FindAndDecode[models.Order](ctx, db.OrdersCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, orders)
}

func isStaff(r *http.Request) bool {
	for _, role := range utils.GetRolesFromRequest(r) {
		if role == "admin" || role == "employee" {
			return true
		}
	}
	return false
}
