package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"vitrin/db"
	"vitrin/models"
	"vitrin/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AddToCart upserts the entry for (user, product): a later add replaces
// the quantity and price snapshot rather than duplicating the entry.
func AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var entry models.CartEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Println("AddToCart decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	entry.UserID = userID

	if entry.ProductID == "" || entry.Title == "" || entry.Category == "" ||
		entry.Quantity < 1 || entry.UnitPrice < 0 {
		http.Error(w, "Missing or invalid fields", http.StatusBadRequest)
		return
	}

	filter := bson.M{"userId": entry.UserID, "productId": entry.ProductID}
	update := bson.M{
		"$set": bson.M{
			"title":       entry.Title,
			"imageUrl":    entry.ImageURL,
			"description": entry.Description,
			"unitPrice":   entry.UnitPrice,
			"stock":       entry.Stock,
			"category":    entry.Category,
			"quantity":    entry.Quantity,
		},
		"$setOnInsert": bson.M{
			"entryid": "cart_" + utils.GenerateRandomString(12),
			"addedAt": time.Now(),
		},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := db.CartCollection.UpdateOne(ctx, filter, update, opts); err != nil {
		log.Println("AddToCart UpdateOne error:", err)
		http.Error(w, "Failed to add to cart", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

// GetCart returns all cart entries for the user, optional ?category= filter
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	filter := bson.M{"userId": userID}
	if cat := r.URL.Query().Get("category"); cat != "" {
		filter["category"] = cat
	}

	entries, err := utils.FindAndDecode[models.CartEntry](ctx, db.CartCollection, filter)
	if err != nil {
		log.Println("GetCart error:", err)
		http.Error(w, "Could not retrieve cart", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, entries)
}

// RemoveFromCart deletes one entry by product id.
func RemoveFromCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	res, err := db.CartCollection.DeleteOne(ctx, bson.M{
		"userId":    userID,
		"productId": ps.ByName("productid"),
	})
	if err != nil {
		http.Error(w, "Failed to remove from cart", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Item not found in cart", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
