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
)

// BuyNow records a single-item express-checkout entry, bypassing the cart.
// The entry is deleted when its checkout completes.
func BuyNow(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var entry models.CartEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Println("BuyNow decode error:", err)
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

	entry.EntryID = "buy_" + utils.GenerateRandomString(12)
	entry.AddedAt = time.Now()

	if _, err := db.BuyNowCollection.InsertOne(ctx, entry); err != nil {
		log.Println("BuyNow InsertOne error:", err)
		http.Error(w, "Failed to create buy-now entry", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]string{"entryId": entry.EntryID})
}

// GetBuyNow returns one pending buy-now entry.
func GetBuyNow(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
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

	utils.RespondWithJSON(w, http.StatusOK, entry)
}
