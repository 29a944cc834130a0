package ratings

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"vitrin/catalog"
	"vitrin/db"
	"vitrin/models"
	"vitrin/mq"
	"vitrin/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var errInvalidRating = errors.New("rating must be between 1 and 5")

// parseRatingInput reads the client-settable rating fields. Identity and
// display name come from the authenticated session, never the body.
func parseRatingInput(body io.Reader) (int, string, error) {
	var input struct {
		Value   int    `json:"value"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(body).Decode(&input); err != nil {
		return 0, "", err
	}
	if input.Value < 1 || input.Value > 5 {
		return 0, "", errInvalidRating
	}
	return input.Value, input.Comment, nil
}

// Average is the arithmetic mean of rating values, 0 for an empty slice.
func Average(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// POST /api/ratings/:productid
// Rejected when the user already rated this product or has no Delivered
// order for it. On success the product's aggregate is recomputed from all
// ratings; linear in rating count, fine at this scale.
func AddRating(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	productID := ps.ByName("productid")

	count, err := db.RatingsCollection.CountDocuments(ctx, bson.M{
		"userId":    userID,
		"productId": productID,
	})
	if err != nil {
		log.Printf("Error checking for existing rating: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if count > 0 {
		http.Error(w, "You have already rated this product", http.StatusConflict)
		return
	}

	delivered, err := db.OrdersCollection.CountDocuments(ctx, bson.M{
		"userId":         userID,
		"productId":      productID,
		"deliveryStatus": models.StatusDelivered,
	})
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if delivered == 0 {
		http.Error(w, "Only delivered orders can be rated", http.StatusForbidden)
		return
	}

	value, comment, err := parseRatingInput(r.Body)
	if err != nil {
		http.Error(w, "Invalid rating data", http.StatusBadRequest)
		return
	}

	userName := ""
	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err == nil {
		userName = user.Username
	}

	rating := models.Rating{
		RatingID:  "rat_" + utils.GenerateRandomString(16),
		ProductID: productID,
		UserID:    userID,
		UserName:  userName,
		Value:     value,
		Comment:   comment,
		CreatedAt: time.Now(),
	}

	if _, err := db.RatingsCollection.InsertOne(ctx, rating); err != nil {
		http.Error(w, "Failed to insert rating: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if err := recomputeAggregate(ctx, productID); err != nil {
		log.Printf("AddRating: aggregate recompute failed for %s: %v", productID, err)
	}

	go mq.Emit(context.Background(), "rating-added", models.Event{
		Name:      "rating-added",
		UserID:    userID,
		EntityID:  rating.RatingID,
		ProductID: productID,
		Title:     "New rating",
		Message:   rating.Comment,
	})

	utils.RespondWithJSON(w, http.StatusCreated, map[string]string{"ratingId": rating.RatingID})
}

// GET /api/ratings/:productid
func GetRatings(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 10, 100)
	opts := options.Find().SetSkip(skip).SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	ratings, err := utils.FindAndDecode[models.Rating](ctx, db.RatingsCollection,
		bson.M{"productId": ps.ByName("productid")}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve ratings")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "ratings": ratings})
}

// recomputeAggregate reads every rating for the product and writes the
// mean and count to both catalog locations.
func recomputeAggregate(ctx context.Context, productID string) error {
	all, err := utils.FindAndDecode[models.Rating](ctx, db.RatingsCollection, bson.M{"productId": productID})
	if err != nil {
		return err
	}

	values := make([]int, 0, len(all))
	for _, rating := range all {
		values = append(values, rating.Value)
	}

	update := bson.M{"$set": bson.M{
		"averageRating": Average(values),
		"ratingCount":   len(values),
		"updatedAt":     time.Now(),
	}}
	filter := bson.M{"productid": productID}

	var product models.Product
	if err := db.AllProductsCollection.FindOne(ctx, filter).Decode(&product); err != nil {
		return err
	}
	if _, err := db.AllProductsCollection.UpdateOne(ctx, filter, update); err != nil {
		return err
	}
	bucket, err := catalog.ResolveBucket(product.Category)
	if err != nil {
		return err
	}
	if _, err := bucket.UpdateOne(ctx, filter, update); err != nil {
		return err
	}
	catalog.InvalidateProduct(productID)
	return nil
}
