package notifications

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

// GET /api/notifications
func GetNotifications(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
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

	items, err := utils.FindAndDecode[models.Notification](ctx, db.NotificationsCollection,
		bson.M{"userId": userID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve notifications")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, items)
}

// PUT /api/notifications/:notificationid/read
func MarkRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	res, err := db.NotificationsCollection.UpdateOne(ctx,
		bson.M{"notificationid": ps.ByName("notificationid"), "userId": userID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		http.Error(w, "Failed to update notification", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Notification not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
