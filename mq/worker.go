package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"vitrin/db"
	"vitrin/models"
	"vitrin/rdx"
	"vitrin/utils"
)

// StartNotificationWorker consumes emitted events, stores a notification
// for the target user, and forwards it to the push relay.
func StartNotificationWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, eventsChannel)
	ch := sub.Channel()

	log.Println("[NotificationWorker] Listening for events...")

	for msg := range ch {
		var event models.Event
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[NotificationWorker] Failed to parse event: %v", err)
			continue
		}

		if event.UserID == "" {
			// Catalog-wide events carry no target user; push only.
			SendPush("", event.Title, event.Message)
			continue
		}

		notification := models.Notification{
			NotificationID: "ntf_" + utils.GetUUID(),
			UserID:         event.UserID,
			Title:          event.Title,
			Message:        event.Message,
			EntityID:       event.EntityID,
			CreatedAt:      time.Now(),
		}
		if _, err := db.NotificationsCollection.InsertOne(ctx, notification); err != nil {
			log.Printf("[NotificationWorker] insert failed: %v", err)
			continue
		}

		SendPush(event.UserID, event.Title, event.Message)
	}
}
