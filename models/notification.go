package models

import "time"

// Event is a message emitted on the Redis channel for the notification
// worker to consume.
type Event struct {
	Name      string `json:"name"`
	UserID    string `json:"userId"`
	EntityID  string `json:"entityId"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	ProductID string `json:"productId,omitempty"`
}

type Notification struct {
	NotificationID string    `json:"notificationId" bson:"notificationid"`
	UserID         string    `json:"userId" bson:"userId"`
	Title          string    `json:"title" bson:"title"`
	Message        string    `json:"message" bson:"message"`
	EntityID       string    `json:"entityId,omitempty" bson:"entityId,omitempty"`
	Read           bool      `json:"read" bson:"read"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
}
