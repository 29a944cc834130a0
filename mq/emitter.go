package mq

import (
	"context"
	"encoding/json"
	"log"

	"vitrin/models"
	"vitrin/rdx"
)

const eventsChannel = "storefront-events"

// Emit publishes an event to Redis for the notification worker.
func Emit(ctx context.Context, eventName string, content models.Event) {
	content.Name = eventName

	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, eventsChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish event to Redis: %v", err)
	}
}
